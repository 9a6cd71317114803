package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"boxoffice/internal/shared/utils/response"
	"boxoffice/pkg/api"
	"boxoffice/pkg/logger"
)

type Controller interface {
	IssueToken(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// IssueToken godoc
// @Summary      Obtain an operator token
// @Description  Exchanges operator credentials for a bearer token used on mutating routes
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      api.TokenRequest  true  "Operator credentials"
// @Success      200          {object}  response.StandardApiResponse
// @Failure      401          {object}  response.StandardApiResponse
// @Router       /auth/token [post]
func (ctrl *controller) IssueToken(c *gin.Context) {
	var req api.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	token, err := ctrl.service.IssueToken(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), "invalid credentials", c.ClientIP())
			response.RespondJSON(c, response.StatusError, http.StatusUnauthorized, "Invalid username or password", nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to issue token", nil, err.Error())
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Token issued successfully", token, nil)
}
