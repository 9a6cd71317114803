package sponsors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"boxoffice/internal/shared/utils/response"
	"boxoffice/pkg/api"
)

type Controller interface {
	CreateSponsor(c *gin.Context)
	GetAllSponsors(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// CreateSponsor godoc
// @Summary      Create a sponsor
// @Tags         sponsors
// @Accept       json
// @Produce      json
// @Param        sponsor  body      api.CreateSponsorRequest  true  "Sponsor"
// @Success      201      {object}  response.StandardApiResponse
// @Failure      400      {object}  response.StandardApiResponse
// @Failure      409      {object}  response.StandardApiResponse
// @Router       /sponsors [post]
func (ctrl *controller) CreateSponsor(c *gin.Context) {
	var req api.CreateSponsorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	sponsor, err := ctrl.service.CreateSponsor(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSponsorExists):
			response.RespondJSON(c, response.StatusError, http.StatusConflict, "Sponsor with this name already exists", nil, nil)
		case errors.Is(err, ErrSponsorNameMissing):
			response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Sponsor name is required", nil, nil)
		default:
			response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to create sponsor", nil, err.Error())
		}
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusCreated, "Sponsor created successfully", sponsor, nil)
}

// GetAllSponsors godoc
// @Summary      List sponsors
// @Tags         sponsors
// @Produce      json
// @Success      200  {object}  response.StandardApiResponse
// @Router       /sponsors [get]
func (ctrl *controller) GetAllSponsors(c *gin.Context) {
	list, err := ctrl.service.GetAllSponsors(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to retrieve sponsors", nil, err.Error())
		return
	}
	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Sponsors retrieved successfully", list, nil)
}
