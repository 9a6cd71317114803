package ledger

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"boxoffice/internal/shared/utils/response"
)

type Controller interface {
	GetEventLedger(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetEventLedger godoc
// @Summary      Show an event's ticket ledger
// @Description  Returns every block of the event's hash chain and whether the chain verifies
// @Tags         ledger
// @Produce      json
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  response.StandardApiResponse
// @Failure      404  {object}  response.StandardApiResponse
// @Router       /events/{id}/ledger [get]
func (ctrl *controller) GetEventLedger(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	l, err := ctrl.service.GetLedger(c.Request.Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, ErrEmptyLedger) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, "No ledger recorded for this event", nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to load ledger", nil, err.Error())
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Ledger retrieved successfully", l, nil)
}
