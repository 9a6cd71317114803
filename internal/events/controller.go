package events

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"boxoffice/internal/shared/utils/response"
	"boxoffice/pkg/api"
)

type Controller interface {
	CreateEvent(c *gin.Context)
	GetAllEvents(c *gin.Context)
	DeleteEvent(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// CreateEvent godoc
// @Summary      Create an event
// @Description  Creates an event with its seating tiers and sponsor links
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        event  body      api.CreateEventRequest  true  "Event"
// @Success      201    {object}  response.StandardApiResponse
// @Failure      400    {object}  response.StandardApiResponse
// @Security     BearerAuth
// @Router       /events [post]
func (ctrl *controller) CreateEvent(c *gin.Context) {
	var req api.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	event, err := ctrl.service.CreateEvent(c.Request.Context(), req)
	if err != nil {
		code := http.StatusBadRequest
		if !isValidationError(err) {
			code = http.StatusInternalServerError
		}
		response.RespondJSON(c, response.StatusError, code, createMessage(err), nil, nil)
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusCreated, "Event created successfully", event, nil)
}

func isValidationError(err error) bool {
	for _, target := range []error{ErrSeatSumMismatch, ErrInvalidSchedule, ErrNoTiers, ErrInvalidTier, ErrTitleRequired, ErrSponsorNotFound} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func createMessage(err error) string {
	switch {
	case errors.Is(err, ErrSeatSumMismatch):
		return "The sum of seats in all tiers must equal the total seats for the event."
	case errors.Is(err, ErrInvalidSchedule):
		return "End time must be after start time"
	case errors.Is(err, ErrNoTiers):
		return "At least one tier is required"
	case errors.Is(err, ErrTitleRequired):
		return "Title is required"
	case errors.Is(err, ErrSponsorNotFound):
		return "One or more sponsors do not exist"
	case errors.Is(err, ErrInvalidTier):
		return err.Error()
	default:
		return "Failed to create event"
	}
}

// GetAllEvents godoc
// @Summary      List events
// @Description  Lists events with tiers, sponsors and money collected so far
// @Tags         events
// @Produce      json
// @Param        skip   query     int  false  "Rows to skip"  default(0)
// @Param        limit  query     int  false  "Max rows"      default(100)
// @Success      200    {object}  response.StandardApiResponse
// @Router       /events [get]
func (ctrl *controller) GetAllEvents(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	list, err := ctrl.service.GetAllEvents(c.Request.Context(), query)
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to retrieve events", nil, err.Error())
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Events retrieved successfully", list, nil)
}

// DeleteEvent godoc
// @Summary      Delete an event
// @Description  Deletes the event with its tiers, bookings, sponsor links and ledger
// @Tags         events
// @Produce      json
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  response.StandardApiResponse
// @Failure      404  {object}  response.StandardApiResponse
// @Security     BearerAuth
// @Router       /events/{id} [delete]
func (ctrl *controller) DeleteEvent(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteEvent(c.Request.Context(), uint(eventID)); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.RespondJSON(c, response.StatusError, http.StatusNotFound, "Event not found", nil, nil)
			return
		}
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, "Failed to delete event", nil, err.Error())
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Event deleted successfully", nil, nil)
}
