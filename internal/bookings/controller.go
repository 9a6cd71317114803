package bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"boxoffice/internal/events"
	"boxoffice/internal/shared/utils/response"
	"boxoffice/pkg/api"
)

type Controller interface {
	BookTicket(c *gin.Context)
	GetEventBookings(c *gin.Context)
	VerifyTicket(c *gin.Context)
	QuotePrice(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// respondError maps domain errors to status codes and operator-facing messages.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, events.ErrEventNotFound):
		response.RespondJSON(c, response.StatusError, http.StatusNotFound, "Event not found", nil, nil)
	case errors.Is(err, events.ErrTierNotFound):
		response.RespondJSON(c, response.StatusError, http.StatusNotFound, "Tier not found", nil, nil)
	case errors.Is(err, events.ErrInsufficientSeats):
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Not enough tickets available in this tier", nil, nil)
	case errors.Is(err, ErrTicketNotFound):
		response.RespondJSON(c, response.StatusError, http.StatusNotFound, "Ticket hash not found or invalid.", nil, nil)
	case errors.Is(err, ErrInvalidQty):
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Quantity must be at least 1", nil, nil)
	default:
		response.RespondJSON(c, response.StatusError, http.StatusInternalServerError, fallback, nil, err.Error())
	}
}

// BookTicket godoc
// @Summary      Book tickets
// @Description  Sells qty seats in a tier at the current dynamic price and returns the ticket hash
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        booking  body      api.BookTicketRequest  true  "Booking"
// @Success      201      {object}  response.StandardApiResponse
// @Failure      400      {object}  response.StandardApiResponse
// @Failure      404      {object}  response.StandardApiResponse
// @Security     BearerAuth
// @Router       /book [post]
func (ctrl *controller) BookTicket(c *gin.Context) {
	var req api.BookTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	booking, err := ctrl.service.BookTicket(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to book ticket")
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusCreated, "Ticket booked successfully", booking, nil)
}

// GetEventBookings godoc
// @Summary      List an event's bookings
// @Tags         bookings
// @Produce      json
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  response.StandardApiResponse
// @Failure      404  {object}  response.StandardApiResponse
// @Router       /events/{id}/bookings [get]
func (ctrl *controller) GetEventBookings(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, response.StatusError, http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	list, err := ctrl.service.GetEventBookings(c.Request.Context(), uint(eventID))
	if err != nil {
		respondError(c, err, "Failed to retrieve bookings")
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Bookings retrieved successfully", list, nil)
}

// VerifyTicket godoc
// @Summary      Verify a ticket
// @Tags         bookings
// @Produce      json
// @Param        hash  path      string  true  "Ticket hash"
// @Success      200   {object}  response.StandardApiResponse
// @Failure      404   {object}  response.StandardApiResponse
// @Router       /verify/{hash} [get]
func (ctrl *controller) VerifyTicket(c *gin.Context) {
	verified, err := ctrl.service.VerifyTicket(c.Request.Context(), c.Param("hash"))
	if err != nil {
		respondError(c, err, "Failed to verify ticket")
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, verified.Status, verified, nil)
}

// QuotePrice godoc
// @Summary      Quote a dynamic price
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        quote  body      api.PriceRequest  true  "Tier and quantity"
// @Success      200    {object}  response.StandardApiResponse
// @Failure      404    {object}  response.StandardApiResponse
// @Router       /events/price [post]
func (ctrl *controller) QuotePrice(c *gin.Context) {
	var req api.PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingError(c, err)
		return
	}

	quote, err := ctrl.service.QuotePrice(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to compute price")
		return
	}

	response.RespondJSON(c, response.StatusSuccess, http.StatusOK, "Price computed successfully", quote, nil)
}
