package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes registers ticket sales and lookups. protect guards
// the booking route.
func SetupBookingRoutes(router *gin.RouterGroup, controller Controller, protect gin.HandlerFunc) {
	router.POST("/book", protect, controller.BookTicket)            // POST /api/book
	router.GET("/verify/:hash", controller.VerifyTicket)            // GET /api/verify/:hash
	router.GET("/events/:id/bookings", controller.GetEventBookings) // GET /api/events/:id/bookings
	router.POST("/events/price", controller.QuotePrice)             // POST /api/events/price
}
