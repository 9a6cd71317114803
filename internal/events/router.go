package events

import (
	"github.com/gin-gonic/gin"
)

// SetupEventRoutes registers the event routes. Browsing is public; protect
// guards the mutating routes.
func SetupEventRoutes(router *gin.RouterGroup, controller Controller, protect gin.HandlerFunc) {
	events := router.Group("/events")
	{
		events.GET("", controller.GetAllEvents)                // GET /api/events
		events.POST("", protect, controller.CreateEvent)       // POST /api/events
		events.DELETE("/:id", protect, controller.DeleteEvent) // DELETE /api/events/:id
	}
}
