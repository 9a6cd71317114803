package sponsors

import (
	"github.com/gin-gonic/gin"
)

// SetupSponsorRoutes registers the sponsor routes. protect guards the
// mutating route and may be a pass-through when operator auth is off.
func SetupSponsorRoutes(router *gin.RouterGroup, controller Controller, protect gin.HandlerFunc) {
	sponsors := router.Group("/sponsors")
	{
		sponsors.GET("", controller.GetAllSponsors)          // GET /api/sponsors
		sponsors.POST("", protect, controller.CreateSponsor) // POST /api/sponsors
	}
}
