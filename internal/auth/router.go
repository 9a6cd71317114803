package auth

import (
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers the operator token route
func SetupAuthRoutes(router *gin.RouterGroup, controller Controller) {
	auth := router.Group("/auth")
	{
		auth.POST("/token", controller.IssueToken) // POST /api/auth/token
	}
}
