package ledger

import (
	"github.com/gin-gonic/gin"
)

func SetupLedgerRoutes(router *gin.RouterGroup, controller Controller) {
	router.GET("/events/:id/ledger", controller.GetEventLedger) // GET /api/events/:id/ledger
}
