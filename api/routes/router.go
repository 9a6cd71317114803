// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"boxoffice/internal/auth"
	"boxoffice/internal/bookings"
	"boxoffice/internal/events"
	"boxoffice/internal/ledger"
	"boxoffice/internal/notifications"
	"boxoffice/internal/pricing"
	"boxoffice/internal/shared/config"
	"boxoffice/internal/shared/database"
	"boxoffice/internal/shared/middleware"
	"boxoffice/internal/sponsors"
	"boxoffice/internal/users"
	"boxoffice/pkg/cache"
	"boxoffice/pkg/logger"
)

// Version is reported by /ping and /status
var Version = "dev"

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	cache    cache.Service
	producer notifications.Producer
	log      *logger.Logger
}

// NewRouter creates a new router instance. cacheService may be nil, in
// which case every read goes to the database.
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, producer notifications.Producer, log *logger.Logger) *Router {
	if producer == nil {
		producer = notifications.NoopProducer{}
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &Router{
		config:   cfg,
		db:       db,
		cache:    cacheService,
		producer: producer,
		log:      log,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	protect := middleware.RequireOperator(r.config.JWT)
	sql := r.db.SQL

	userRepo := users.NewRepository(sql)
	sponsorRepo := sponsors.NewRepository(sql)
	eventRepo := events.NewRepository(sql)

	sponsorService := sponsors.NewService(sponsorRepo, r.log)
	eventService := events.NewService(eventRepo, sponsorRepo, r.log)
	ledgerService := ledger.NewService(ledger.NewRepository(sql), ledger.WithLogger(r.log))
	bookingService := bookings.NewService(bookings.Deps{
		DB:       sql,
		Repo:     bookings.NewRepository(sql),
		Events:   eventRepo,
		EventSvc: eventService,
		Users:    userRepo,
		Ledger:   ledgerService,
		Producer: r.producer,
		Pricing:  pricing.NewModel(r.config.Pricing),
		Log:      r.log,
	})
	authService := auth.NewService(userRepo, r.config.JWT, r.log)

	if r.cache != nil {
		sponsorService.SetCacheService(r.cache)
		eventService.SetCacheService(r.cache)
		ledgerService.SetCacheService(r.cache)
		bookingService.SetCacheService(r.cache)
	}

	api := engine.Group(r.config.APIPrefix)
	{
		auth.SetupAuthRoutes(api, auth.NewController(authService))
		sponsors.SetupSponsorRoutes(api, sponsors.NewController(sponsorService), protect)
		events.SetupEventRoutes(api, events.NewController(eventService), protect)
		bookings.SetupBookingRoutes(api, bookings.NewController(bookingService), protect)
		ledger.SetupLedgerRoutes(api, ledger.NewController(ledgerService))
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "boxoffice",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "boxoffice",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": Version,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "operational",
			"version":       Version,
			"database":      r.config.Database.Driver,
			"redis_cache":   r.cache != nil,
			"operator_auth": r.config.JWT.AuthEnabled,
			"timestamp":     time.Now(),
		})
	})
}
