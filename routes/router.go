package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/home-maintenance-api/apperr"
	"github.com/sidhant-sriv/home-maintenance-api/auth"
	"github.com/sidhant-sriv/home-maintenance-api/db"
	"github.com/sidhant-sriv/home-maintenance-api/middleware"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	Store    db.Store
	Verifier auth.Verifier
	Logger   *slog.Logger
	Metrics  *middleware.Metrics

	Version     string
	Environment string

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewRouter registers every route on a new gin engine.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = middleware.NewMetrics()
	}

	useJSONFieldNames()

	router := gin.New()
	router.Use(
		middleware.RequestLogger(deps.Logger),
		deps.Metrics.Middleware(),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			respondError(c, apperr.Upstream(fmt.Errorf("panic: %v", recovered), "internal server error"))
		}),
	)
	router.NoRoute(func(c *gin.Context) {
		respondError(c, apperr.NotFound("Not found"))
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":     "Welcome to the Home Maintenance API",
			"status":      "healthy",
			"version":     deps.Version,
			"environment": deps.Environment,
		})
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	router.GET("/metrics", deps.Metrics.Handler())

	api := NewAPI(deps.Store, deps.Logger, deps.Now)
	authenticate := middleware.AuthMiddleware(deps.Verifier)
	api.HomeProfileRoutes(router, authenticate)
	api.ApplianceRoutes(router, authenticate)
	api.ServiceRecordRoutes(router, authenticate)
	api.ReminderRoutes(router, authenticate)
	api.DashboardRoutes(router, authenticate)

	return router
}
