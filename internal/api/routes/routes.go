// Package routes defines the HTTP routes for the contacts service.
package routes

import (
	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"

	"github.com/mongotesting/contacts-service/internal/api/handlers"
	"github.com/mongotesting/contacts-service/internal/api/middleware"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1/contacts-service"

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler   *handlers.HealthHandler
	ContactsHandler *handlers.ContactsHandler
	// Metrics receives per-route request metrics when set.
	Metrics *metrics.Set
	// CORS enables cross-origin requests when set.
	CORS *middleware.CORSConfig
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	r.GET("/metrics", handlers.Metrics)

	v1 := r.Group(BasePath)
	{
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		contacts := v1.Group("/contacts")
		{
			contacts.GET("", cfg.ContactsHandler.FindContacts)
			contacts.POST("", cfg.ContactsHandler.InsertContact)
			contacts.GET("/errors", cfg.ContactsHandler.FindErrors)
			contacts.POST("/bulk", cfg.ContactsHandler.BulkWrite)
		}
	}

	r.HandleMethodNotAllowed = true
	r.NoRoute(middleware.NotFound())
	r.NoMethod(middleware.MethodNotAllowed())
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware) {
	r.Use(loggingMw.RequestLogger())
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())
	if cfg.CORS != nil {
		r.Use(middleware.NewCORSMiddleware(*cfg.CORS))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	Setup(r, cfg)
}
