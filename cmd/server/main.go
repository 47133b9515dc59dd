// Package main is the entry point for the contacts service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mongotesting/contacts-service/internal/api/handlers"
	"github.com/mongotesting/contacts-service/internal/api/middleware"
	"github.com/mongotesting/contacts-service/internal/api/routes"
	"github.com/mongotesting/contacts-service/internal/config"
	"github.com/mongotesting/contacts-service/internal/core/cache"
	"github.com/mongotesting/contacts-service/internal/core/docdb"
	rediscache "github.com/mongotesting/contacts-service/internal/infrastructure/cache/redis"
	"github.com/mongotesting/contacts-service/internal/infrastructure/docdb/mongodb"
	"github.com/mongotesting/contacts-service/internal/pkg/logging"
	"github.com/mongotesting/contacts-service/internal/services/contacts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure logging")
	}

	ctx := context.Background()

	// Initialize document db client using factory pattern
	connectCtx, cancelConnect := context.WithTimeout(ctx, cfg.DocDB.ConnectTimeout)
	docDBClient, err := createDocDBClient(connectCtx, cfg.DocDB)
	cancelConnect()
	if err != nil {
		logger.Fatal().Err(err).Str("type", cfg.DocDB.Type).Msg("failed to initialize document db client")
	}
	defer func() {
		if err := docDBClient.Close(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("failed to close document db client")
		}
	}()

	// Initialize cache client using factory pattern; nil when disabled
	cacheClient, err := createCacheClient(cfg.Cache)
	if err != nil {
		logger.Fatal().Err(err).Str("type", cfg.Cache.Type).Msg("failed to initialize cache client")
	}
	if cacheClient != nil {
		defer cacheClient.Close()
	}

	wrapper := contacts.New(docDBClient,
		contacts.WithDatabase(cfg.DocDB.Database),
		contacts.WithCollection(cfg.DocDB.Collection),
		contacts.WithLogger(logger),
	)
	wrapper.Init()

	contactsService, err := contacts.NewService(&contacts.Config{
		Store:  wrapper,
		Cache:  cacheClient,
		Logger: &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize contacts service")
	}

	gin.SetMode(cfg.Server.GinMode)
	router := setupRouter(cfg, logger, cacheClient, docDBClient, contactsService)

	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
	}

	go func() {
		logger.Info().Str("address", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logger.Info().Msg("server exited")
}

// createCacheClient creates a cache client based on the configuration. It
// returns a nil interface when caching is disabled.
func createCacheClient(cfg config.CacheConfig) (cache.Client, error) {
	switch cache.Type(cfg.Type) {
	case cache.TypeNone:
		return nil, nil
	case cache.TypeRedis:
		client, err := rediscache.NewClient(rediscache.Config{
			Host:       cfg.Host,
			Port:       cfg.Port,
			Password:   cfg.Password,
			DB:         cfg.DB,
			DefaultTTL: cfg.TTL,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}

// createDocDBClient creates a document database client based on the configuration.
func createDocDBClient(ctx context.Context, cfg config.DocDBConfig) (docdb.Client, error) {
	switch docdb.Type(cfg.Type) {
	case docdb.TypeMongoDB, docdb.TypeCosmosDB, docdb.TypeFerretDB:
		// CosmosDB and FerretDB speak the MongoDB wire protocol
		return mongodb.NewClient(ctx, &mongodb.ClientConfig{
			URI:            cfg.URI,
			AppName:        cfg.AppName,
			ConnectTimeout: cfg.ConnectTimeout,
		})
	default:
		return nil, fmt.Errorf("unsupported docdb type: %s", cfg.Type)
	}
}

// setupRouter creates and configures the Gin router.
func setupRouter(cfg *config.Config, logger zerolog.Logger, cacheClient cache.Client, docDBClient docdb.Client, service handlers.ContactsService) *gin.Engine {
	router := gin.New()

	requestMetrics := metrics.NewSet()
	metrics.RegisterSet(requestMetrics)

	routesCfg := &routes.Config{
		HealthHandler:   handlers.NewHealthHandler(cacheClient, docDBClient),
		ContactsHandler: handlers.NewContactsHandler(service),
		Metrics:         requestMetrics,
	}
	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		corsCfg := middleware.DefaultCORSConfig(cfg.Server.CORSAllowedOrigins)
		routesCfg.CORS = &corsCfg
	}

	routes.SetupWithMiddleware(router, routesCfg,
		middleware.NewLoggingMiddlewareWithLogger(logger),
		middleware.NewErrorMiddleware(),
	)

	return router
}
