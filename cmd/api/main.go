package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_report/internal/cache"
	"github.com/GTDGit/gtd_report/internal/config"
	"github.com/GTDGit/gtd_report/internal/database"
	"github.com/GTDGit/gtd_report/internal/handler"
	"github.com/GTDGit/gtd_report/internal/metrics"
	"github.com/GTDGit/gtd_report/internal/middleware"
	"github.com/GTDGit/gtd_report/internal/repository"
	"github.com/GTDGit/gtd_report/internal/service"
)

// main is the application entrypoint for the catalog report API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting report api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Connect database
	db, err := database.Connect(ctx, &cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Connect to Redis when configured
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		log.Info().Msg("redis connected successfully")
	} else {
		log.Info().Msg("redis not configured, rate limiting disabled")
	}

	// 4. Initialize repositories and services
	reportRepo := repository.NewReportRepository(db)
	reportSvc := service.NewReportService(reportRepo)

	// 5. Initialize handlers
	var redisPinger handler.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}
	handlers := &Handlers{
		Health: handler.NewHealthHandler(reportRepo, redisPinger),
		Report: handler.NewReportHandler(reportSvc),
	}

	// 6. Initialize rate limiter
	var rateLimiter *middleware.RateLimiter
	if redisClient != nil && cfg.RateLimit.Requests > 0 {
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(cfg, handlers, rateLimiter)

	// 8. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 9. Wait for interrupt signal
	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	// 10. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health *handler.HealthHandler
	Report *handler.ReportHandler
}

// newRouter builds the gin engine with global middleware and all routes.
// rateLimiter may be nil.
func newRouter(cfg *config.Config, handlers *Handlers, rateLimiter *middleware.RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedHosts))
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	setupRoutes(router, handlers, rateLimiter)
	return router
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, rateLimiter *middleware.RateLimiter) {
	router.GET("/v1/health", handlers.Health.GetHealth)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	reports := router.Group("/v1/reports")
	if rateLimiter != nil {
		reports.Use(rateLimiter.Handle())
	}
	{
		reports.GET("/top-products", handlers.Report.GetTopProducts)
		reports.GET("/products-with-suppliers", handlers.Report.GetProductsWithSuppliers)
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
