package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leadpilot/leadpilot/config"
	"github.com/leadpilot/leadpilot/pkg/ai"
	"github.com/leadpilot/leadpilot/pkg/api/handlers"
	"github.com/leadpilot/leadpilot/pkg/auth"
	"github.com/leadpilot/leadpilot/pkg/cache"
	"github.com/leadpilot/leadpilot/pkg/database"
	"github.com/leadpilot/leadpilot/pkg/email"
	"github.com/leadpilot/leadpilot/pkg/export"
	"github.com/leadpilot/leadpilot/pkg/leads"
	"github.com/leadpilot/leadpilot/pkg/logger"
	"github.com/leadpilot/leadpilot/pkg/metrics"
	custommiddleware "github.com/leadpilot/leadpilot/pkg/middleware"
	"github.com/leadpilot/leadpilot/pkg/store"
)

const version = "0.1.0"

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Printf("🔧 Loaded .env file")
	}

	cfg := config.Load()
	log.Printf("🔧 Configuration loaded (environment: %s)", cfg.APIEnvironment)

	appLog := logger.New(cfg.LogLevel)

	if cfg.DashboardPassword == "" {
		log.Fatalf("❌ DASHBOARD_PASSWORD must be set")
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Printf("⚠️  Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s)", cfg.SentryEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	} else {
		log.Printf("ℹ️  Sentry disabled (no DSN configured)")
	}

	// Database
	db, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Redis cache
	redisClient, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Prometheus metrics
	prometheusMetrics := metrics.New()
	log.Printf("✅ Prometheus metrics initialized")

	// Services
	leadRepo := store.NewLeadRepository(db.Gorm)
	campaignRepo := store.NewCampaignRepository(db.Gorm)
	leadService := leads.NewService(leadRepo, redisClient, prometheusMetrics)
	aiService := ai.NewService(ai.Config{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.OpenAIModel,
	})
	emailService := email.NewService(cfg.EmailFrom, cfg.EmailFromName, cfg.SendGridAPIKey)
	exportService, err := export.NewService(leadService, export.Config{
		Dir:                cfg.ExportDir,
		S3Bucket:           cfg.ExportS3Bucket,
		AWSRegion:          cfg.AWSRegion,
		AWSAccessKeyID:     cfg.AWSAccessKeyID,
		AWSSecretAccessKey: cfg.AWSSecretAccessKey,
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialize export service: %v", err)
	}

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour

	// Handlers
	authHandler := handlers.NewAuthHandler(cfg.DashboardPassword, cfg.SessionSecret, sessionTTL, prometheusMetrics)
	leadHandler := handlers.NewLeadHandler(leadService, aiService, emailService, prometheusMetrics)
	campaignHandler := handlers.NewCampaignHandler(campaignRepo)
	exportHandler := handlers.NewExportHandler(exportService, prometheusMetrics)

	// Echo
	e := echo.New()
	e.HideBanner = true

	globalRateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	loginRateLimiter := custommiddleware.NewRateLimiter(5, 2) // 5 req/min for login

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			appLog.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	e.Use(prometheusMetrics.Middleware())
	e.Use(middleware.CORSWithConfig(custommiddleware.CORSConfig(cfg.FrontendURL)))
	e.Use(middleware.Gzip())
	e.Use(middleware.Secure())
	e.Use(custommiddleware.SecurityHeaders(custommiddleware.SecurityHeadersConfig{}))
	e.Use(globalRateLimiter.Middleware())

	// Public endpoints
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        "LeadPilot API",
			"version":     version,
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})

	e.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status":   "unhealthy",
				"database": "down",
			})
		}
		if _, err := redisClient.Redis.Ping(ctx).Result(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status": "unhealthy",
				"cache":  "down",
			})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"status":   "healthy",
			"database": "up",
			"cache":    "up",
		})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth endpoints (public, tighter rate limit on login)
	e.POST("/api/auth/login", authHandler.Login, loginRateLimiter.Middleware())
	e.POST("/api/auth/logout", authHandler.Logout)

	// Dashboard API (session required)
	v1 := e.Group("/api/v1")
	v1.Use(auth.Middleware(cfg.SessionSecret))

	v1.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"version": version})
	})

	v1.GET("/leads", leadHandler.List)
	v1.POST("/leads", leadHandler.Create)
	v1.PATCH("/leads/:id/status", leadHandler.ToggleStatus)
	v1.PATCH("/leads/:id/pin", leadHandler.TogglePin)
	v1.DELETE("/leads", leadHandler.Delete)
	v1.POST("/leads/:id/proposal", leadHandler.DraftProposal)

	v1.GET("/campaigns", campaignHandler.List)
	v1.POST("/campaigns", campaignHandler.Create)

	v1.POST("/exports", exportHandler.Create)
	v1.GET("/exports/:file", exportHandler.Download)

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Printf("🚀 LeadPilot API starting on %s", address)
	log.Printf("🛡️  Rate limiting: %d req/min (burst: %d), login 5/min", cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)

	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}
