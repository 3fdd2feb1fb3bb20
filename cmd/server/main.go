package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/cdktrenggalek/sihutan-backend/internal/apps"
	"github.com/cdktrenggalek/sihutan-backend/internal/apps/ekonomi"
	"github.com/cdktrenggalek/sihutan-backend/internal/apps/karhutla"
	"github.com/cdktrenggalek/sihutan-backend/internal/apps/kayu"
	"github.com/cdktrenggalek/sihutan-backend/internal/apps/kelembagaan"
	"github.com/cdktrenggalek/sihutan-backend/internal/apps/nonkayu"
	"github.com/cdktrenggalek/sihutan-backend/internal/apps/perizinan"
	"github.com/cdktrenggalek/sihutan-backend/internal/apps/ps"
	"github.com/cdktrenggalek/sihutan-backend/internal/apps/rehab"
	"github.com/cdktrenggalek/sihutan-backend/internal/apps/wisata"
	"github.com/cdktrenggalek/sihutan-backend/internal/config"
	"github.com/cdktrenggalek/sihutan-backend/internal/database"
	"github.com/cdktrenggalek/sihutan-backend/internal/geography"
	"github.com/cdktrenggalek/sihutan-backend/internal/handlers"
	"github.com/cdktrenggalek/sihutan-backend/internal/logging"
	"github.com/cdktrenggalek/sihutan-backend/internal/middleware"
	"github.com/cdktrenggalek/sihutan-backend/internal/routes"
	"github.com/cdktrenggalek/sihutan-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Migrate shared models
	if err := database.MigrateShared(); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Register report modules
	plugins := []apps.Plugin{
		kayu.New(),
		nonkayu.New(),
		karhutla.New(),
		wisata.New(),
		rehab.New(),
		ekonomi.New(),
		perizinan.New(),
		kelembagaan.New(),
		ps.New(),
	}

	// Migrate plugin models
	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := database.MigrateModels(models); err != nil {
				slog.Error("plugin migration failed", "plugin", p.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("plugin migrated", "plugin", p.ID(), "models", len(models))
		}
	}

	// Seed reference data: regencies and districts, roles and
	// permissions, the bootstrap admin account.
	if err := geography.Seed(database.DB); err != nil {
		slog.Error("geography seed failed", "error", err)
		os.Exit(1)
	}

	moduleIDs := make([]string, 0, len(plugins))
	for _, p := range plugins {
		moduleIDs = append(moduleIDs, p.ID())
	}
	if err := database.SeedRBAC(moduleIDs); err != nil {
		slog.Error("rbac seed failed", "error", err)
		os.Exit(1)
	}
	if err := database.SeedAdmin(cfg); err != nil {
		slog.Error("admin seed failed", "error", err)
		os.Exit(1)
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	geoService := geography.NewService(database.DB)

	var moduleTables []services.ModuleTable
	for _, p := range plugins {
		for _, m := range p.Models() {
			if t, ok := m.(interface{ TableName() string }); ok {
				moduleTables = append(moduleTables, services.ModuleTable{
					ID:    p.ID(),
					Title: p.Title(),
					Table: t.TableName(),
				})
			}
		}
	}
	dashboardService := services.NewDashboardService(database.DB, moduleTables)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(len(plugins))
	settingsHandler := handlers.NewSettingsHandler(database.DB)
	regionHandler := handlers.NewRegionHandler(geoService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	slog.Info("seeding settings defaults")
	if err := settingsHandler.SeedDefaults(); err != nil {
		slog.Error("settings seed failed", "error", err)
		os.Exit(1)
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, geoService, authHandler, healthHandler, settingsHandler, regionHandler, dashboardHandler, plugins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
