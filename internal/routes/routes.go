package routes

import (
	"time"

	"github.com/cdktrenggalek/sihutan-backend/internal/apps"
	"github.com/cdktrenggalek/sihutan-backend/internal/config"
	"github.com/cdktrenggalek/sihutan-backend/internal/geography"
	"github.com/cdktrenggalek/sihutan-backend/internal/handlers"
	"github.com/cdktrenggalek/sihutan-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	geo *geography.Service,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	settingsHandler *handlers.SettingsHandler,
	regionHandler *handlers.RegionHandler,
	dashboardHandler *handlers.DashboardHandler,
	plugins []apps.Plugin,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Public endpoints
	api.Get("/health", healthHandler.Check)
	api.Get("/config", settingsHandler.GetConfig)
	api.Get("/dashboard", dashboardHandler.GetOverview)
	api.Get("/regions/regencies", regionHandler.ListRegencies)
	api.Get("/regions/regencies/:id/districts", regionHandler.ListDistricts)

	// Auth — stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth endpoints get JWT per-route so the public ones above
	// stay open.
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Admin settings management
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.ActorLoader(db), middleware.AdminRequired())
	admin.Put("/config/:key", settingsHandler.SetConfigKey)
	admin.Delete("/config/:key", settingsHandler.DeleteConfigKey)

	// Report modules: JWT plus the actor loader, which resolves the
	// user's roles and permissions once per request.
	protected := api.Group("/p", middleware.JWTProtected(cfg), middleware.ActorLoader(db))
	for _, p := range plugins {
		group := protected.Group("/" + p.ID())
		p.RegisterRoutes(group, db, geo, cfg)
	}
}
