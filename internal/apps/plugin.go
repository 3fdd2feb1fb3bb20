package apps

import (
	"github.com/cdktrenggalek/sihutan-backend/internal/config"
	"github.com/cdktrenggalek/sihutan-backend/internal/geography"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin is one forestry report module. Every module shares the same
// workflow, import and export plumbing; a plugin owns its record model,
// payload validation and column mappings.
type Plugin interface {
	// ID is the unique module identifier. It prefixes the module's
	// permission strings (e.g. "kayu.approve") and its route group.
	ID() string

	// Title is the human-readable module name shown on the dashboard.
	Title() string

	// Models returns the GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the module's routes on the given group. The
	// group is already prefixed with /api/p and has JWT + actor
	// middleware applied.
	RegisterRoutes(router fiber.Router, db *gorm.DB, geo *geography.Service, cfg *config.Config)
}
