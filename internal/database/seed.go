package database

import (
	"fmt"
	"log/slog"

	"github.com/cdktrenggalek/sihutan-backend/internal/config"
	"github.com/cdktrenggalek/sihutan-backend/internal/models"
	"github.com/cdktrenggalek/sihutan-backend/internal/workflow"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedRBAC creates the standard roles and the per-module permission set.
// moduleIDs come from the registered report plugins, so a new module gets
// its permissions on first start. Idempotent.
func SeedRBAC(moduleIDs []string) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		perms := make(map[string]*models.Permission)
		ensurePerm := func(name string) (*models.Permission, error) {
			if p, ok := perms[name]; ok {
				return p, nil
			}
			var p models.Permission
			if err := tx.Where("name = ?", name).FirstOrCreate(&p, models.Permission{Name: name}).Error; err != nil {
				return nil, fmt.Errorf("failed to seed permission %s: %w", name, err)
			}
			perms[name] = &p
			return &p, nil
		}

		var staffPerms, approvePerms []models.Permission
		for _, id := range moduleIDs {
			for _, suffix := range []string{"create", "edit", "delete"} {
				p, err := ensurePerm(id + "." + suffix)
				if err != nil {
					return err
				}
				staffPerms = append(staffPerms, *p)
			}
			p, err := ensurePerm(id + ".approve")
			if err != nil {
				return err
			}
			approvePerms = append(approvePerms, *p)
		}

		roles := map[string][]models.Permission{
			workflow.RoleAdmin:   nil, // admin bypasses permission checks
			workflow.RolePetugas: staffPerms,
			workflow.RoleKasi:    approvePerms,
			workflow.RoleKaCDK:   approvePerms,
		}
		for name, rolePerms := range roles {
			var role models.Role
			if err := tx.Where("name = ?", name).FirstOrCreate(&role, models.Role{Name: name}).Error; err != nil {
				return fmt.Errorf("failed to seed role %s: %w", name, err)
			}
			if len(rolePerms) > 0 {
				if err := tx.Model(&role).Association("Permissions").Replace(rolePerms); err != nil {
					return fmt.Errorf("failed to attach permissions to %s: %w", name, err)
				}
			}
		}

		slog.Info("rbac seeded", "modules", len(moduleIDs), "permissions", len(perms))
		return nil
	})
}

// SeedAdmin creates the bootstrap admin account when configured and
// missing.
func SeedAdmin(cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var existing models.User
	if err := DB.Where("email = ?", cfg.AdminEmail).First(&existing).Error; err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	var adminRole models.Role
	if err := DB.Where("name = ?", workflow.RoleAdmin).First(&adminRole).Error; err != nil {
		return fmt.Errorf("admin role missing, run SeedRBAC first: %w", err)
	}

	user := models.User{
		Name:     "Administrator",
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Roles:    []models.Role{adminRole},
	}
	if err := DB.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	slog.Info("bootstrap admin created", "email", cfg.AdminEmail)
	return nil
}
