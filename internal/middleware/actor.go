package middleware

import (
	"github.com/cdktrenggalek/sihutan-backend/internal/authctx"
	"github.com/cdktrenggalek/sihutan-backend/internal/dto"
	"github.com/cdktrenggalek/sihutan-backend/internal/models"
	"github.com/cdktrenggalek/sihutan-backend/internal/workflow"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ActorLoader resolves the authenticated user's roles and permissions once
// per request and stores a workflow.Actor in context. Must run after
// JWTProtected.
func ActorLoader(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := authctx.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.Preload("Roles.Permissions").First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: unknown user",
			})
		}

		authctx.SetActor(c, workflow.Actor{
			ID:          user.ID,
			Roles:       user.RoleNames(),
			Permissions: user.PermissionNames(),
		})
		return c.Next()
	}
}

// AdminRequired rejects requests whose actor does not hold the admin role.
// Must run after ActorLoader.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := authctx.GetActor(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !actor.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
