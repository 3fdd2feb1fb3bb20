package authctx

import (
	"errors"

	"github.com/cdktrenggalek/sihutan-backend/internal/workflow"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const actorKey = "actor"

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// SetActor stores the resolved actor for the rest of the request.
func SetActor(c *fiber.Ctx, actor workflow.Actor) {
	c.Locals(actorKey, actor)
}

// GetActor returns the actor placed in context by the actor-loader
// middleware.
func GetActor(c *fiber.Ctx) (workflow.Actor, error) {
	actor, ok := c.Locals(actorKey).(workflow.Actor)
	if !ok {
		return workflow.Actor{}, errors.New("no actor in context")
	}
	return actor, nil
}
