package auth

import (
	"fmt"
	"strings"

	"stocktrack-backend/internal/config"
	"stocktrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUsernameKey = "username"
	CtxUserRoleKey = "user_role"
	CtxStoreIDKey  = "store_id"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header missing")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization must be 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "could not parse token claims")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUsernameKey, claims.Username)
		c.Locals(CtxUserRoleKey, claims.Role)
		c.Locals(CtxStoreIDKey, claims.StoreID)

		return c.Next()
	}
}

// RequireMinRole gates a route on the role order staff < manager < admin.
func RequireMinRole(min models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxUserRoleKey).(models.Role)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "role information missing")
		}

		if role.Level() < min.Level() {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role for this operation")
		}
		return c.Next()
	}
}

// CurrentActor extracts the authenticated user's identity from request locals.
func CurrentActor(c *fiber.Ctx) (models.User, error) {
	userID, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok {
		return models.User{}, fiber.NewError(fiber.StatusUnauthorized, "user information missing")
	}
	role, _ := c.Locals(CtxUserRoleKey).(models.Role)
	storeID, _ := c.Locals(CtxStoreIDKey).(*uint)
	username, _ := c.Locals(CtxUsernameKey).(string)

	return models.User{ID: userID, Username: username, Role: role, StoreID: storeID}, nil
}
