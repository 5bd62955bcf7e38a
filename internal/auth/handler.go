package auth

import (
	"strings"

	"stocktrack-backend/internal/config"
	"stocktrack-backend/internal/database"
	"stocktrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/register
// Bootstrap endpoint: only the very first user may self-register, and
// becomes the admin. Everyone else is created by an admin.
func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Username = strings.TrimSpace(body.Username)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Username == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username, email and password are required")
		}

		var count int64
		database.DB.Model(&models.User{}).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "registration is closed, ask an administrator for an account")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not hash password")
		}

		user := models.User{
			Username:     body.Username,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create user")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Username = strings.TrimSpace(body.Username)

		var user models.User
		if err := database.DB.Where("username = ?", body.Username).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid username or password")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid username or password")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not generate token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
				"role":     user.Role,
				"store_id": user.StoreID,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)

		var user models.User
		if userID, ok := userIDVal.(uint); ok {
			if err := database.DB.First(&user, userID).Error; err == nil {
				response := fiber.Map{
					"user_id":  user.ID,
					"username": user.Username,
					"email":    user.Email,
					"role":     user.Role,
					"store_id": user.StoreID,
				}

				if user.StoreID != nil {
					var store models.Store
					if err := database.DB.First(&store, *user.StoreID).Error; err == nil {
						response["store"] = fiber.Map{
							"id":      store.ID,
							"name":    store.Name,
							"address": store.Address,
						}
					}
				}

				return c.JSON(response)
			}
		}

		return c.JSON(fiber.Map{
			"user_id":  userIDVal,
			"role":     c.Locals(CtxUserRoleKey),
			"store_id": c.Locals(CtxStoreIDKey),
		})
	}
}

// LogoutHandler acknowledges a logout. Tokens are stateless, so the server
// keeps nothing to invalidate; clients discard the token on success.
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "logged out"})
	}
}
