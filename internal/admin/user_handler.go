package admin

import (
	"strings"

	"stocktrack-backend/internal/database"
	"stocktrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UserResponse struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	StoreID   *uint       `json:"store_id"`
	CreatedAt string      `json:"created_at"`
}

type CreateUserRequest struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	StoreID  *uint       `json:"store_id"`
}

type UpdateUserRequest struct {
	Email   *string      `json:"email"`
	Role    *models.Role `json:"role"`
	StoreID *uint        `json:"store_id"`
}

func userResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		StoreID:   u.StoreID,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/admin/users
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Username = strings.TrimSpace(body.Username)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Username == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username, email and password are required")
		}
		if !body.Role.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "role must be staff, manager or admin")
		}

		var count int64
		database.DB.Model(&models.User{}).
			Where("username = ? OR email = ?", body.Username, body.Email).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "username or email is already in use")
		}

		if body.StoreID != nil {
			var store models.Store
			if err := database.DB.First(&store, *body.StoreID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "store not found")
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not hash password")
		}

		user := models.User{
			Username:     body.Username,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         body.Role,
			StoreID:      body.StoreID,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create user")
		}

		return c.Status(fiber.StatusCreated).JSON(userResponse(user))
	}
}

// GET /api/admin/users
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("username asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list users")
		}

		res := make([]UserResponse, 0, len(users))
		for _, u := range users {
			res = append(res, userResponse(u))
		}
		return c.JSON(res)
	}
}

// PUT /api/admin/users/:id
// Users are never hard-deleted; edits cover email, role and store affiliation.
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.Email != nil {
			email := strings.TrimSpace(strings.ToLower(*body.Email))
			if email == "" {
				return fiber.NewError(fiber.StatusBadRequest, "email cannot be empty")
			}
			var other models.User
			if err := database.DB.Where("email = ? AND id <> ?", email, user.ID).First(&other).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "email is already in use")
			}
			user.Email = email
		}

		if body.Role != nil {
			if !body.Role.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "role must be staff, manager or admin")
			}
			user.Role = *body.Role
		}

		if body.StoreID != nil {
			var store models.Store
			if err := database.DB.First(&store, *body.StoreID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "store not found")
			}
			user.StoreID = body.StoreID
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update user")
		}

		return c.JSON(userResponse(user))
	}
}
