package admin

import (
	"strings"

	"stocktrack-backend/internal/database"
	"stocktrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StoreResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
}

type CreateStoreRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type UpdateStoreRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

func storeResponse(s models.Store) StoreResponse {
	return StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		CreatedAt: s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/admin/stores
func CreateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "store name is required")
		}

		var existing models.Store
		if err := database.DB.Where("name = ?", body.Name).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "a store with this name already exists")
		}

		store := models.Store{
			Name:    body.Name,
			Address: strings.TrimSpace(body.Address),
		}

		if err := database.DB.Create(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create store")
		}

		return c.Status(fiber.StatusCreated).JSON(storeResponse(store))
	}
}

// GET /api/admin/stores
func ListStoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stores []models.Store
		if err := database.DB.Order("name asc").Find(&stores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list stores")
		}

		res := make([]StoreResponse, 0, len(stores))
		for _, s := range stores {
			res = append(res, storeResponse(s))
		}
		return c.JSON(res)
	}
}

// GET /api/admin/stores/:id
func GetStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "store not found")
		}

		return c.JSON(storeResponse(store))
	}
}

// PUT /api/admin/stores/:id
func UpdateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "store not found")
		}

		var body UpdateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "store name cannot be empty")
			}
			var other models.Store
			if err := database.DB.Where("name = ? AND id <> ?", name, store.ID).First(&other).Error; err == nil {
				return fiber.NewError(fiber.StatusBadRequest, "a store with this name already exists")
			}
			store.Name = name
		}
		if body.Address != nil {
			store.Address = strings.TrimSpace(*body.Address)
		}

		if err := database.DB.Save(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update store")
		}

		return c.JSON(storeResponse(store))
	}
}

// DELETE /api/admin/stores/:id
// A store carrying inventories or users cannot be removed.
func DeleteStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "store not found")
		}

		var invCount int64
		database.DB.Model(&models.Inventory{}).Where("store_id = ?", store.ID).Count(&invCount)
		if invCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "store still has inventories, remove them first")
		}

		var userCount int64
		database.DB.Model(&models.User{}).Where("store_id = ?", store.ID).Count(&userCount)
		if userCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "store still has affiliated users")
		}

		if err := database.DB.Delete(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete store")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
