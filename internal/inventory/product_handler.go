package inventory

import (
	"strings"

	"stocktrack-backend/internal/auth"
	"stocktrack-backend/internal/database"
	"stocktrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductResponse struct {
	ID         uint   `json:"id"`
	ItemNumber string `json:"item_number"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	Cost       string `json:"cost"`
}

type CreateProductRequest struct {
	ItemNumber string `json:"item_number"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	Cost       string `json:"cost"`
}

type UpdateProductRequest struct {
	ItemNumber *string `json:"item_number"`
	Name       *string `json:"name"`
	Price      *string `json:"price"`
	Cost       *string `json:"cost"`
}

func productResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		ItemNumber: p.ItemNumber,
		Name:       p.Name,
		Price:      p.Price,
		Cost:       p.Cost,
	}
}

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Order("item_number asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list products")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, productResponse(p))
		}
		return c.JSON(res)
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		body.ItemNumber = strings.TrimSpace(body.ItemNumber)
		body.Name = strings.TrimSpace(body.Name)

		if body.ItemNumber == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "item_number and name are required")
		}

		var existing models.Product
		if err := database.DB.Where("item_number = ?", body.ItemNumber).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "this item number is already in use")
		}

		p := models.Product{
			ItemNumber: body.ItemNumber,
			Name:       body.Name,
			Price:      strings.TrimSpace(body.Price),
			Cost:       strings.TrimSpace(body.Cost),
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create product")
		}

		return c.Status(fiber.StatusCreated).JSON(productResponse(p))
	}
}

// PUT /api/products/:id
// Writes one ProductLog row per changed field, sharing a change-set id, in
// the same transaction as the update itself.
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		actor, err := auth.CurrentActor(c)
		if err != nil {
			return err
		}

		type fieldChange struct {
			field  string
			before string
			after  string
		}
		var changes []fieldChange

		if body.ItemNumber != nil {
			itemNumber := strings.TrimSpace(*body.ItemNumber)
			if itemNumber == "" {
				return fiber.NewError(fiber.StatusBadRequest, "item_number cannot be empty")
			}
			if itemNumber != p.ItemNumber {
				// Collision is checked against other products only.
				var other models.Product
				if err := database.DB.Where("item_number = ? AND id <> ?", itemNumber, p.ID).First(&other).Error; err == nil {
					return fiber.NewError(fiber.StatusBadRequest, "this item number is already in use")
				}
				changes = append(changes, fieldChange{"item_number", p.ItemNumber, itemNumber})
				p.ItemNumber = itemNumber
			}
		}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			if name != p.Name {
				changes = append(changes, fieldChange{"name", p.Name, name})
				p.Name = name
			}
		}
		if body.Price != nil {
			price := strings.TrimSpace(*body.Price)
			if price != p.Price {
				changes = append(changes, fieldChange{"price", p.Price, price})
				p.Price = price
			}
		}
		if body.Cost != nil {
			cost := strings.TrimSpace(*body.Cost)
			if cost != p.Cost {
				changes = append(changes, fieldChange{"cost", p.Cost, cost})
				p.Cost = cost
			}
		}

		if len(changes) == 0 {
			return c.JSON(productResponse(p))
		}

		changeSetID := uuid.NewString()
		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&p).Error; err != nil {
				return err
			}
			for _, ch := range changes {
				logRow := models.ProductLog{
					ChangeSetID:  changeSetID,
					FieldChanged: ch.field,
					ValueBefore:  ch.before,
					ValueAfter:   ch.after,
					ProductID:    p.ID,
					UserID:       actor.ID,
				}
				if err := tx.Create(&logRow).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update product")
		}

		return c.JSON(productResponse(p))
	}
}

// DELETE /api/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}

		var invCount int64
		database.DB.Model(&models.Inventory{}).Where("product_id = ?", p.ID).Count(&invCount)
		if invCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product still has inventories, remove them first")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete product")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
