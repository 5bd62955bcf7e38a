package inventory

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"stocktrack-backend/internal/auth"
	"stocktrack-backend/internal/database"
	"stocktrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InventoryResponse struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"product_id"`
	ItemNumber  string `json:"item_number"`
	ProductName string `json:"product_name"`
	StoreID     uint   `json:"store_id"`
	StoreName   string `json:"store_name"`
	Quantity    int    `json:"quantity"`
	Threshold   int    `json:"threshold"`
	LowStock    bool   `json:"low_stock"`
	LastUpdated string `json:"last_updated"`
}

// InventoryID accepts either a numeric id or the literal "new" in JSON
// request bodies. "new" decodes to zero, the create sentinel.
type InventoryID uint

func (id *InventoryID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if string(trimmed) == `"new"` {
		*id = 0
		return nil
	}
	var n uint
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return errors.New(`inventory_id must be a number or "new"`)
	}
	*id = InventoryID(n)
	return nil
}

type MutateInventoryRequest struct {
	InventoryID InventoryID `json:"inventory_id"`
	Quantity    int         `json:"quantity"`
	Threshold   *int        `json:"threshold"`
	ProductID   uint        `json:"product_id"`
	StoreID     uint        `json:"store_id"`
}

func inventoryResponse(inv models.Inventory) InventoryResponse {
	return InventoryResponse{
		ID:          inv.ID,
		ProductID:   inv.ProductID,
		ItemNumber:  inv.Product.ItemNumber,
		ProductName: inv.Product.Name,
		StoreID:     inv.StoreID,
		StoreName:   inv.Store.Name,
		Quantity:    inv.Quantity,
		Threshold:   inv.Threshold,
		LowStock:    inv.LowStock(),
		LastUpdated: inv.LastUpdated.Format("2006-01-02 15:04:05"),
	}
}

// rejectServiceErr maps mutation service errors onto HTTP rejections.
func rejectServiceErr(err error) error {
	switch {
	case errors.Is(err, ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, "you are not allowed to mutate this inventory")
	case errors.Is(err, ErrNoChange):
		return fiber.NewError(fiber.StatusBadRequest, "quantity and threshold are unchanged, nothing to do")
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "inventory mutation failed")
	}
}

// GET /api/inventories?store_id=
func ListInventoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Inventory{}).Preload("Product").Preload("Store")

		if storeIDStr := c.Query("store_id"); storeIDStr != "" {
			storeID, err := strconv.ParseUint(storeIDStr, 10, 32)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "store_id must be numeric")
			}
			dbq = dbq.Where("store_id = ?", storeID)
		}

		var inventories []models.Inventory
		if err := dbq.Order("id asc").Find(&inventories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list inventories")
		}

		res := make([]InventoryResponse, 0, len(inventories))
		for _, inv := range inventories {
			res = append(res, inventoryResponse(inv))
		}
		return c.JSON(res)
	}
}

// POST /api/inventories/mutate
// The programmatic endpoint: {inventory_id: <id>|"new", quantity, threshold,
// product_id?, store_id?}. One InventoryLog row per successful call.
func MutateInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MutateInventoryRequest
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
		}

		actor, err := auth.CurrentActor(c)
		if err != nil {
			return err
		}

		res, err := MutateAndLog(database.DB, actor, MutationInput{
			InventoryID: uint(body.InventoryID),
			ProductID:   body.ProductID,
			StoreID:     body.StoreID,
			Quantity:    body.Quantity,
			Threshold:   body.Threshold,
		})
		if err != nil {
			return rejectServiceErr(err)
		}

		message := "inventory updated"
		if res.Created {
			message = "inventory created"
		}

		return c.JSON(fiber.Map{
			"status":        "success",
			"message":       message,
			"inventory_id":  res.Inventory.ID,
			"new_quantity":  res.Inventory.Quantity,
			"new_threshold": res.Inventory.Threshold,
		})
	}
}

// PUT /api/inventories/:id  {quantity, threshold}
func EditInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "inventory id must be numeric")
		}

		var body struct {
			Quantity  int  `json:"quantity"`
			Threshold *int `json:"threshold"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		actor, err := auth.CurrentActor(c)
		if err != nil {
			return err
		}

		res, err := MutateAndLog(database.DB, actor, MutationInput{
			InventoryID: uint(id),
			Quantity:    body.Quantity,
			Threshold:   body.Threshold,
		})
		if err != nil {
			return rejectServiceErr(err)
		}

		var full models.Inventory
		if err := database.DB.Preload("Product").Preload("Store").First(&full, res.Inventory.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load inventory")
		}
		return c.JSON(inventoryResponse(full))
	}
}

// DELETE /api/inventories/:id
// Cascades to the inventory's log rows.
func DeleteInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "inventory id must be numeric")
		}

		actor, err := auth.CurrentActor(c)
		if err != nil {
			return err
		}

		if err := DeleteInventory(database.DB, actor, uint(id)); err != nil {
			return rejectServiceErr(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

type AllocateEntry struct {
	StoreID   uint `json:"store_id"`
	Quantity  int  `json:"quantity"`
	Threshold *int `json:"threshold"`
}

type AllocateInventoryRequest struct {
	ProductID uint            `json:"product_id"`
	Entries   []AllocateEntry `json:"entries"`
}

// POST /api/inventories/allocate
// Creates (or tops up) the product's inventory across the given stores.
// Each entry goes through the mutate-and-log primitive, so every row gets
// its own log entry; the whole allocation commits or rolls back as one.
func AllocateInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AllocateInventoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.ProductID == 0 || len(body.Entries) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id and entries are required")
		}

		actor, err := auth.CurrentActor(c)
		if err != nil {
			return err
		}

		var responses []fiber.Map
		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			for _, entry := range body.Entries {
				res, err := MutateAndLog(tx, actor, MutationInput{
					ProductID: body.ProductID,
					StoreID:   entry.StoreID,
					Quantity:  entry.Quantity,
					Threshold: entry.Threshold,
				})
				if errors.Is(err, ErrNoChange) {
					continue
				}
				if err != nil {
					return err
				}
				responses = append(responses, fiber.Map{
					"inventory_id": res.Inventory.ID,
					"store_id":     res.Inventory.StoreID,
					"quantity":     res.Inventory.Quantity,
					"threshold":    res.Inventory.Threshold,
					"created":      res.Created,
				})
			}
			return nil
		})
		if txErr != nil {
			return rejectServiceErr(txErr)
		}

		return c.JSON(fiber.Map{
			"status":      "success",
			"allocated":   len(responses),
			"inventories": responses,
		})
	}
}
