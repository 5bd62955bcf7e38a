package audit

import (
	"strconv"

	"stocktrack-backend/internal/database"
	"stocktrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const pageSize = 20

type InventoryLogResponse struct {
	ID              uint   `json:"id"`
	Timestamp       string `json:"timestamp"`
	InventoryID     uint   `json:"inventory_id"`
	ItemNumber      string `json:"item_number"`
	ProductName     string `json:"product_name"`
	StoreName       string `json:"store_name"`
	QuantityBefore  int    `json:"quantity_before"`
	QuantityAfter   int    `json:"quantity_after"`
	ThresholdBefore int    `json:"threshold_before"`
	ThresholdAfter  int    `json:"threshold_after"`
	UserID          uint   `json:"user_id"`
	Username        string `json:"username"`
}

type ProductLogResponse struct {
	ID           uint   `json:"id"`
	Timestamp    string `json:"timestamp"`
	ChangeSetID  string `json:"change_set_id"`
	ProductID    uint   `json:"product_id"`
	FieldChanged string `json:"field_changed"`
	ValueBefore  string `json:"value_before"`
	ValueAfter   string `json:"value_after"`
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
}

func pageParam(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return page
}

// GET /api/audit/inventory-logs?page=&inventory_id=&user_id=
// 20 rows per page, newest first.
func ListInventoryLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := pageParam(c)

		dbq := database.DB.Model(&models.InventoryLog{})
		if v := c.Query("inventory_id"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
				dbq = dbq.Where("inventory_id = ?", id)
			}
		}
		if v := c.Query("user_id"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
				dbq = dbq.Where("user_id = ?", id)
			}
		}

		var total int64
		if err := dbq.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not count logs")
		}

		var logs []models.InventoryLog
		if err := dbq.Preload("Inventory.Product").Preload("Inventory.Store").Preload("User").
			Order("timestamp DESC, id DESC").
			Offset((page - 1) * pageSize).Limit(pageSize).
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list logs")
		}

		resp := make([]InventoryLogResponse, 0, len(logs))
		for _, logRow := range logs {
			row := InventoryLogResponse{
				ID:              logRow.ID,
				Timestamp:       logRow.Timestamp.Format("2006-01-02 15:04:05"),
				InventoryID:     logRow.InventoryID,
				QuantityBefore:  logRow.QuantityBefore,
				QuantityAfter:   logRow.QuantityAfter,
				ThresholdBefore: logRow.ThresholdBefore,
				ThresholdAfter:  logRow.ThresholdAfter,
				UserID:          logRow.UserID,
			}

			if logRow.Inventory != nil {
				row.ItemNumber = logRow.Inventory.Product.ItemNumber
				row.ProductName = logRow.Inventory.Product.Name
				row.StoreName = logRow.Inventory.Store.Name
			}
			if logRow.User != nil {
				row.Username = logRow.User.Username
			}

			resp = append(resp, row)
		}

		return c.JSON(fiber.Map{
			"page":      page,
			"page_size": pageSize,
			"total":     total,
			"logs":      resp,
		})
	}
}

// GET /api/audit/product-logs?page=&product_id=
func ListProductLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := pageParam(c)

		dbq := database.DB.Model(&models.ProductLog{})
		if v := c.Query("product_id"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
				dbq = dbq.Where("product_id = ?", id)
			}
		}

		var total int64
		if err := dbq.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not count logs")
		}

		var logs []models.ProductLog
		if err := dbq.Preload("User").
			Order("timestamp DESC, id DESC").
			Offset((page - 1) * pageSize).Limit(pageSize).
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list logs")
		}

		resp := make([]ProductLogResponse, 0, len(logs))
		for _, logRow := range logs {
			row := ProductLogResponse{
				ID:           logRow.ID,
				Timestamp:    logRow.Timestamp.Format("2006-01-02 15:04:05"),
				ChangeSetID:  logRow.ChangeSetID,
				ProductID:    logRow.ProductID,
				FieldChanged: logRow.FieldChanged,
				ValueBefore:  logRow.ValueBefore,
				ValueAfter:   logRow.ValueAfter,
				UserID:       logRow.UserID,
			}
			if logRow.User != nil {
				row.Username = logRow.User.Username
			}
			resp = append(resp, row)
		}

		return c.JSON(fiber.Map{
			"page":      page,
			"page_size": pageSize,
			"total":     total,
			"logs":      resp,
		})
	}
}
