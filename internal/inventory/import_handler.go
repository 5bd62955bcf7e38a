package inventory

import (
	"stocktrack-backend/internal/auth"
	"stocktrack-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// POST /api/inventories/import (multipart, field "file")
// Columns: "item number", "store name", "quantity", optional "product name".
func ImportInventoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		table, err := tableFromUpload(c)
		if err != nil {
			return err
		}

		actor, actorErr := auth.CurrentActor(c)
		if actorErr != nil {
			return actorErr
		}

		result, err := ImportInventories(database.DB, actor, table)
		if err != nil {
			zap.L().Warn("inventory import aborted", zap.Error(err))
			return fiber.NewError(fiber.StatusBadRequest, "import aborted, nothing was saved: "+err.Error())
		}

		zap.L().Info("inventory import finished",
			zap.Int("imported", result.Imported),
			zap.Int("updated", result.Updated),
			zap.Int("skipped", result.Skipped))
		return c.JSON(result)
	}
}

// POST /api/products/import (multipart, field "file")
// Columns: "item number", "product name", optional "price", "cost".
func ImportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		table, err := tableFromUpload(c)
		if err != nil {
			return err
		}

		actor, actorErr := auth.CurrentActor(c)
		if actorErr != nil {
			return actorErr
		}

		result, err := ImportProducts(database.DB, actor, table, uuid.NewString())
		if err != nil {
			zap.L().Warn("product import aborted", zap.Error(err))
			return fiber.NewError(fiber.StatusBadRequest, "import aborted, nothing was saved: "+err.Error())
		}

		zap.L().Info("product import finished",
			zap.Int("imported", result.Imported),
			zap.Int("updated", result.Updated),
			zap.Int("skipped", result.Skipped))
		return c.JSON(result)
	}
}

func tableFromUpload(c *fiber.Ctx) (*Table, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "upload a file in the 'file' form field")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "could not open uploaded file")
	}
	defer f.Close()

	table, err := ReadTable(fileHeader.Filename, f)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "could not parse file: "+err.Error())
	}
	return table, nil
}
