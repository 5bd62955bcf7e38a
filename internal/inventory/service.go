package inventory

import (
	"errors"
	"fmt"

	"stocktrack-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrForbidden    = errors.New("actor is not allowed to mutate this inventory")
	ErrNoChange     = errors.New("quantity and threshold are unchanged")
	ErrNotFound     = errors.New("record not found")
	ErrInvalidInput = errors.New("invalid input")
)

// MutationInput describes one requested inventory write. InventoryID == 0
// means "create or update by (product, store) key". A nil Threshold keeps
// the existing threshold, or DefaultThreshold when creating.
type MutationInput struct {
	InventoryID uint
	ProductID   uint
	StoreID     uint
	Quantity    int
	Threshold   *int
}

type MutationResult struct {
	Inventory models.Inventory
	Log       models.InventoryLog
	Created   bool
}

// authorize rejects actors below manager, and managers acting outside
// their affiliated store. Evaluated before anything is written.
func authorize(actor models.User, storeID uint) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleManager:
		if actor.StoreID == nil || *actor.StoreID != storeID {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}

// MutateAndLog is the single write path for inventory quantities and
// thresholds. It authorizes the actor, captures the prior state, upserts the
// inventory row keyed on (product, store) and writes exactly one InventoryLog,
// all in one transaction. A failure anywhere leaves prior state untouched.
func MutateAndLog(db *gorm.DB, actor models.User, in MutationInput) (*MutationResult, error) {
	if in.Quantity < 0 || (in.Threshold != nil && *in.Threshold < 0) {
		return nil, fmt.Errorf("%w: quantity and threshold must not be negative", ErrInvalidInput)
	}

	var res *MutationResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var inv models.Inventory
		created := false

		if in.InventoryID != 0 {
			if err := tx.First(&inv, in.InventoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("inventory %d: %w", in.InventoryID, ErrNotFound)
				}
				return err
			}
		} else {
			if in.ProductID == 0 || in.StoreID == 0 {
				return fmt.Errorf("%w: product_id and store_id are required when creating", ErrInvalidInput)
			}
			var product models.Product
			if err := tx.First(&product, in.ProductID).Error; err != nil {
				return fmt.Errorf("product %d: %w", in.ProductID, ErrNotFound)
			}
			var store models.Store
			if err := tx.First(&store, in.StoreID).Error; err != nil {
				return fmt.Errorf("store %d: %w", in.StoreID, ErrNotFound)
			}

			err := tx.Where("product_id = ? AND store_id = ?", in.ProductID, in.StoreID).First(&inv).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				created = true
				inv = models.Inventory{ProductID: in.ProductID, StoreID: in.StoreID}
			case err != nil:
				return err
			}
		}

		if err := authorize(actor, inv.StoreID); err != nil {
			return err
		}

		threshold := models.DefaultThreshold
		if !created {
			threshold = inv.Threshold
		}
		if in.Threshold != nil {
			threshold = *in.Threshold
		}

		quantityBefore, thresholdBefore := 0, 0
		if !created {
			quantityBefore, thresholdBefore = inv.Quantity, inv.Threshold
			if in.Quantity == quantityBefore && threshold == thresholdBefore {
				return ErrNoChange
			}
		}

		inv.Quantity = in.Quantity
		inv.Threshold = threshold
		if err := tx.Save(&inv).Error; err != nil {
			return fmt.Errorf("could not save inventory: %w", err)
		}

		logRow := models.InventoryLog{
			QuantityBefore:  quantityBefore,
			QuantityAfter:   in.Quantity,
			ThresholdBefore: thresholdBefore,
			ThresholdAfter:  threshold,
			InventoryID:     inv.ID,
			UserID:          actor.ID,
		}
		if err := tx.Create(&logRow).Error; err != nil {
			return fmt.Errorf("could not write inventory log: %w", err)
		}

		res = &MutationResult{Inventory: inv, Log: logRow, Created: created}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteInventory removes an inventory together with its log rows.
func DeleteInventory(db *gorm.DB, actor models.User, inventoryID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var inv models.Inventory
		if err := tx.First(&inv, inventoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("inventory %d: %w", inventoryID, ErrNotFound)
			}
			return err
		}

		if err := authorize(actor, inv.StoreID); err != nil {
			return err
		}

		if err := tx.Where("inventory_id = ?", inv.ID).Delete(&models.InventoryLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&inv).Error
	})
}
