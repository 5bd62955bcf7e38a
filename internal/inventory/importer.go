package inventory

import (
	"errors"
	"fmt"
	"strconv"

	"stocktrack-backend/internal/models"

	"gorm.io/gorm"
)

// Import column names, matched case-insensitively against the header row.
const (
	colItemNumber  = "item number"
	colStoreName   = "store name"
	colQuantity    = "quantity"
	colProductName = "product name"
	colPrice       = "price"
	colCost        = "cost"
)

type ImportResult struct {
	Imported int      `json:"imported"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Messages []string `json:"messages"`
}

// ImportInventories runs one inventory import as a single transaction. Rows
// with an expected validation gap (brand-new item number without a product
// name) are skipped with a message; any other row error aborts and rolls
// back the whole run.
func ImportInventories(db *gorm.DB, actor models.User, table *Table) (*ImportResult, error) {
	for _, col := range []string{colItemNumber, colStoreName, colQuantity} {
		if !table.HasColumn(col) {
			return nil, fmt.Errorf("required column %q is missing", col)
		}
	}

	result := &ImportResult{Messages: []string{}}
	err := db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < table.Len(); i++ {
			rowNum := i + 2 // 1-based, after the header

			itemNumber := table.Get(i, colItemNumber)
			storeName := table.Get(i, colStoreName)
			quantityStr := table.Get(i, colQuantity)

			if itemNumber == "" && storeName == "" && quantityStr == "" {
				continue // blank row
			}
			if itemNumber == "" || storeName == "" {
				return fmt.Errorf("row %d: item number and store name are required", rowNum)
			}

			quantity, err := strconv.Atoi(quantityStr)
			if err != nil {
				return fmt.Errorf("row %d: quantity %q is not a number", rowNum, quantityStr)
			}

			// Look up or create the store by name.
			var store models.Store
			if err := tx.Where("name = ?", storeName).First(&store).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				store = models.Store{Name: storeName}
				if err := tx.Create(&store).Error; err != nil {
					return fmt.Errorf("row %d: could not create store %q: %w", rowNum, storeName, err)
				}
			}

			// Look up or create the product by item number. A brand-new item
			// number without a product name is an expected gap: skip the row.
			var product models.Product
			if err := tx.Where("item_number = ?", itemNumber).First(&product).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				productName := table.Get(i, colProductName)
				if productName == "" {
					result.Skipped++
					result.Messages = append(result.Messages,
						fmt.Sprintf("row %d: unknown item number %q and no product name given, row skipped", rowNum, itemNumber))
					continue
				}
				product = models.Product{ItemNumber: itemNumber, Name: productName}
				if err := tx.Create(&product).Error; err != nil {
					return fmt.Errorf("row %d: could not create product %q: %w", rowNum, itemNumber, err)
				}
			}

			// Upsert the (product, store) inventory through the same
			// mutate-and-log primitive as every other write path. Threshold
			// stays nil so existing rows keep theirs and new rows get the
			// default.
			res, err := MutateAndLog(tx, actor, MutationInput{
				ProductID: product.ID,
				StoreID:   store.ID,
				Quantity:  quantity,
			})
			if errors.Is(err, ErrNoChange) {
				result.Skipped++
				result.Messages = append(result.Messages,
					fmt.Sprintf("row %d: quantity for %q at %q already %d, row skipped", rowNum, itemNumber, storeName, quantity))
				continue
			}
			if err != nil {
				return fmt.Errorf("row %d: %w", rowNum, err)
			}

			if res.Created {
				result.Imported++
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ImportProducts runs one product-master import as a single transaction:
// create products for new item numbers, update name/price/cost for known
// ones. Master edits through this path are logged per changed field like
// manual edits, under one change set per import run.
func ImportProducts(db *gorm.DB, actor models.User, table *Table, changeSetID string) (*ImportResult, error) {
	for _, col := range []string{colItemNumber, colProductName} {
		if !table.HasColumn(col) {
			return nil, fmt.Errorf("required column %q is missing", col)
		}
	}

	result := &ImportResult{Messages: []string{}}
	err := db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < table.Len(); i++ {
			rowNum := i + 2

			itemNumber := table.Get(i, colItemNumber)
			name := table.Get(i, colProductName)
			price := table.Get(i, colPrice)
			cost := table.Get(i, colCost)

			if itemNumber == "" && name == "" {
				continue
			}
			if itemNumber == "" {
				return fmt.Errorf("row %d: item number is required", rowNum)
			}
			if name == "" {
				return fmt.Errorf("row %d: product name is required", rowNum)
			}

			var product models.Product
			if err := tx.Where("item_number = ?", itemNumber).First(&product).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				product = models.Product{ItemNumber: itemNumber, Name: name, Price: price, Cost: cost}
				if err := tx.Create(&product).Error; err != nil {
					return fmt.Errorf("row %d: could not create product %q: %w", rowNum, itemNumber, err)
				}
				result.Imported++
				continue
			}

			changed := false
			for _, ch := range []struct {
				field   string
				current *string
				next    string
			}{
				{"name", &product.Name, name},
				{"price", &product.Price, price},
				{"cost", &product.Cost, cost},
			} {
				if ch.next == "" || ch.next == *ch.current {
					continue
				}
				logRow := models.ProductLog{
					ChangeSetID:  changeSetID,
					FieldChanged: ch.field,
					ValueBefore:  *ch.current,
					ValueAfter:   ch.next,
					ProductID:    product.ID,
					UserID:       actor.ID,
				}
				if err := tx.Create(&logRow).Error; err != nil {
					return fmt.Errorf("row %d: could not write product log: %w", rowNum, err)
				}
				*ch.current = ch.next
				changed = true
			}

			if !changed {
				result.Skipped++
				continue
			}
			if err := tx.Save(&product).Error; err != nil {
				return fmt.Errorf("row %d: could not update product %q: %w", rowNum, itemNumber, err)
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
