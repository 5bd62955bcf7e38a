package inventory

import (
	"testing"

	"stocktrack-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, records [][]string) *Table {
	t.Helper()
	table, err := newTable(records)
	require.NoError(t, err)
	return table
}

func TestImportInventoriesCreatesStoreProductInventory(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)

	table := mustTable(t, [][]string{
		{"Item Number", "Store Name", "Quantity", "Product Name"},
		{"N-200", "Riverside", "40", "Gadget"},
	})

	result, err := ImportInventories(db, f.admin, table)
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)
	require.Equal(t, 0, result.Skipped)

	var store models.Store
	require.NoError(t, db.Where("name = ?", "Riverside").First(&store).Error)
	var product models.Product
	require.NoError(t, db.Where("item_number = ?", "N-200").First(&product).Error)
	require.Equal(t, "Gadget", product.Name)

	var inv models.Inventory
	require.NoError(t, db.Where("product_id = ? AND store_id = ?", product.ID, store.ID).First(&inv).Error)
	require.Equal(t, 40, inv.Quantity)
	require.Equal(t, models.DefaultThreshold, inv.Threshold)

	// The import goes through the logged write path.
	require.EqualValues(t, 1, logCountFor(t, db, inv.ID))
}

func TestImportInventoriesUpdatesExistingPairInPlace(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)

	existing, err := MutateAndLog(db, f.admin, MutationInput{
		ProductID: f.widget.ID, StoreID: f.central.ID, Quantity: 10, Threshold: intPtr(3),
	})
	require.NoError(t, err)

	table := mustTable(t, [][]string{
		{"item number", "store name", "quantity"},
		{"W-100", "Central", "25"},
	})

	result, err := ImportInventories(db, f.admin, table)
	require.NoError(t, err)
	require.Equal(t, 0, result.Imported)
	require.Equal(t, 1, result.Updated)

	var inv models.Inventory
	require.NoError(t, db.First(&inv, existing.Inventory.ID).Error)
	require.Equal(t, 25, inv.Quantity)
	require.Equal(t, 3, inv.Threshold) // threshold untouched by quantity import

	var n int64
	require.NoError(t, db.Model(&models.Inventory{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestImportInventoriesAbortsOnDatabaseError(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)

	require.NoError(t, db.Exec("DROP TABLE inventories").Error)

	table := mustTable(t, [][]string{
		{"item number", "store name", "quantity", "product name"},
		{"N-300", "Central", "12", "Sprocket"},
	})

	_, err := ImportInventories(db, f.admin, table)
	require.Error(t, err)
}

func TestImportInventoriesSkipsNewItemWithoutName(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)

	table := mustTable(t, [][]string{
		{"item number", "store name", "quantity"},
		{"UNKNOWN-1", "Central", "5"},
		{"W-100", "Central", "8"},
	})

	result, err := ImportInventories(db, f.admin, table)
	require.NoError(t, err)
	require.Equal(t, 1, result.Skipped)
	require.Equal(t, 1, result.Imported)
	require.Len(t, result.Messages, 1)
	require.Contains(t, result.Messages[0], "UNKNOWN-1")

	// The skipped row created nothing.
	err = db.Where("item_number = ?", "UNKNOWN-1").First(&models.Product{}).Error
	require.Error(t, err)
}

func TestImportInventoriesMalformedQuantityRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)

	table := mustTable(t, [][]string{
		{"item number", "store name", "quantity", "product name"},
		{"N-300", "Lakeside", "12", "Sprocket"},
		{"N-301", "Lakeside", "twelve", "Cog"},
	})

	_, err := ImportInventories(db, f.admin, table)
	require.Error(t, err)
	require.Contains(t, err.Error(), "row 3")

	// The valid first row was rolled back with the rest of the batch.
	require.Error(t, db.Where("name = ?", "Lakeside").First(&models.Store{}).Error)
	require.Error(t, db.Where("item_number = ?", "N-300").First(&models.Product{}).Error)

	var n int64
	require.NoError(t, db.Model(&models.Inventory{}).Count(&n).Error)
	require.EqualValues(t, 0, n)
}

func TestImportInventoriesRequiresColumns(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)

	table := mustTable(t, [][]string{
		{"item number", "quantity"},
		{"W-100", "5"},
	})

	_, err := ImportInventories(db, f.admin, table)
	require.Error(t, err)
	require.Contains(t, err.Error(), "store name")
}

func TestImportProductsCreatesAndUpdates(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)

	table := mustTable(t, [][]string{
		{"item number", "product name", "price", "cost"},
		{"W-100", "Widget Mk2", "19.90", ""},
		{"P-500", "Bracket", "4.50", "1.20"},
	})

	result, err := ImportProducts(db, f.admin, table, "test-change-set")
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)
	require.Equal(t, 1, result.Updated)

	var updated models.Product
	require.NoError(t, db.Where("item_number = ?", "W-100").First(&updated).Error)
	require.Equal(t, "Widget Mk2", updated.Name)
	require.Equal(t, "19.90", updated.Price)

	var created models.Product
	require.NoError(t, db.Where("item_number = ?", "P-500").First(&created).Error)
	require.Equal(t, "Bracket", created.Name)

	// One ProductLog row per changed field on the existing product.
	var logs []models.ProductLog
	require.NoError(t, db.Where("product_id = ?", updated.ID).Find(&logs).Error)
	require.Len(t, logs, 2)
	for _, l := range logs {
		require.Equal(t, "test-change-set", l.ChangeSetID)
		require.Equal(t, f.admin.ID, l.UserID)
	}
}
