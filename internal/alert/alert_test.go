package alert

import (
	"testing"

	"stocktrack-backend/internal/database"
	"stocktrack-backend/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeSender struct {
	calls []sentMail
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

func (s *fakeSender) Send(to []string, subject, body string) error {
	s.calls = append(s.calls, sentMail{to: to, subject: subject, body: body})
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedInventory(t *testing.T, db *gorm.DB, itemNumber, storeName string, quantity, threshold int) models.Inventory {
	t.Helper()

	store := models.Store{Name: storeName}
	require.NoError(t, db.Where("name = ?", storeName).FirstOrCreate(&store).Error)

	product := models.Product{ItemNumber: itemNumber, Name: "Product " + itemNumber}
	require.NoError(t, db.Where("item_number = ?", itemNumber).FirstOrCreate(&product).Error)

	inv := models.Inventory{ProductID: product.ID, StoreID: store.ID, Quantity: quantity, Threshold: threshold}
	require.NoError(t, db.Create(&inv).Error)
	return inv
}

func seedUser(t *testing.T, db *gorm.DB, username, email string, role models.Role) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		Username: username, Email: email, PasswordHash: "x", Role: role,
	}).Error)
}

func TestScanSelectsOnlyAtOrBelowThreshold(t *testing.T) {
	db := newTestDB(t)
	seedInventory(t, db, "LOW-1", "Central", 3, 10)
	seedInventory(t, db, "OK-1", "Central", 15, 10)

	items, err := Scan(db)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "LOW-1", items[0].ItemNumber)
	require.Equal(t, 3, items[0].Quantity)
	require.Equal(t, 10, items[0].Threshold)
}

func TestScanBoundaryIsInclusive(t *testing.T) {
	db := newTestDB(t)
	seedInventory(t, db, "EDGE-1", "Central", 10, 10)

	items, err := Scan(db)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestRunWithoutLowStockSendsNothing(t *testing.T) {
	db := newTestDB(t)
	seedInventory(t, db, "OK-1", "Central", 50, 10)
	seedUser(t, db, "alice", "alice@example.com", models.RoleAdmin)

	sender := &fakeSender{}
	require.NoError(t, Run(db, sender, zap.NewNop()))
	require.Empty(t, sender.calls)
}

func TestRunWithoutAdminsSkipsSend(t *testing.T) {
	db := newTestDB(t)
	seedInventory(t, db, "LOW-1", "Central", 1, 10)
	seedUser(t, db, "carol", "carol@example.com", models.RoleStaff)
	seedUser(t, db, "bob", "bob@example.com", models.RoleManager)

	sender := &fakeSender{}
	require.NoError(t, Run(db, sender, zap.NewNop()))
	require.Empty(t, sender.calls)
}

func TestRunSendsOneBatchedNotification(t *testing.T) {
	db := newTestDB(t)
	seedInventory(t, db, "LOW-1", "Central", 2, 10)
	seedInventory(t, db, "LOW-2", "Harbor", 0, 5)
	seedUser(t, db, "alice", "alice@example.com", models.RoleAdmin)
	seedUser(t, db, "dave", "dave@example.com", models.RoleAdmin)
	seedUser(t, db, "carol", "carol@example.com", models.RoleStaff)

	sender := &fakeSender{}
	require.NoError(t, Run(db, sender, zap.NewNop()))

	require.Len(t, sender.calls, 1)
	call := sender.calls[0]
	require.ElementsMatch(t, []string{"alice@example.com", "dave@example.com"}, call.to)
	require.Equal(t, subject, call.subject)
	require.Contains(t, call.body, "LOW-1")
	require.Contains(t, call.body, "LOW-2")
	require.Contains(t, call.body, "Harbor")
	require.NotContains(t, call.body, "carol@example.com")
}

func TestRunSingleItemSingleAdmin(t *testing.T) {
	db := newTestDB(t)
	seedInventory(t, db, "LOW-9", "Central", 3, 10)
	seedUser(t, db, "alice", "alice@example.com", models.RoleAdmin)

	sender := &fakeSender{}
	require.NoError(t, Run(db, sender, zap.NewNop()))

	require.Len(t, sender.calls, 1)
	require.Equal(t, []string{"alice@example.com"}, sender.calls[0].to)
	require.Contains(t, sender.calls[0].body, "LOW-9")
}
