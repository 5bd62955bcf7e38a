package database

import (
	"log"

	"stocktrack-backend/internal/config"
	"stocktrack-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("database connection established, migration complete")
}

// Migrate creates or updates the schema. Shared with tests running on sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Store{},
		&models.User{},
		&models.Product{},
		&models.Inventory{},
		&models.InventoryLog{},
		&models.ProductLog{},
	)
}
