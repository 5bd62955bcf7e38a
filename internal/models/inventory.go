package models

import "time"

const DefaultThreshold = 10

// Inventory is the stock level of one product at one store.
type Inventory struct {
	ID          uint `gorm:"primaryKey"`
	ProductID   uint `gorm:"not null;index;uniqueIndex:idx_inventories_product_store"`
	Product     Product
	StoreID     uint `gorm:"not null;index;uniqueIndex:idx_inventories_product_store"`
	Store       Store
	Quantity    int       `gorm:"not null;default:0"`
	Threshold   int       `gorm:"not null"`
	LastUpdated time.Time `gorm:"autoUpdateTime"`

	InventoryLogs []InventoryLog `gorm:"constraint:OnDelete:CASCADE"`
}

// LowStock reports the alert condition quantity <= threshold.
func (inv Inventory) LowStock() bool {
	return inv.Quantity <= inv.Threshold
}
