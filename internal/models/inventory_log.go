package models

import "time"

// InventoryLog is the immutable audit record written alongside every
// inventory mutation, in the same transaction. Never updated, deleted
// only by cascade from its parent inventory.
type InventoryLog struct {
	ID              uint       `gorm:"primaryKey"`
	Timestamp       time.Time  `gorm:"not null;index;autoCreateTime"`
	QuantityBefore  int        `gorm:"not null"`
	QuantityAfter   int        `gorm:"not null"`
	ThresholdBefore int        `gorm:"not null"`
	ThresholdAfter  int        `gorm:"not null"`
	InventoryID     uint       `gorm:"not null;index"`
	Inventory       *Inventory `gorm:"constraint:OnDelete:CASCADE"`
	UserID          uint       `gorm:"not null;index"`
	User            *User
}
