package models

import "time"

type Product struct {
	ID         uint   `gorm:"primaryKey"`
	ItemNumber string `gorm:"size:120;uniqueIndex;not null"` // business key, edits collision-checked against other rows
	Name       string `gorm:"size:128;not null"`
	Price      string `gorm:"size:128"` // optional, kept as entered
	Cost       string `gorm:"size:128"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Inventories []Inventory
	ProductLogs []ProductLog
}
