package models

import "time"

type Store struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:128;not null;unique"`
	Address   string `gorm:"size:128"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Users       []User
	Inventories []Inventory
}
