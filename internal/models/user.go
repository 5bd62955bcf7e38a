package models

import "time"

type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Level defines the total order staff < manager < admin.
// Unknown values rank below staff so a corrupted role never grants access.
func (r Role) Level() int {
	switch r {
	case RoleStaff:
		return 1
	case RoleManager:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

func (r Role) Valid() bool {
	return r == RoleStaff || r == RoleManager || r == RoleAdmin
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:100;uniqueIndex;not null"`
	Email        string `gorm:"size:128;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         Role   `gorm:"size:20;not null;default:staff"`
	// Manager affiliation: the single store a manager is scoped to for writes.
	StoreID   *uint
	Store     *Store
	CreatedAt time.Time
	UpdatedAt time.Time
}
