package models

import "time"

// ProductLog records one master-data field change. An edit touching several
// fields produces several rows sharing one ChangeSetID.
type ProductLog struct {
	ID           uint      `gorm:"primaryKey"`
	Timestamp    time.Time `gorm:"not null;index;autoCreateTime"`
	ChangeSetID  string    `gorm:"size:36;not null;index"`
	FieldChanged string    `gorm:"size:64;not null"`
	ValueBefore  string    `gorm:"size:128;not null"`
	ValueAfter   string    `gorm:"size:128;not null"`
	ProductID    uint      `gorm:"not null;index"`
	UserID       uint      `gorm:"not null;index"`
	User         *User
}
