package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog records an administrative action. The user reference is
// cleared, not cascaded, when the account is deleted.
type ActivityLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    *uint          `gorm:"index" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Action    string         `gorm:"size:255;not null" json:"action"`
	Details   datatypes.JSON `json:"details,omitempty"`
	Timestamp time.Time      `gorm:"autoCreateTime;index" json:"timestamp"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
