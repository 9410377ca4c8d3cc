package models

import "time"

// MaintenanceRequest is a reported problem with a unit.
type MaintenanceRequest struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	UnitID         uint              `gorm:"not null;index" json:"unit_id"`
	Unit           *Unit             `gorm:"constraint:OnDelete:CASCADE" json:"unit,omitempty"`
	RequestedByID  *uint             `gorm:"index" json:"requested_by_id"`
	RequestedBy    *User             `gorm:"constraint:OnDelete:SET NULL" json:"requested_by,omitempty"`
	Description    string            `gorm:"type:text;not null" json:"description"`
	RequestDate    Date              `gorm:"not null;index" json:"request_date"`
	Status         MaintenanceStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	CompletionDate Date              `json:"completion_date"`
	Notes          string            `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (MaintenanceRequest) TableName() string { return "maintenance_requests" }

// Rating bounds for a maintenance review.
const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// MaintenanceReview is the tenant's rating of a finished request.
type MaintenanceReview struct {
	ID                   uint                `gorm:"primaryKey" json:"id"`
	MaintenanceRequestID uint                `gorm:"not null;uniqueIndex" json:"maintenance_request_id"`
	MaintenanceRequest   *MaintenanceRequest `gorm:"constraint:OnDelete:CASCADE" json:"maintenance_request,omitempty"`
	Rating               uint8               `gorm:"not null" json:"rating"`
	Feedback             string              `gorm:"type:text" json:"feedback"`
	CreatedAt            time.Time           `json:"created_at"`
}

func (MaintenanceReview) TableName() string { return "maintenance_reviews" }
