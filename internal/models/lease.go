package models

import "time"

// Lease is a time-bounded agreement renting one unit to one tenant.
// Status transitions are manual; an ended lease stays active until an
// administrator expires it.
type Lease struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	ContractNumber string      `gorm:"size:20;uniqueIndex;not null" json:"contract_number"`
	UnitID         uint        `gorm:"not null;uniqueIndex" json:"unit_id"`
	Unit           *Unit       `gorm:"constraint:OnDelete:CASCADE" json:"unit,omitempty"`
	TenantID       uint        `gorm:"not null;index" json:"tenant_id"`
	Tenant         *Tenant     `gorm:"constraint:OnDelete:CASCADE" json:"tenant,omitempty"`
	StartDate      Date        `gorm:"not null;index" json:"start_date"`
	EndDate        Date        `gorm:"not null;index" json:"end_date"`
	MonthlyRent    float64     `gorm:"type:decimal(10,2);not null" json:"monthly_rent"`
	Deposit        float64     `gorm:"type:decimal(10,2);not null" json:"deposit"`
	Status         LeaseStatus `gorm:"size:15;not null;default:active;index" json:"status"`
	IsActive       bool        `gorm:"not null" json:"is_active"`
	ContractFile   string      `gorm:"size:255" json:"contract_file"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (Lease) TableName() string { return "leases" }

// RemainingDays is the number of days from today to the end date.
// It goes negative once the lease has ended.
func (l Lease) RemainingDays(today Date) int {
	return today.DaysUntil(l.EndDate)
}

// IsExpired reports whether the end date lies before today.
func (l Lease) IsExpired(today Date) bool {
	return l.RemainingDays(today) < 0
}

// DurationMonths is the number of started months between start and end.
func (l Lease) DurationMonths() int {
	years := l.EndDate.Year() - l.StartDate.Year()
	months := years*12 + int(l.EndDate.Month()) - int(l.StartDate.Month())
	if l.EndDate.Day() > l.StartDate.Day() {
		months++
	}
	return months
}

// Payment records money received against a lease.
type Payment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	LeaseID       uint          `gorm:"not null;index" json:"lease_id"`
	Lease         *Lease        `gorm:"constraint:OnDelete:CASCADE" json:"lease,omitempty"`
	Date          Date          `gorm:"column:payment_date;not null;index" json:"date"`
	Amount        float64       `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	Notes         string        `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
