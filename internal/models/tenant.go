package models

// Tenant is the renting party attached to a user account.
type Tenant struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	User        *User      `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	TenantType  TenantType `gorm:"size:10;not null" json:"tenant_type"`
	NationalID  string     `gorm:"size:20;uniqueIndex;not null" json:"national_id"`
	CompanyName string     `gorm:"size:100" json:"company_name"`
	Address     string     `gorm:"size:255;not null" json:"address"`
	Notes       string     `gorm:"type:text" json:"notes"`
}

func (Tenant) TableName() string { return "tenants" }
