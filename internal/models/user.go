package models

import "time"

// User is an account that can sign in. Role flags mirror the admin console:
// superusers manage everything, supervisors manage one building, tenants see
// their own leases.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PhoneNumber  string     `gorm:"size:15;uniqueIndex;not null" json:"phone_number"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	FirstName    string     `gorm:"size:150" json:"first_name"`
	LastName     string     `gorm:"size:150" json:"last_name"`
	IsSuperuser  bool       `gorm:"not null" json:"is_superuser"`
	IsStaff      bool       `gorm:"not null" json:"is_staff"`
	IsActive     bool       `gorm:"not null" json:"is_active"`
	IsTenant     bool       `gorm:"not null" json:"is_tenant"`
	IsSupervisor bool       `gorm:"not null" json:"is_supervisor"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "users" }
