package models

import (
	"math"
	"time"
)

// Invoice bills a lease. It is independent of recorded payments: an invoice
// can be marked paid without any Payment rows.
type Invoice struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	LeaseID       uint          `gorm:"not null;index" json:"lease_id"`
	Lease         *Lease        `gorm:"constraint:OnDelete:CASCADE" json:"lease,omitempty"`
	InvoiceNumber string        `gorm:"size:20;uniqueIndex;not null" json:"invoice_number"`
	IssueDate     Date          `gorm:"not null;index" json:"issue_date"`
	DueDate       Date          `gorm:"not null;index" json:"due_date"`
	TotalAmount   float64       `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	VAT           float64       `gorm:"column:vat;type:decimal(10,2);not null" json:"vat"`
	Status        InvoiceStatus `gorm:"size:10;not null;default:unpaid;index" json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// IsOverdue is true iff the due date is before today and the invoice is not paid.
func (i Invoice) IsOverdue(today Date) bool {
	return i.DueDate.Before(today) && i.Status != InvoicePaid
}

// EffectiveStatus reports overdue for unpaid invoices past their due date,
// and the stored status otherwise.
func (i Invoice) EffectiveStatus(today Date) InvoiceStatus {
	if i.IsOverdue(today) {
		return InvoiceOverdue
	}
	if i.Status == InvoiceOverdue {
		// stored as overdue but not yet due
		return InvoiceUnpaid
	}
	return i.Status
}

// VATAmount is the tax on TotalAmount, VAT being a percentage.
func (i Invoice) VATAmount() float64 {
	return roundCents(i.TotalAmount * i.VAT / 100)
}

// GrandTotal is TotalAmount plus VAT.
func (i Invoice) GrandTotal() float64 {
	return roundCents(i.TotalAmount + i.VATAmount())
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
