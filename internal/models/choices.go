package models

// UnitStatus is the occupancy state of a unit.
type UnitStatus string

const (
	UnitAvailable   UnitStatus = "available"
	UnitRented      UnitStatus = "rented"
	UnitMaintenance UnitStatus = "maintenance"
)

// Valid reports whether s is a known unit status.
func (s UnitStatus) Valid() bool {
	switch s {
	case UnitAvailable, UnitRented, UnitMaintenance:
		return true
	}
	return false
}

// TenantType distinguishes private tenants from companies.
type TenantType string

const (
	TenantIndividual TenantType = "individual"
	TenantCompany    TenantType = "company"
)

func (t TenantType) Valid() bool {
	return t == TenantIndividual || t == TenantCompany
}

// LeaseStatus is the manually maintained state of a lease.
type LeaseStatus string

const (
	LeaseActive    LeaseStatus = "active"
	LeaseExpired   LeaseStatus = "expired"
	LeaseSuspended LeaseStatus = "suspended"
)

func (s LeaseStatus) Valid() bool {
	switch s {
	case LeaseActive, LeaseExpired, LeaseSuspended:
		return true
	}
	return false
}

// PaymentMethod is how a payment was received.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCard         PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentBankTransfer, PaymentCard:
		return true
	}
	return false
}

// MaintenanceStatus tracks a maintenance request.
type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceRejected   MaintenanceStatus = "rejected"
)

func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenancePending, MaintenanceInProgress, MaintenanceCompleted, MaintenanceRejected:
		return true
	}
	return false
}

// InvoiceStatus is the stored payment state of an invoice. Overdue may be
// stored explicitly but is normally derived on read, see Invoice.IsOverdue.
type InvoiceStatus string

const (
	InvoiceUnpaid  InvoiceStatus = "unpaid"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceUnpaid, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}
