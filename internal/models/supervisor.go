package models

// Supervisor permission names checked by the API.
const (
	PermManageBuildings       = "manage_buildings"
	PermManageUnitTypes       = "manage_unit_types"
	PermManageUnits           = "manage_units"
	PermManageTenants         = "manage_tenants"
	PermManageLeases          = "manage_leases"
	PermManagePayments        = "manage_payments"
	PermManageInvoices        = "manage_invoices"
	PermManageMaintenance     = "manage_maintenance"
	PermManageNotifications   = "manage_notifications"
	PermManageSupportMessages = "manage_support_messages"
	PermManageActivityLogs    = "manage_activity_logs"
	PermViewReports           = "view_reports"
)

// AllPermissions lists every permission name, in the order they are seeded.
var AllPermissions = []string{
	PermManageBuildings,
	PermManageUnitTypes,
	PermManageUnits,
	PermManageTenants,
	PermManageLeases,
	PermManagePayments,
	PermManageInvoices,
	PermManageMaintenance,
	PermManageNotifications,
	PermManageSupportMessages,
	PermManageActivityLogs,
	PermViewReports,
}

// SupervisorPermission is a named capability granted to supervisors.
type SupervisorPermission struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (SupervisorPermission) TableName() string { return "supervisor_permissions" }

// SupervisorPermissionLinksTable joins supervisors to their permissions.
const SupervisorPermissionLinksTable = "supervisor_permission_links"

// Supervisor is a staff member scoped to one building.
type Supervisor struct {
	ID          uint                   `gorm:"primaryKey" json:"id"`
	UserID      uint                   `gorm:"not null;uniqueIndex" json:"user_id"`
	User        *User                  `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	BuildingID  uint                   `gorm:"not null;index" json:"building_id"`
	Building    *Building              `gorm:"constraint:OnDelete:CASCADE" json:"building,omitempty"`
	Permissions []SupervisorPermission `gorm:"many2many:supervisor_permission_links;constraint:OnDelete:CASCADE" json:"permissions"`
}

func (Supervisor) TableName() string { return "supervisors" }

// HasPermission reports whether name is in the supervisor's permission set.
func (s Supervisor) HasPermission(name string) bool {
	for _, p := range s.Permissions {
		if p.Name == name {
			return true
		}
	}
	return false
}

// PermissionNames lists the names in the permission set.
func (s Supervisor) PermissionNames() []string {
	names := make([]string, 0, len(s.Permissions))
	for _, p := range s.Permissions {
		names = append(names, p.Name)
	}
	return names
}
