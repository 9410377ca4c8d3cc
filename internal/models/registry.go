package models

// All returns every persisted model, parents before children.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Building{},
		&UnitType{},
		&Unit{},
		&Tenant{},
		&Lease{},
		&Payment{},
		&Invoice{},
		&MaintenanceRequest{},
		&MaintenanceReview{},
		&Notification{},
		&SupportMessage{},
		&ActivityLog{},
		&SupervisorPermission{},
		&Supervisor{},
	}
}
