package services

import (
	"github.com/stwalsh4118/rentdesk/internal/auth"
	"github.com/stwalsh4118/rentdesk/internal/database"
	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/repository"
)

// Registry holds every service built over one database.
type Registry struct {
	ActivityLogs    ActivityLogService
	Buildings       BuildingService
	UnitTypes       UnitTypeService
	Units           UnitService
	Tenants         TenantService
	Leases          LeaseService
	Payments        PaymentService
	Invoices        InvoiceService
	Maintenance     MaintenanceService
	Notifications   NotificationService
	SupportMessages SupportMessageService
	Supervisors     SupervisorService
	Permissions     PermissionService
	Users           UserService
	Dashboards      DashboardService
	Reports         ReportService

	// SupervisorRepo backs the permission gate.
	SupervisorRepo repository.SupervisorRepository
}

// NewRegistry wires repositories and services together.
func NewRegistry(db *database.Database, tokens *auth.TokenManager, store auth.TokenStore, log *logger.Logger) *Registry {
	buildings := repository.NewBuildingRepository(db)
	units := repository.NewUnitRepository(db)
	tenants := repository.NewTenantRepository(db)
	leases := repository.NewLeaseRepository(db)
	payments := repository.NewPaymentRepository(db)
	invoices := repository.NewInvoiceRepository(db)
	maintenance := repository.NewMaintenanceRequestRepository(db)
	notifications := repository.NewNotificationRepository(db)
	users := repository.NewUserRepository(db)
	supervisors := repository.NewSupervisorRepository(db)

	audit := NewActivityLogService(repository.NewActivityLogRepository(db), log)

	return &Registry{
		ActivityLogs:    audit,
		Buildings:       NewBuildingService(buildings, audit, log),
		UnitTypes:       NewUnitTypeService(repository.NewUnitTypeRepository(db), audit, log),
		Units:           NewUnitService(units, audit, log),
		Tenants:         NewTenantService(tenants, users, audit, log),
		Leases:          NewLeaseService(leases, units, tenants, audit, log),
		Payments:        NewPaymentService(payments, leases, audit, log),
		Invoices:        NewInvoiceService(invoices, leases, audit, log),
		Maintenance:     NewMaintenanceService(maintenance, repository.NewMaintenanceReviewRepository(db), leases, tenants, units, supervisors, audit, log),
		Notifications:   NewNotificationService(notifications, users, audit, log),
		SupportMessages: NewSupportMessageService(repository.NewSupportMessageRepository(db), users, audit, log),
		Supervisors:     NewSupervisorService(supervisors, users, audit, log),
		Permissions:     NewPermissionService(repository.NewSupervisorPermissionRepository(db), audit, log),
		Users:           NewUserService(users, tokens, store, audit, log),
		Dashboards: NewDashboardService(DashboardRepositories{
			Buildings:     buildings,
			Supervisors:   supervisors,
			Tenants:       tenants,
			Leases:        leases,
			Payments:      payments,
			Invoices:      invoices,
			Maintenance:   maintenance,
			Notifications: notifications,
		}, log),
		Reports:        NewReportService(leases, invoices, log),
		SupervisorRepo: supervisors,
	}
}
