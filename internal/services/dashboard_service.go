package services

import (
	"context"
	"errors"

	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
)

// RecentPayments is how many payments the tenant dashboard shows.
const RecentPayments = 5

// SupervisorDashboard summarises one building.
type SupervisorDashboard struct {
	Building           models.Building             `json:"building"`
	Occupancy          models.Occupancy            `json:"occupancy"`
	ActiveLeases       []LeaseView                 `json:"active_leases"`
	PendingMaintenance []models.MaintenanceRequest `json:"pending_maintenance"`
	OverdueInvoices    []InvoiceView               `json:"overdue_invoices"`
}

// TenantDashboard summarises a tenant's own records.
type TenantDashboard struct {
	Tenant              models.Tenant    `json:"tenant"`
	Leases              []LeaseView      `json:"leases"`
	Invoices            []InvoiceView    `json:"invoices"`
	RecentPayments      []models.Payment `json:"recent_payments"`
	UnreadNotifications int64            `json:"unread_notifications"`
}

// DashboardService assembles the read-only overview pages.
type DashboardService interface {
	// Supervisor returns the dashboard of the actor's building. Superusers
	// choose the building with buildingID.
	Supervisor(ctx context.Context, actor Actor, buildingID uint) (*SupervisorDashboard, error)

	// Tenant returns the dashboard of the actor's tenant record.
	Tenant(ctx context.Context, actor Actor) (*TenantDashboard, error)
}

// DashboardRepositories are the data sources of the dashboards.
type DashboardRepositories struct {
	Buildings     repository.BuildingRepository
	Supervisors   repository.SupervisorRepository
	Tenants       repository.TenantRepository
	Leases        repository.LeaseRepository
	Payments      repository.PaymentRepository
	Invoices      repository.InvoiceRepository
	Maintenance   repository.MaintenanceRequestRepository
	Notifications repository.NotificationRepository
}

type dashboardService struct {
	repos DashboardRepositories
	log   *logger.Logger
	now   Clock
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repos DashboardRepositories, log *logger.Logger) DashboardService {
	return &dashboardService{repos: repos, log: log}
}

func (s *dashboardService) Supervisor(ctx context.Context, actor Actor, buildingID uint) (*SupervisorDashboard, error) {
	if !actor.IsSuperuser {
		if !actor.IsSupervisor {
			return nil, ErrForbidden
		}
		sv, err := s.repos.Supervisors.GetByUserID(ctx, actor.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrForbidden
		}
		if err != nil {
			return nil, repoError("supervisor", err)
		}
		buildingID = sv.BuildingID
	}
	if buildingID == 0 {
		return nil, invalid("building_id is required")
	}

	building, err := s.repos.Buildings.Get(ctx, buildingID)
	if err != nil {
		return nil, repoError("building", err)
	}
	occupancy, err := s.repos.Buildings.Occupancy(ctx, buildingID)
	if err != nil {
		return nil, repoError("building", err)
	}

	today := s.now.today()
	leases, err := s.repos.Leases.ListAll(ctx, repository.LeaseFilter{BuildingID: buildingID, Status: models.LeaseActive})
	if err != nil {
		return nil, repoError("lease", err)
	}
	pending, err := s.repos.Maintenance.ListAll(ctx, repository.MaintenanceFilter{BuildingID: buildingID, Status: models.MaintenancePending})
	if err != nil {
		return nil, repoError("maintenance request", err)
	}
	overdue, err := s.repos.Invoices.ListAll(ctx, repository.InvoiceFilter{BuildingID: buildingID, OverdueOn: today})
	if err != nil {
		return nil, repoError("invoice", err)
	}

	d := &SupervisorDashboard{
		Building:           *building,
		Occupancy:          occupancy,
		ActiveLeases:       viewLeases(leases, today),
		PendingMaintenance: pending,
		OverdueInvoices:    viewInvoices(overdue, today),
	}
	s.log.Debug("Supervisor dashboard built", map[string]interface{}{
		"building_id":   buildingID,
		"active_leases": len(d.ActiveLeases),
		"overdue":       len(d.OverdueInvoices),
	})
	return d, nil
}

func (s *dashboardService) Tenant(ctx context.Context, actor Actor) (*TenantDashboard, error) {
	tenant, err := s.repos.Tenants.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, repoError("tenant", err)
	}

	today := s.now.today()
	leases, err := s.repos.Leases.ListAll(ctx, repository.LeaseFilter{TenantID: tenant.ID})
	if err != nil {
		return nil, repoError("lease", err)
	}
	invoices, err := s.repos.Invoices.ListAll(ctx, repository.InvoiceFilter{TenantID: tenant.ID})
	if err != nil {
		return nil, repoError("invoice", err)
	}
	payments, err := s.repos.Payments.List(ctx, repository.PaymentFilter{TenantID: tenant.ID},
		repository.Pagination{Page: 1, PerPage: RecentPayments})
	if err != nil {
		return nil, repoError("payment", err)
	}
	unread, err := s.repos.Notifications.CountUnread(ctx, actor.UserID)
	if err != nil {
		return nil, repoError("notification", err)
	}

	return &TenantDashboard{
		Tenant:              *tenant,
		Leases:              viewLeases(leases, today),
		Invoices:            viewInvoices(invoices, today),
		RecentPayments:      payments.Items,
		UnreadNotifications: unread,
	}, nil
}

func viewLeases(leases []models.Lease, today models.Date) []LeaseView {
	out := make([]LeaseView, 0, len(leases))
	for _, l := range leases {
		out = append(out, ViewLease(l, today))
	}
	return out
}

func viewInvoices(invoices []models.Invoice, today models.Date) []InvoiceView {
	out := make([]InvoiceView, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, ViewInvoice(inv, today))
	}
	return out
}
