package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
	"github.com/xuri/excelize/v2"
)

type dashboardFixture struct {
	buildings     *MockBuildingRepository
	supervisors   *MockSupervisorRepository
	tenants       *MockTenantRepository
	leases        *MockLeaseRepository
	payments      *MockPaymentRepository
	invoices      *MockInvoiceRepository
	maintenance   *MockMaintenanceRequestRepository
	notifications *MockNotificationRepository
	svc           *dashboardService
}

func newDashboardFixture() *dashboardFixture {
	f := &dashboardFixture{
		buildings:     new(MockBuildingRepository),
		supervisors:   new(MockSupervisorRepository),
		tenants:       new(MockTenantRepository),
		leases:        new(MockLeaseRepository),
		payments:      new(MockPaymentRepository),
		invoices:      new(MockInvoiceRepository),
		maintenance:   new(MockMaintenanceRequestRepository),
		notifications: new(MockNotificationRepository),
	}
	f.svc = NewDashboardService(DashboardRepositories{
		Buildings:     f.buildings,
		Supervisors:   f.supervisors,
		Tenants:       f.tenants,
		Leases:        f.leases,
		Payments:      f.payments,
		Invoices:      f.invoices,
		Maintenance:   f.maintenance,
		Notifications: f.notifications,
	}, logger.Nop()).(*dashboardService)
	f.svc.now = fixedClock(2026, time.March, 10)
	return f
}

func (f *dashboardFixture) expectBuilding(id uint) {
	today := models.NewDate(2026, time.March, 10)
	f.buildings.On("Get", mock.Anything, id).Return(&models.Building{ID: id, Name: "Tower A"}, nil)
	f.buildings.On("Occupancy", mock.Anything, id).Return(models.Occupancy{Total: 3, Rented: 2, Available: 1}, nil)
	f.leases.On("ListAll", mock.Anything, repository.LeaseFilter{BuildingID: id, Status: models.LeaseActive}).
		Return([]models.Lease{{ID: 1, EndDate: models.NewDate(2026, time.March, 20)}}, nil)
	f.maintenance.On("ListAll", mock.Anything, repository.MaintenanceFilter{BuildingID: id, Status: models.MaintenancePending}).
		Return([]models.MaintenanceRequest{{ID: 2}}, nil)
	f.invoices.On("ListAll", mock.Anything, repository.InvoiceFilter{BuildingID: id, OverdueOn: today}).
		Return([]models.Invoice{{ID: 3, DueDate: models.NewDate(2026, time.March, 1), Status: models.InvoiceUnpaid}}, nil)
}

func TestSupervisorDashboard_UsesSupervisorBuilding(t *testing.T) {
	f := newDashboardFixture()
	f.supervisors.On("GetByUserID", mock.Anything, uint(7)).Return(&models.Supervisor{ID: 1, UserID: 7, BuildingID: 2}, nil)
	f.expectBuilding(2)

	// the requested building is ignored for supervisors
	d, err := f.svc.Supervisor(context.Background(), Actor{UserID: 7, IsSupervisor: true}, 9)

	require.NoError(t, err)
	assert.Equal(t, "Tower A", d.Building.Name)
	assert.Equal(t, int64(2), d.Occupancy.Rented)
	require.Len(t, d.ActiveLeases, 1)
	assert.Equal(t, 10, d.ActiveLeases[0].RemainingDays)
	assert.Len(t, d.PendingMaintenance, 1)
	require.Len(t, d.OverdueInvoices, 1)
	assert.True(t, d.OverdueInvoices[0].IsOverdue)
}

func TestSupervisorDashboard_Superuser(t *testing.T) {
	f := newDashboardFixture()
	f.expectBuilding(4)

	_, err := f.svc.Supervisor(context.Background(), SystemActor, 4)
	require.NoError(t, err)
	f.supervisors.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)

	_, err = f.svc.Supervisor(context.Background(), SystemActor, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSupervisorDashboard_RejectsOthers(t *testing.T) {
	f := newDashboardFixture()
	f.supervisors.On("GetByUserID", mock.Anything, uint(8)).Return(nil, repository.ErrNotFound)

	_, err := f.svc.Supervisor(context.Background(), Actor{UserID: 5, IsTenant: true}, 1)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Supervisor(context.Background(), Actor{UserID: 8, IsSupervisor: true}, 1)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTenantDashboard(t *testing.T) {
	f := newDashboardFixture()
	f.tenants.On("GetByUserID", mock.Anything, uint(5)).Return(&models.Tenant{ID: 2, UserID: 5}, nil)
	f.leases.On("ListAll", mock.Anything, repository.LeaseFilter{TenantID: 2}).
		Return([]models.Lease{{ID: 1, EndDate: models.NewDate(2026, time.March, 1)}}, nil)
	f.invoices.On("ListAll", mock.Anything, repository.InvoiceFilter{TenantID: 2}).Return([]models.Invoice{
		{ID: 1, DueDate: models.NewDate(2026, time.March, 1), Status: models.InvoiceUnpaid},
		{ID: 2, DueDate: models.NewDate(2026, time.March, 1), Status: models.InvoicePaid},
	}, nil)
	f.payments.On("List", mock.Anything, repository.PaymentFilter{TenantID: 2}, repository.Pagination{Page: 1, PerPage: RecentPayments}).
		Return(repository.Page[models.Payment]{Items: []models.Payment{{ID: 1, Amount: 300}}, Total: 1}, nil)
	f.notifications.On("CountUnread", mock.Anything, uint(5)).Return(int64(4), nil)

	d, err := f.svc.Tenant(context.Background(), Actor{UserID: 5, IsTenant: true})

	require.NoError(t, err)
	require.Len(t, d.Leases, 1)
	assert.Equal(t, -9, d.Leases[0].RemainingDays)
	assert.True(t, d.Leases[0].IsExpired)
	require.Len(t, d.Invoices, 2)
	assert.True(t, d.Invoices[0].IsOverdue)
	assert.False(t, d.Invoices[1].IsOverdue)
	assert.Len(t, d.RecentPayments, 1)
	assert.Equal(t, int64(4), d.UnreadNotifications)
}

func TestTenantDashboard_NoTenantRecord(t *testing.T) {
	f := newDashboardFixture()
	f.tenants.On("GetByUserID", mock.Anything, uint(5)).Return(nil, repository.ErrNotFound)

	_, err := f.svc.Tenant(context.Background(), Actor{UserID: 5})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportLeases_WritesWorkbook(t *testing.T) {
	leases := new(MockLeaseRepository)
	svc := NewReportService(leases, new(MockInvoiceRepository), logger.Nop()).(*reportService)
	svc.now = fixedClock(2026, time.December, 21)

	leases.On("ListAll", mock.Anything, repository.LeaseFilter{}).Return([]models.Lease{{
		ContractNumber: "C-1",
		Unit:           &models.Unit{UnitNumber: "A-101", Building: &models.Building{Name: "Tower A"}},
		Tenant:         &models.Tenant{User: &models.User{Username: "salim", FirstName: "Salim", LastName: "Ali"}},
		StartDate:      models.NewDate(2026, time.January, 1),
		EndDate:        models.NewDate(2026, time.December, 31),
		MonthlyRent:    300,
		Status:         models.LeaseActive,
	}}, nil)

	var buf bytes.Buffer
	n, err := svc.Leases(context.Background(), repository.LeaseFilter{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Leases")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Contract", rows[0][0])
	assert.Equal(t, "Remaining Days", rows[0][9])
	assert.Equal(t, []string{"C-1", "Tower A", "A-101", "Salim Ali", "2026-01-01", "2026-12-31", "300", "0", "active", "10"}, rows[1])
}

func TestReportInvoices_EffectiveStatus(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	svc := NewReportService(new(MockLeaseRepository), invoices, logger.Nop()).(*reportService)
	svc.now = fixedClock(2026, time.March, 10)

	invoices.On("ListAll", mock.Anything, repository.InvoiceFilter{}).Return([]models.Invoice{{
		InvoiceNumber: "INV-1",
		Lease:         &models.Lease{ContractNumber: "C-1"},
		IssueDate:     models.NewDate(2026, time.February, 1),
		DueDate:       models.NewDate(2026, time.March, 1),
		TotalAmount:   200,
		VAT:           15,
		Status:        models.InvoiceUnpaid,
	}}, nil)

	var buf bytes.Buffer
	_, err := svc.Invoices(context.Background(), repository.InvoiceFilter{}, &buf)
	require.NoError(t, err)

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "INV-1", rows[1][0])
	assert.Equal(t, "230", rows[1][7])
	assert.Equal(t, "overdue", rows[1][8])
}

func TestTenantName(t *testing.T) {
	tests := []struct {
		name   string
		tenant *models.Tenant
		want   string
	}{
		{name: "nil", tenant: nil, want: ""},
		{name: "company", tenant: &models.Tenant{TenantType: models.TenantCompany, CompanyName: "Acme"}, want: "Acme"},
		{name: "full name", tenant: &models.Tenant{User: &models.User{FirstName: "Salim", LastName: "Ali"}}, want: "Salim Ali"},
		{name: "username", tenant: &models.Tenant{User: &models.User{Username: "salim"}}, want: "salim"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TenantName(tt.tenant))
		})
	}
}
