package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
)

// Mock repositories for service tests. Methods returning a pointer or a
// slice accept nil as the first return value.

type MockLeaseRepository struct {
	mock.Mock
}

func (m *MockLeaseRepository) List(ctx context.Context, f repository.LeaseFilter, p repository.Pagination) (repository.Page[models.Lease], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(repository.Page[models.Lease]), args.Error(1)
}

func (m *MockLeaseRepository) ListAll(ctx context.Context, f repository.LeaseFilter) ([]models.Lease, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lease), args.Error(1)
}

func (m *MockLeaseRepository) Get(ctx context.Context, id uint) (*models.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lease), args.Error(1)
}

func (m *MockLeaseRepository) FindActiveByUnit(ctx context.Context, unitID uint) (*models.Lease, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lease), args.Error(1)
}

func (m *MockLeaseRepository) Create(ctx context.Context, l *models.Lease) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeaseRepository) Update(ctx context.Context, l *models.Lease) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeaseRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeaseRepository) ExpireEnded(ctx context.Context, today models.Date) (int64, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(int64), args.Error(1)
}

type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) List(ctx context.Context, f repository.UnitFilter, p repository.Pagination) (repository.Page[models.Unit], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(repository.Page[models.Unit]), args.Error(1)
}

func (m *MockUnitRepository) Get(ctx context.Context, id uint) (*models.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Unit), args.Error(1)
}

func (m *MockUnitRepository) Create(ctx context.Context, u *models.Unit) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUnitRepository) Update(ctx context.Context, u *models.Unit) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) List(ctx context.Context, p repository.Pagination) (repository.Page[models.Tenant], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(repository.Page[models.Tenant]), args.Error(1)
}

func (m *MockTenantRepository) Get(ctx context.Context, id uint) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetByUserID(ctx context.Context, userID uint) (*models.Tenant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Create(ctx context.Context, t *models.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTenantRepository) Update(ctx context.Context, t *models.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) List(ctx context.Context, f repository.InvoiceFilter, p repository.Pagination) (repository.Page[models.Invoice], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(repository.Page[models.Invoice]), args.Error(1)
}

func (m *MockInvoiceRepository) ListAll(ctx context.Context, f repository.InvoiceFilter) ([]models.Invoice, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, inv *models.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SetStatus(ctx context.Context, id uint, status models.InvoiceStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) List(ctx context.Context, f repository.PaymentFilter, p repository.Pagination) (repository.Page[models.Payment], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(repository.Page[models.Payment]), args.Error(1)
}

func (m *MockPaymentRepository) Get(ctx context.Context, id uint) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Create(ctx context.Context, pay *models.Payment) error {
	args := m.Called(ctx, pay)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, pay *models.Payment) error {
	args := m.Called(ctx, pay)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) SumByLease(ctx context.Context, leaseID uint) (float64, error) {
	args := m.Called(ctx, leaseID)
	return args.Get(0).(float64), args.Error(1)
}

type MockMaintenanceRequestRepository struct {
	mock.Mock
}

func (m *MockMaintenanceRequestRepository) List(ctx context.Context, f repository.MaintenanceFilter, p repository.Pagination) (repository.Page[models.MaintenanceRequest], error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).(repository.Page[models.MaintenanceRequest]), args.Error(1)
}

func (m *MockMaintenanceRequestRepository) ListAll(ctx context.Context, f repository.MaintenanceFilter) ([]models.MaintenanceRequest, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MaintenanceRequest), args.Error(1)
}

func (m *MockMaintenanceRequestRepository) Get(ctx context.Context, id uint) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRequest), args.Error(1)
}

func (m *MockMaintenanceRequestRepository) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockMaintenanceRequestRepository) Update(ctx context.Context, req *models.MaintenanceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockMaintenanceRequestRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMaintenanceReviewRepository struct {
	mock.Mock
}

func (m *MockMaintenanceReviewRepository) List(ctx context.Context, p repository.Pagination) (repository.Page[models.MaintenanceReview], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(repository.Page[models.MaintenanceReview]), args.Error(1)
}

func (m *MockMaintenanceReviewRepository) Get(ctx context.Context, id uint) (*models.MaintenanceReview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceReview), args.Error(1)
}

func (m *MockMaintenanceReviewRepository) GetByRequest(ctx context.Context, requestID uint) (*models.MaintenanceReview, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceReview), args.Error(1)
}

func (m *MockMaintenanceReviewRepository) Create(ctx context.Context, rv *models.MaintenanceReview) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *MockMaintenanceReviewRepository) Update(ctx context.Context, rv *models.MaintenanceReview) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *MockMaintenanceReviewRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) List(ctx context.Context, userID uint, p repository.Pagination) (repository.Page[models.Notification], error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).(repository.Page[models.Notification]), args.Error(1)
}

func (m *MockNotificationRepository) Get(ctx context.Context, id uint) (*models.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockSupportMessageRepository struct {
	mock.Mock
}

func (m *MockSupportMessageRepository) List(ctx context.Context, p repository.Pagination) (repository.Page[models.SupportMessage], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(repository.Page[models.SupportMessage]), args.Error(1)
}

func (m *MockSupportMessageRepository) Inbox(ctx context.Context, userID uint, p repository.Pagination) (repository.Page[models.SupportMessage], error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).(repository.Page[models.SupportMessage]), args.Error(1)
}

func (m *MockSupportMessageRepository) Outbox(ctx context.Context, userID uint, p repository.Pagination) (repository.Page[models.SupportMessage], error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).(repository.Page[models.SupportMessage]), args.Error(1)
}

func (m *MockSupportMessageRepository) Get(ctx context.Context, id uint) (*models.SupportMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SupportMessage), args.Error(1)
}

func (m *MockSupportMessageRepository) Create(ctx context.Context, msg *models.SupportMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockSupportMessageRepository) Update(ctx context.Context, msg *models.SupportMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockSupportMessageRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context, p repository.Pagination) (repository.Page[models.User], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(repository.Page[models.User]), args.Error(1)
}

func (m *MockUserRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) CreateTenant(ctx context.Context, u *models.User, t *models.Tenant) error {
	args := m.Called(ctx, u, t)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type MockSupervisorRepository struct {
	mock.Mock
}

func (m *MockSupervisorRepository) List(ctx context.Context, p repository.Pagination) (repository.Page[models.Supervisor], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(repository.Page[models.Supervisor]), args.Error(1)
}

func (m *MockSupervisorRepository) Get(ctx context.Context, id uint) (*models.Supervisor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Supervisor), args.Error(1)
}

func (m *MockSupervisorRepository) GetByUserID(ctx context.Context, userID uint) (*models.Supervisor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Supervisor), args.Error(1)
}

func (m *MockSupervisorRepository) Create(ctx context.Context, s *models.Supervisor) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSupervisorRepository) Update(ctx context.Context, s *models.Supervisor) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSupervisorRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupervisorRepository) ReplacePermissions(ctx context.Context, supervisorID uint, permissionIDs []uint) error {
	args := m.Called(ctx, supervisorID, permissionIDs)
	return args.Error(0)
}

type MockBuildingRepository struct {
	mock.Mock
}

func (m *MockBuildingRepository) List(ctx context.Context, p repository.Pagination) (repository.Page[models.Building], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(repository.Page[models.Building]), args.Error(1)
}

func (m *MockBuildingRepository) Get(ctx context.Context, id uint) (*models.Building, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Building), args.Error(1)
}

func (m *MockBuildingRepository) Create(ctx context.Context, b *models.Building) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBuildingRepository) Update(ctx context.Context, b *models.Building) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBuildingRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBuildingRepository) Occupancy(ctx context.Context, buildingID uint) (models.Occupancy, error) {
	args := m.Called(ctx, buildingID)
	return args.Get(0).(models.Occupancy), args.Error(1)
}

// stubRecorder collects audit actions.
type stubRecorder struct {
	actions []string
}

func (r *stubRecorder) Record(_ context.Context, _ Actor, action string, _ map[string]interface{}) {
	r.actions = append(r.actions, action)
}

// fixedClock pins today to the given date.
func fixedClock(year int, month time.Month, day int) Clock {
	return func() time.Time { return time.Date(year, month, day, 12, 0, 0, 0, time.UTC) }
}
