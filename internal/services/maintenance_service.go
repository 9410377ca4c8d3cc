package services

import (
	"context"
	"errors"
	"strings"

	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
)

// MaintenanceService manages maintenance requests and their reviews.
type MaintenanceService interface {
	List(ctx context.Context, f repository.MaintenanceFilter, p repository.Pagination) (repository.Page[models.MaintenanceRequest], error)
	Get(ctx context.Context, id uint) (*models.MaintenanceRequest, error)

	// Create files a request dated today. Superusers and supervisors holding
	// manage_maintenance for the unit's building file as staff; everyone else
	// may only file a pending request for a unit they lease.
	Create(ctx context.Context, actor Actor, m *models.MaintenanceRequest) error

	// Update stamps the completion date when the status becomes completed.
	Update(ctx context.Context, actor Actor, m *models.MaintenanceRequest) error

	Delete(ctx context.Context, actor Actor, id uint) error

	ListReviews(ctx context.Context, p repository.Pagination) (repository.Page[models.MaintenanceReview], error)
	GetReview(ctx context.Context, id uint) (*models.MaintenanceReview, error)

	// CreateReview rates a completed request. Non-staff actors may only
	// review requests on units they lease.
	CreateReview(ctx context.Context, actor Actor, rv *models.MaintenanceReview) error

	UpdateReview(ctx context.Context, actor Actor, rv *models.MaintenanceReview) error
	DeleteReview(ctx context.Context, actor Actor, id uint) error
}

type maintenanceService struct {
	repo        repository.MaintenanceRequestRepository
	reviews     repository.MaintenanceReviewRepository
	leases      repository.LeaseRepository
	tenants     repository.TenantRepository
	units       repository.UnitRepository
	supervisors repository.SupervisorRepository
	audit       Recorder
	log         *logger.Logger
	now         Clock
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(
	repo repository.MaintenanceRequestRepository,
	reviews repository.MaintenanceReviewRepository,
	leases repository.LeaseRepository,
	tenants repository.TenantRepository,
	units repository.UnitRepository,
	supervisors repository.SupervisorRepository,
	audit Recorder,
	log *logger.Logger,
) MaintenanceService {
	return &maintenanceService{
		repo:        repo,
		reviews:     reviews,
		leases:      leases,
		tenants:     tenants,
		units:       units,
		supervisors: supervisors,
		audit:       audit,
		log:         log,
	}
}

// managesUnit reports whether actor handles maintenance for unitID as staff:
// a superuser, or a supervisor of the unit's building holding
// manage_maintenance.
func (s *maintenanceService) managesUnit(ctx context.Context, actor Actor, unitID uint) (bool, error) {
	if actor.IsSuperuser {
		return true, nil
	}
	if !actor.IsSupervisor {
		return false, nil
	}

	sv, err := s.supervisors.GetByUserID(ctx, actor.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, repoError("supervisor", err)
	}
	if !sv.HasPermission(models.PermManageMaintenance) {
		return false, nil
	}

	unit, err := s.units.Get(ctx, unitID)
	if err != nil {
		return false, repoError("unit", err)
	}
	return unit.BuildingID == sv.BuildingID, nil
}

// checkTenantUnit fails unless actor is a tenant holding a lease on unitID.
func (s *maintenanceService) checkTenantUnit(ctx context.Context, actor Actor, unitID uint) error {
	if !actor.IsTenant {
		s.log.Warn("Maintenance filed without tenant or staff rights", map[string]interface{}{
			"user_id": actor.UserID,
			"unit_id": unitID,
		})
		return ErrForbidden
	}

	tenant, err := s.tenants.GetByUserID(ctx, actor.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUnitNotLeased
	}
	if err != nil {
		return repoError("tenant", err)
	}

	leases, err := s.leases.ListAll(ctx, repository.LeaseFilter{TenantID: tenant.ID, UnitID: unitID})
	if err != nil {
		return repoError("lease", err)
	}
	if len(leases) == 0 {
		s.log.Warn("Tenant filed for a unit it does not lease", map[string]interface{}{
			"user_id": actor.UserID,
			"unit_id": unitID,
		})
		return ErrUnitNotLeased
	}
	return nil
}

func validateMaintenance(m *models.MaintenanceRequest) error {
	if m.Status == "" {
		m.Status = models.MaintenancePending
	}
	switch {
	case m.UnitID == 0:
		return invalid("unit is required")
	case strings.TrimSpace(m.Description) == "":
		return invalid("description is required")
	case !m.Status.Valid():
		return invalid("unknown maintenance status %q", m.Status)
	}
	return nil
}

func (s *maintenanceService) List(ctx context.Context, f repository.MaintenanceFilter, p repository.Pagination) (repository.Page[models.MaintenanceRequest], error) {
	if f.Status != "" && !f.Status.Valid() {
		return repository.Page[models.MaintenanceRequest]{}, invalid("unknown maintenance status %q", f.Status)
	}
	page, err := s.repo.List(ctx, f, p)
	return page, repoError("maintenance request", err)
}

func (s *maintenanceService) Get(ctx context.Context, id uint) (*models.MaintenanceRequest, error) {
	m, err := s.repo.Get(ctx, id)
	return m, repoError("maintenance request", err)
}

func (s *maintenanceService) Create(ctx context.Context, actor Actor, m *models.MaintenanceRequest) error {
	if err := validateMaintenance(m); err != nil {
		return err
	}

	staff, err := s.managesUnit(ctx, actor, m.UnitID)
	if err != nil {
		return err
	}
	if !staff {
		// only staff pick the status of a new request
		m.Status = models.MaintenancePending
		m.Notes = ""
		m.CompletionDate = models.Date{}
		if err := s.checkTenantUnit(ctx, actor, m.UnitID); err != nil {
			return err
		}
	}

	today := s.now.today()
	m.RequestDate = today
	if m.Status == models.MaintenanceCompleted && m.CompletionDate.IsZero() {
		m.CompletionDate = today
	}
	m.RequestedByID = actor.userRef()
	if err := s.repo.Create(ctx, m); err != nil {
		return repoError("maintenance request", err)
	}

	s.log.Info("Maintenance request filed", map[string]interface{}{
		"request_id": m.ID,
		"unit_id":    m.UnitID,
		"user_id":    actor.UserID,
	})
	s.audit.Record(ctx, actor, "Filed maintenance request", map[string]interface{}{"request_id": m.ID, "unit_id": m.UnitID})
	return nil
}

func (s *maintenanceService) Update(ctx context.Context, actor Actor, m *models.MaintenanceRequest) error {
	if err := validateMaintenance(m); err != nil {
		return err
	}
	existing, err := s.repo.Get(ctx, m.ID)
	if err != nil {
		return repoError("maintenance request", err)
	}

	m.RequestDate = existing.RequestDate
	m.RequestedByID = existing.RequestedByID
	m.CreatedAt = existing.CreatedAt
	if m.Status == models.MaintenanceCompleted && m.CompletionDate.IsZero() {
		m.CompletionDate = s.now.today()
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return repoError("maintenance request", err)
	}

	s.log.Info("Maintenance request updated", map[string]interface{}{"request_id": m.ID, "status": m.Status})
	s.audit.Record(ctx, actor, "Updated maintenance request", map[string]interface{}{"request_id": m.ID, "status": m.Status})
	return nil
}

func (s *maintenanceService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError("maintenance request", err)
	}
	s.audit.Record(ctx, actor, "Deleted maintenance request", map[string]interface{}{"request_id": id})
	return nil
}

func (s *maintenanceService) ListReviews(ctx context.Context, p repository.Pagination) (repository.Page[models.MaintenanceReview], error) {
	page, err := s.reviews.List(ctx, p)
	return page, repoError("maintenance review", err)
}

func (s *maintenanceService) GetReview(ctx context.Context, id uint) (*models.MaintenanceReview, error) {
	rv, err := s.reviews.Get(ctx, id)
	return rv, repoError("maintenance review", err)
}

func validateRating(rating uint8) error {
	if rating < models.MinReviewRating || rating > models.MaxReviewRating {
		return ErrInvalidRating
	}
	return nil
}

func (s *maintenanceService) CreateReview(ctx context.Context, actor Actor, rv *models.MaintenanceReview) error {
	if err := validateRating(rv.Rating); err != nil {
		return err
	}

	req, err := s.repo.Get(ctx, rv.MaintenanceRequestID)
	if err != nil {
		return repoError("maintenance request", err)
	}
	if req.Status != models.MaintenanceCompleted {
		return ErrReviewNotAllowed
	}
	staff, err := s.managesUnit(ctx, actor, req.UnitID)
	if err != nil {
		return err
	}
	if !staff {
		if err := s.checkTenantUnit(ctx, actor, req.UnitID); err != nil {
			return err
		}
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		return repoError("maintenance review", err)
	}

	s.log.Info("Maintenance review submitted", map[string]interface{}{"request_id": req.ID, "rating": rv.Rating})
	s.audit.Record(ctx, actor, "Reviewed maintenance request", map[string]interface{}{"request_id": req.ID, "rating": rv.Rating})
	return nil
}

func (s *maintenanceService) UpdateReview(ctx context.Context, actor Actor, rv *models.MaintenanceReview) error {
	if err := validateRating(rv.Rating); err != nil {
		return err
	}
	existing, err := s.reviews.Get(ctx, rv.ID)
	if err != nil {
		return repoError("maintenance review", err)
	}
	rv.MaintenanceRequestID = existing.MaintenanceRequestID
	rv.CreatedAt = existing.CreatedAt

	if err := s.reviews.Update(ctx, rv); err != nil {
		return repoError("maintenance review", err)
	}
	s.audit.Record(ctx, actor, "Updated maintenance review", map[string]interface{}{"review_id": rv.ID, "rating": rv.Rating})
	return nil
}

func (s *maintenanceService) DeleteReview(ctx context.Context, actor Actor, id uint) error {
	if err := s.reviews.Delete(ctx, id); err != nil {
		return repoError("maintenance review", err)
	}
	s.audit.Record(ctx, actor, "Deleted maintenance review", map[string]interface{}{"review_id": id})
	return nil
}
