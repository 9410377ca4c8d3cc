package services

import (
	"context"
	"strings"

	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
)

// TenantService manages tenant records.
type TenantService interface {
	List(ctx context.Context, p repository.Pagination) (repository.Page[models.Tenant], error)
	Get(ctx context.Context, id uint) (*models.Tenant, error)

	// GetByUser returns the tenant record of a user account.
	GetByUser(ctx context.Context, userID uint) (*models.Tenant, error)

	// Create attaches a tenant record to an existing user and marks the
	// account as a tenant.
	Create(ctx context.Context, actor Actor, t *models.Tenant) error

	Update(ctx context.Context, actor Actor, t *models.Tenant) error
	Delete(ctx context.Context, actor Actor, id uint) error
}

type tenantService struct {
	repo  repository.TenantRepository
	users repository.UserRepository
	audit Recorder
	log   *logger.Logger
}

// NewTenantService creates a new TenantService.
func NewTenantService(repo repository.TenantRepository, users repository.UserRepository, audit Recorder, log *logger.Logger) TenantService {
	return &tenantService{repo: repo, users: users, audit: audit, log: log}
}

func validateTenant(t *models.Tenant) error {
	if t.UserID == 0 {
		return invalid("user is required")
	}
	return validateTenantDetails(t)
}

// validateTenantDetails checks everything but the owning user, which does
// not exist yet during registration.
func validateTenantDetails(t *models.Tenant) error {
	t.NationalID = strings.TrimSpace(t.NationalID)
	switch {
	case t.NationalID == "":
		return invalid("national id is required")
	case !t.TenantType.Valid():
		return invalid("unknown tenant type %q", t.TenantType)
	case t.TenantType == models.TenantCompany && strings.TrimSpace(t.CompanyName) == "":
		return invalid("company name is required for company tenants")
	case strings.TrimSpace(t.Address) == "":
		return invalid("address is required")
	}
	return nil
}

func (s *tenantService) List(ctx context.Context, p repository.Pagination) (repository.Page[models.Tenant], error) {
	page, err := s.repo.List(ctx, p)
	return page, repoError("tenant", err)
}

func (s *tenantService) Get(ctx context.Context, id uint) (*models.Tenant, error) {
	t, err := s.repo.Get(ctx, id)
	return t, repoError("tenant", err)
}

func (s *tenantService) GetByUser(ctx context.Context, userID uint) (*models.Tenant, error) {
	t, err := s.repo.GetByUserID(ctx, userID)
	return t, repoError("tenant", err)
}

func (s *tenantService) Create(ctx context.Context, actor Actor, t *models.Tenant) error {
	if err := validateTenant(t); err != nil {
		return err
	}

	user, err := s.users.Get(ctx, t.UserID)
	if err != nil {
		return repoError("user", err)
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return repoError("tenant", err)
	}

	if !user.IsTenant {
		user.IsTenant = true
		if err := s.users.Update(ctx, user); err != nil {
			return repoError("user", err)
		}
	}

	s.log.Info("Tenant created", map[string]interface{}{"tenant_id": t.ID, "user_id": t.UserID})
	s.audit.Record(ctx, actor, "Created tenant", map[string]interface{}{"tenant_id": t.ID, "user_id": t.UserID})
	return nil
}

func (s *tenantService) Update(ctx context.Context, actor Actor, t *models.Tenant) error {
	if err := validateTenant(t); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return repoError("tenant", err)
	}

	s.audit.Record(ctx, actor, "Updated tenant", map[string]interface{}{"tenant_id": t.ID})
	return nil
}

func (s *tenantService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError("tenant", err)
	}

	s.log.Info("Tenant deleted", map[string]interface{}{"tenant_id": id})
	s.audit.Record(ctx, actor, "Deleted tenant", map[string]interface{}{"tenant_id": id})
	return nil
}
