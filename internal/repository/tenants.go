package repository

import (
	"context"

	"github.com/stwalsh4118/rentdesk/internal/database"
	"github.com/stwalsh4118/rentdesk/internal/models"
)

// TenantRepository defines data access for tenants.
type TenantRepository interface {
	List(ctx context.Context, p Pagination) (Page[models.Tenant], error)
	Get(ctx context.Context, id uint) (*models.Tenant, error)

	// GetByUserID returns the tenant record linked to a user account.
	GetByUserID(ctx context.Context, userID uint) (*models.Tenant, error)

	Create(ctx context.Context, t *models.Tenant) error
	Update(ctx context.Context, t *models.Tenant) error
	Delete(ctx context.Context, id uint) error
}

type tenantRepository struct {
	crud[models.Tenant]
}

// NewTenantRepository creates a new TenantRepository.
func NewTenantRepository(db *database.Database) TenantRepository {
	return &tenantRepository{crud: newCRUD[models.Tenant](db.DB, "tenant", "id", "User")}
}

func (r *tenantRepository) List(ctx context.Context, p Pagination) (Page[models.Tenant], error) {
	return r.list(ctx, nil, p)
}

func (r *tenantRepository) Get(ctx context.Context, id uint) (*models.Tenant, error) {
	return r.get(ctx, id)
}

func (r *tenantRepository) GetByUserID(ctx context.Context, userID uint) (*models.Tenant, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *tenantRepository) Create(ctx context.Context, t *models.Tenant) error {
	return r.create(ctx, t)
}

func (r *tenantRepository) Update(ctx context.Context, t *models.Tenant) error {
	return r.update(ctx, t)
}

func (r *tenantRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}
