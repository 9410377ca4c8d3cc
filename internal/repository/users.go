package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/stwalsh4118/rentdesk/internal/database"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	List(ctx context.Context, p Pagination) (Page[models.User], error)
	Get(ctx context.Context, id uint) (*models.User, error)

	// GetByUsername looks an account up by its login name.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	Create(ctx context.Context, u *models.User) error

	// CreateTenant inserts a user and its tenant record in one transaction.
	CreateTenant(ctx context.Context, u *models.User, t *models.Tenant) error

	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uint) error

	// TouchLastLogin stamps the account's last successful login.
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}

type userRepository struct {
	crud[models.User]
	db *database.Database
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *database.Database) UserRepository {
	return &userRepository{
		crud: newCRUD[models.User](db.DB, "user", "id"),
		db:   db,
	}
}

func (r *userRepository) List(ctx context.Context, p Pagination) (Page[models.User], error) {
	return r.list(ctx, nil, p)
}

func (r *userRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	return r.get(ctx, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *userRepository) Create(ctx context.Context, u *models.User) error {
	return r.create(ctx, u)
}

func (r *userRepository) CreateTenant(ctx context.Context, u *models.User, t *models.Tenant) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := newCRUD[models.User](tx, "user", "id")
		if err := users.create(ctx, u); err != nil {
			return err
		}
		t.UserID = u.ID
		tenants := newCRUD[models.Tenant](tx, "tenant", "id")
		return tenants.create(ctx, t)
	})
}

func (r *userRepository) Update(ctx context.Context, u *models.User) error {
	return r.update(ctx, u)
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	err := clearPermissionLinks(r.db.DB.WithContext(ctx),
		"supervisor_id IN (SELECT id FROM supervisors WHERE user_id = ?)", id)
	if err != nil {
		return err
	}
	return r.delete(ctx, id)
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	res := r.db.DB.WithContext(ctx).Model(&models.User{ID: id}).Update("last_login", at)
	if res.Error != nil {
		return fmt.Errorf("failed to update last login of user %d: %w", id, translateError(res.Error))
	}
	return nil
}
