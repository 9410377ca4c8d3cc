package repository

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/rentdesk/internal/database"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"gorm.io/gorm"
)

// SupervisorRepository defines data access for supervisors and their
// permission sets.
type SupervisorRepository interface {
	List(ctx context.Context, p Pagination) (Page[models.Supervisor], error)
	Get(ctx context.Context, id uint) (*models.Supervisor, error)

	// GetByUserID returns the supervisor record of a user with its
	// permissions loaded, or ErrNotFound.
	GetByUserID(ctx context.Context, userID uint) (*models.Supervisor, error)

	Create(ctx context.Context, s *models.Supervisor) error
	Update(ctx context.Context, s *models.Supervisor) error
	Delete(ctx context.Context, id uint) error

	// ReplacePermissions sets the supervisor's permission set to exactly
	// the given permission ids.
	ReplacePermissions(ctx context.Context, supervisorID uint, permissionIDs []uint) error
}

type supervisorRepository struct {
	crud[models.Supervisor]
	db *database.Database
}

// NewSupervisorRepository creates a new SupervisorRepository.
func NewSupervisorRepository(db *database.Database) SupervisorRepository {
	return &supervisorRepository{
		crud: newCRUD[models.Supervisor](db.DB, "supervisor", "id", "User", "Building", "Permissions"),
		db:   db,
	}
}

func (r *supervisorRepository) List(ctx context.Context, p Pagination) (Page[models.Supervisor], error) {
	return r.list(ctx, nil, p)
}

func (r *supervisorRepository) Get(ctx context.Context, id uint) (*models.Supervisor, error) {
	return r.get(ctx, id)
}

func (r *supervisorRepository) GetByUserID(ctx context.Context, userID uint) (*models.Supervisor, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *supervisorRepository) Create(ctx context.Context, s *models.Supervisor) error {
	return r.create(ctx, s)
}

func (r *supervisorRepository) Update(ctx context.Context, s *models.Supervisor) error {
	return r.update(ctx, s)
}

func (r *supervisorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearPermissionLinks(tx, "supervisor_id = ?", id); err != nil {
			return err
		}
		return newCRUD[models.Supervisor](tx, "supervisor", "id").delete(ctx, id)
	})
}

func (r *supervisorRepository) ReplacePermissions(ctx context.Context, supervisorID uint, permissionIDs []uint) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Supervisor{}).Where("id = ?", supervisorID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to find supervisor %d: %w", supervisorID, translateError(err))
		}
		if count == 0 {
			return ErrNotFound
		}

		if err := clearPermissionLinks(tx, "supervisor_id = ?", supervisorID); err != nil {
			return err
		}
		if len(permissionIDs) == 0 {
			return nil
		}

		var perms []models.SupervisorPermission
		if err := tx.Where("id IN ?", permissionIDs).Find(&perms).Error; err != nil {
			return fmt.Errorf("failed to load permissions: %w", translateError(err))
		}
		if len(perms) != len(uniqueIDs(permissionIDs)) {
			return fmt.Errorf("%w: unknown supervisor permission", ErrInvalidReference)
		}

		links := make([]map[string]interface{}, 0, len(perms))
		for _, p := range perms {
			links = append(links, map[string]interface{}{
				"supervisor_id":            supervisorID,
				"supervisor_permission_id": p.ID,
			})
		}
		if err := tx.Table(models.SupervisorPermissionLinksTable).Create(links).Error; err != nil {
			return fmt.Errorf("failed to link permissions to supervisor %d: %w", supervisorID, translateError(err))
		}
		return nil
	})
}

func clearPermissionLinks(tx *gorm.DB, query string, args ...interface{}) error {
	err := tx.Exec("DELETE FROM "+models.SupervisorPermissionLinksTable+" WHERE "+query, args...).Error
	if err != nil {
		return fmt.Errorf("failed to clear supervisor permission links: %w", translateError(err))
	}
	return nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// SupervisorPermissionRepository defines data access for named permissions.
type SupervisorPermissionRepository interface {
	List(ctx context.Context, p Pagination) (Page[models.SupervisorPermission], error)
	Get(ctx context.Context, id uint) (*models.SupervisorPermission, error)
	GetByName(ctx context.Context, name string) (*models.SupervisorPermission, error)
	Create(ctx context.Context, sp *models.SupervisorPermission) error
	Update(ctx context.Context, sp *models.SupervisorPermission) error
	Delete(ctx context.Context, id uint) error
}

type supervisorPermissionRepository struct {
	crud[models.SupervisorPermission]
	db *database.Database
}

// NewSupervisorPermissionRepository creates a new SupervisorPermissionRepository.
func NewSupervisorPermissionRepository(db *database.Database) SupervisorPermissionRepository {
	return &supervisorPermissionRepository{
		crud: newCRUD[models.SupervisorPermission](db.DB, "supervisor permission", "name"),
		db:   db,
	}
}

func (r *supervisorPermissionRepository) List(ctx context.Context, p Pagination) (Page[models.SupervisorPermission], error) {
	return r.list(ctx, nil, p)
}

func (r *supervisorPermissionRepository) Get(ctx context.Context, id uint) (*models.SupervisorPermission, error) {
	return r.get(ctx, id)
}

func (r *supervisorPermissionRepository) GetByName(ctx context.Context, name string) (*models.SupervisorPermission, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *supervisorPermissionRepository) Create(ctx context.Context, sp *models.SupervisorPermission) error {
	return r.create(ctx, sp)
}

func (r *supervisorPermissionRepository) Update(ctx context.Context, sp *models.SupervisorPermission) error {
	return r.update(ctx, sp)
}

func (r *supervisorPermissionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearPermissionLinks(tx, "supervisor_permission_id = ?", id); err != nil {
			return err
		}
		return newCRUD[models.SupervisorPermission](tx, "supervisor permission", "name").delete(ctx, id)
	})
}
