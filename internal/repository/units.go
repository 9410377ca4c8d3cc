package repository

import (
	"context"

	"github.com/stwalsh4118/rentdesk/internal/database"
	"github.com/stwalsh4118/rentdesk/internal/models"
)

// UnitFilter narrows unit lists. Zero fields are ignored.
type UnitFilter struct {
	BuildingID uint
	Status     models.UnitStatus
}

// UnitRepository defines data access for units.
type UnitRepository interface {
	List(ctx context.Context, f UnitFilter, p Pagination) (Page[models.Unit], error)
	Get(ctx context.Context, id uint) (*models.Unit, error)
	Create(ctx context.Context, u *models.Unit) error
	Update(ctx context.Context, u *models.Unit) error
	Delete(ctx context.Context, id uint) error
}

type unitRepository struct {
	crud[models.Unit]
}

// NewUnitRepository creates a new UnitRepository.
func NewUnitRepository(db *database.Database) UnitRepository {
	return &unitRepository{
		crud: newCRUD[models.Unit](db.DB, "unit", "unit_number", "Building", "UnitType"),
	}
}

func (r *unitRepository) List(ctx context.Context, f UnitFilter, p Pagination) (Page[models.Unit], error) {
	return r.list(ctx, &models.Unit{BuildingID: f.BuildingID, Status: f.Status}, p)
}

func (r *unitRepository) Get(ctx context.Context, id uint) (*models.Unit, error) {
	return r.get(ctx, id)
}

func (r *unitRepository) Create(ctx context.Context, u *models.Unit) error {
	return r.create(ctx, u)
}

func (r *unitRepository) Update(ctx context.Context, u *models.Unit) error {
	return r.update(ctx, u)
}

func (r *unitRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}

// UnitTypeRepository defines data access for unit types.
type UnitTypeRepository interface {
	List(ctx context.Context, p Pagination) (Page[models.UnitType], error)
	Get(ctx context.Context, id uint) (*models.UnitType, error)
	Create(ctx context.Context, t *models.UnitType) error
	Update(ctx context.Context, t *models.UnitType) error

	// Delete removes the type; units referencing it keep existing with no type.
	Delete(ctx context.Context, id uint) error
}

type unitTypeRepository struct {
	crud[models.UnitType]
}

// NewUnitTypeRepository creates a new UnitTypeRepository.
func NewUnitTypeRepository(db *database.Database) UnitTypeRepository {
	return &unitTypeRepository{crud: newCRUD[models.UnitType](db.DB, "unit type", "name")}
}

func (r *unitTypeRepository) List(ctx context.Context, p Pagination) (Page[models.UnitType], error) {
	return r.list(ctx, nil, p)
}

func (r *unitTypeRepository) Get(ctx context.Context, id uint) (*models.UnitType, error) {
	return r.get(ctx, id)
}

func (r *unitTypeRepository) Create(ctx context.Context, t *models.UnitType) error {
	return r.create(ctx, t)
}

func (r *unitTypeRepository) Update(ctx context.Context, t *models.UnitType) error {
	return r.update(ctx, t)
}

func (r *unitTypeRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}
