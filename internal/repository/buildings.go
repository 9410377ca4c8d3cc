package repository

import (
	"context"
	"fmt"

	"github.com/stwalsh4118/rentdesk/internal/database"
	"github.com/stwalsh4118/rentdesk/internal/models"
)

// BuildingRepository defines data access for buildings.
type BuildingRepository interface {
	List(ctx context.Context, p Pagination) (Page[models.Building], error)
	Get(ctx context.Context, id uint) (*models.Building, error)
	Create(ctx context.Context, b *models.Building) error
	Update(ctx context.Context, b *models.Building) error

	// Delete removes the building. Its units, their leases and its
	// supervisors are removed by the database cascade.
	Delete(ctx context.Context, id uint) error

	// Occupancy counts the building's units by status.
	Occupancy(ctx context.Context, buildingID uint) (models.Occupancy, error)
}

type buildingRepository struct {
	crud[models.Building]
	db *database.Database
}

// NewBuildingRepository creates a new BuildingRepository.
func NewBuildingRepository(db *database.Database) BuildingRepository {
	return &buildingRepository{
		crud: newCRUD[models.Building](db.DB, "building", "name"),
		db:   db,
	}
}

func (r *buildingRepository) List(ctx context.Context, p Pagination) (Page[models.Building], error) {
	return r.list(ctx, nil, p)
}

func (r *buildingRepository) Get(ctx context.Context, id uint) (*models.Building, error) {
	return r.get(ctx, id)
}

func (r *buildingRepository) Create(ctx context.Context, b *models.Building) error {
	return r.create(ctx, b)
}

func (r *buildingRepository) Update(ctx context.Context, b *models.Building) error {
	return r.update(ctx, b)
}

func (r *buildingRepository) Delete(ctx context.Context, id uint) error {
	// supervisor permission links are not covered by the building cascade
	err := clearPermissionLinks(r.db.DB.WithContext(ctx),
		"supervisor_id IN (SELECT id FROM supervisors WHERE building_id = ?)", id)
	if err != nil {
		return err
	}
	return r.delete(ctx, id)
}

type statusCount struct {
	Status models.UnitStatus
	Count  int64
}

func (r *buildingRepository) Occupancy(ctx context.Context, buildingID uint) (models.Occupancy, error) {
	var rows []statusCount
	err := r.db.DB.WithContext(ctx).
		Model(&models.Unit{}).
		Select("status, COUNT(*) AS count").
		Where("building_id = ?", buildingID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return models.Occupancy{}, fmt.Errorf("failed to count units of building %d: %w", buildingID, translateError(err))
	}

	var o models.Occupancy
	for _, row := range rows {
		o.Add(row.Status, row.Count)
	}
	return o, nil
}
