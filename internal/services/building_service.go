package services

import (
	"context"
	"strings"

	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
)

// BuildingView is a building with its live unit counts.
type BuildingView struct {
	models.Building
	Occupancy models.Occupancy `json:"occupancy"`
}

// BuildingService manages buildings.
type BuildingService interface {
	List(ctx context.Context, p repository.Pagination) (repository.Page[BuildingView], error)
	Get(ctx context.Context, id uint) (*BuildingView, error)
	Create(ctx context.Context, actor Actor, b *models.Building) error
	Update(ctx context.Context, actor Actor, b *models.Building) error

	// Delete removes the building together with its units and their leases.
	Delete(ctx context.Context, actor Actor, id uint) error
}

type buildingService struct {
	repo  repository.BuildingRepository
	audit Recorder
	log   *logger.Logger
}

// NewBuildingService creates a new BuildingService.
func NewBuildingService(repo repository.BuildingRepository, audit Recorder, log *logger.Logger) BuildingService {
	return &buildingService{repo: repo, audit: audit, log: log}
}

func (s *buildingService) view(ctx context.Context, b models.Building) (BuildingView, error) {
	occ, err := s.repo.Occupancy(ctx, b.ID)
	if err != nil {
		return BuildingView{}, repoError("building", err)
	}
	return BuildingView{Building: b, Occupancy: occ}, nil
}

func (s *buildingService) List(ctx context.Context, p repository.Pagination) (repository.Page[BuildingView], error) {
	page, err := s.repo.List(ctx, p)
	if err != nil {
		return repository.Page[BuildingView]{}, repoError("building", err)
	}

	out := repository.Page[BuildingView]{Total: page.Total, Page: page.Page, PerPage: page.PerPage}
	out.Items = make([]BuildingView, 0, len(page.Items))
	for _, b := range page.Items {
		v, err := s.view(ctx, b)
		if err != nil {
			return repository.Page[BuildingView]{}, err
		}
		out.Items = append(out.Items, v)
	}
	return out, nil
}

func (s *buildingService) Get(ctx context.Context, id uint) (*BuildingView, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, repoError("building", err)
	}
	v, err := s.view(ctx, *b)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func validateBuilding(b *models.Building) error {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return invalid("building name is required")
	}
	if strings.TrimSpace(b.Location) == "" {
		return invalid("building location is required")
	}
	return nil
}

func (s *buildingService) Create(ctx context.Context, actor Actor, b *models.Building) error {
	if err := validateBuilding(b); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		s.log.Warn("Failed to create building", map[string]interface{}{"name": b.Name, "error": err.Error()})
		return repoError("building", err)
	}

	s.log.Info("Building created", map[string]interface{}{"building_id": b.ID, "name": b.Name})
	s.audit.Record(ctx, actor, "Created building", map[string]interface{}{"building_id": b.ID, "name": b.Name})
	return nil
}

func (s *buildingService) Update(ctx context.Context, actor Actor, b *models.Building) error {
	if err := validateBuilding(b); err != nil {
		return err
	}
	existing, err := s.repo.Get(ctx, b.ID)
	if err != nil {
		return repoError("building", err)
	}
	b.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, b); err != nil {
		return repoError("building", err)
	}

	s.log.Info("Building updated", map[string]interface{}{"building_id": b.ID})
	s.audit.Record(ctx, actor, "Updated building", map[string]interface{}{"building_id": b.ID, "name": b.Name})
	return nil
}

func (s *buildingService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError("building", err)
	}

	s.log.Info("Building deleted", map[string]interface{}{"building_id": id})
	s.audit.Record(ctx, actor, "Deleted building", map[string]interface{}{"building_id": id})
	return nil
}

// UnitTypeService manages unit categories.
type UnitTypeService interface {
	List(ctx context.Context, p repository.Pagination) (repository.Page[models.UnitType], error)
	Get(ctx context.Context, id uint) (*models.UnitType, error)
	Create(ctx context.Context, actor Actor, t *models.UnitType) error
	Update(ctx context.Context, actor Actor, t *models.UnitType) error
	Delete(ctx context.Context, actor Actor, id uint) error
}

type unitTypeService struct {
	repo  repository.UnitTypeRepository
	audit Recorder
	log   *logger.Logger
}

// NewUnitTypeService creates a new UnitTypeService.
func NewUnitTypeService(repo repository.UnitTypeRepository, audit Recorder, log *logger.Logger) UnitTypeService {
	return &unitTypeService{repo: repo, audit: audit, log: log}
}

func (s *unitTypeService) List(ctx context.Context, p repository.Pagination) (repository.Page[models.UnitType], error) {
	page, err := s.repo.List(ctx, p)
	return page, repoError("unit type", err)
}

func (s *unitTypeService) Get(ctx context.Context, id uint) (*models.UnitType, error) {
	t, err := s.repo.Get(ctx, id)
	return t, repoError("unit type", err)
}

func (s *unitTypeService) Create(ctx context.Context, actor Actor, t *models.UnitType) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return invalid("unit type name is required")
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return repoError("unit type", err)
	}
	s.audit.Record(ctx, actor, "Created unit type", map[string]interface{}{"unit_type_id": t.ID, "name": t.Name})
	return nil
}

func (s *unitTypeService) Update(ctx context.Context, actor Actor, t *models.UnitType) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return invalid("unit type name is required")
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return repoError("unit type", err)
	}
	s.audit.Record(ctx, actor, "Updated unit type", map[string]interface{}{"unit_type_id": t.ID, "name": t.Name})
	return nil
}

func (s *unitTypeService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError("unit type", err)
	}
	s.audit.Record(ctx, actor, "Deleted unit type", map[string]interface{}{"unit_type_id": id})
	return nil
}

// UnitService manages units.
type UnitService interface {
	List(ctx context.Context, f repository.UnitFilter, p repository.Pagination) (repository.Page[models.Unit], error)
	Get(ctx context.Context, id uint) (*models.Unit, error)
	Create(ctx context.Context, actor Actor, u *models.Unit) error
	Update(ctx context.Context, actor Actor, u *models.Unit) error

	// Delete removes the unit and, through the cascade, its lease.
	Delete(ctx context.Context, actor Actor, id uint) error
}

type unitService struct {
	repo  repository.UnitRepository
	audit Recorder
	log   *logger.Logger
}

// NewUnitService creates a new UnitService.
func NewUnitService(repo repository.UnitRepository, audit Recorder, log *logger.Logger) UnitService {
	return &unitService{repo: repo, audit: audit, log: log}
}

func validateUnit(u *models.Unit) error {
	u.UnitNumber = strings.TrimSpace(u.UnitNumber)
	if u.Status == "" {
		u.Status = models.UnitAvailable
	}
	switch {
	case u.UnitNumber == "":
		return invalid("unit number is required")
	case u.BuildingID == 0:
		return invalid("building is required")
	case !u.Status.Valid():
		return invalid("unknown unit status %q", u.Status)
	case u.Size < 0:
		return invalid("size must not be negative")
	case u.RentPrice < 0:
		return invalid("rent price must not be negative")
	}
	return nil
}

func (s *unitService) List(ctx context.Context, f repository.UnitFilter, p repository.Pagination) (repository.Page[models.Unit], error) {
	if f.Status != "" && !f.Status.Valid() {
		return repository.Page[models.Unit]{}, invalid("unknown unit status %q", f.Status)
	}
	page, err := s.repo.List(ctx, f, p)
	return page, repoError("unit", err)
}

func (s *unitService) Get(ctx context.Context, id uint) (*models.Unit, error) {
	u, err := s.repo.Get(ctx, id)
	return u, repoError("unit", err)
}

func (s *unitService) Create(ctx context.Context, actor Actor, u *models.Unit) error {
	if err := validateUnit(u); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return repoError("unit", err)
	}

	s.log.Info("Unit created", map[string]interface{}{"unit_id": u.ID, "unit_number": u.UnitNumber, "building_id": u.BuildingID})
	s.audit.Record(ctx, actor, "Created unit", map[string]interface{}{"unit_id": u.ID, "unit_number": u.UnitNumber})
	return nil
}

func (s *unitService) Update(ctx context.Context, actor Actor, u *models.Unit) error {
	if err := validateUnit(u); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return repoError("unit", err)
	}

	s.log.Info("Unit updated", map[string]interface{}{"unit_id": u.ID, "status": u.Status})
	s.audit.Record(ctx, actor, "Updated unit", map[string]interface{}{"unit_id": u.ID, "unit_number": u.UnitNumber})
	return nil
}

func (s *unitService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError("unit", err)
	}

	s.log.Info("Unit deleted", map[string]interface{}{"unit_id": id})
	s.audit.Record(ctx, actor, "Deleted unit", map[string]interface{}{"unit_id": id})
	return nil
}
