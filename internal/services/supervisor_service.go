package services

import (
	"context"
	"errors"
	"strings"

	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
)

// SupervisorService assigns users to buildings as supervisors and manages
// their permission sets.
type SupervisorService interface {
	List(ctx context.Context, p repository.Pagination) (repository.Page[models.Supervisor], error)
	Get(ctx context.Context, id uint) (*models.Supervisor, error)
	GetByUser(ctx context.Context, userID uint) (*models.Supervisor, error)

	// Create makes the user a supervisor of the building and grants the
	// given permissions. The user's supervisor flag is set.
	Create(ctx context.Context, actor Actor, s *models.Supervisor, permissionIDs []uint) (*models.Supervisor, error)

	// Update moves a supervisor to another building and, when permissionIDs
	// is non-nil, replaces the permission set.
	Update(ctx context.Context, actor Actor, s *models.Supervisor, permissionIDs []uint) (*models.Supervisor, error)

	SetPermissions(ctx context.Context, actor Actor, id uint, permissionIDs []uint) (*models.Supervisor, error)

	// Delete removes the supervisor record and clears the user's flag.
	Delete(ctx context.Context, actor Actor, id uint) error
}

type supervisorService struct {
	repo  repository.SupervisorRepository
	users repository.UserRepository
	audit Recorder
	log   *logger.Logger
}

// NewSupervisorService creates a new SupervisorService.
func NewSupervisorService(repo repository.SupervisorRepository, users repository.UserRepository, audit Recorder, log *logger.Logger) SupervisorService {
	return &supervisorService{repo: repo, users: users, audit: audit, log: log}
}

func (s *supervisorService) List(ctx context.Context, p repository.Pagination) (repository.Page[models.Supervisor], error) {
	page, err := s.repo.List(ctx, p)
	return page, repoError("supervisor", err)
}

func (s *supervisorService) Get(ctx context.Context, id uint) (*models.Supervisor, error) {
	sv, err := s.repo.Get(ctx, id)
	return sv, repoError("supervisor", err)
}

func (s *supervisorService) GetByUser(ctx context.Context, userID uint) (*models.Supervisor, error) {
	sv, err := s.repo.GetByUserID(ctx, userID)
	return sv, repoError("supervisor", err)
}

// setFlag updates the user's supervisor flag when it differs.
func (s *supervisorService) setFlag(ctx context.Context, userID uint, on bool) error {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return repoError("user", err)
	}
	if u.IsSupervisor == on {
		return nil
	}
	u.IsSupervisor = on
	return repoError("user", s.users.Update(ctx, u))
}

func (s *supervisorService) Create(ctx context.Context, actor Actor, sv *models.Supervisor, permissionIDs []uint) (*models.Supervisor, error) {
	if sv.UserID == 0 {
		return nil, invalid("user is required")
	}
	if sv.BuildingID == 0 {
		return nil, invalid("building is required")
	}
	if _, err := s.users.Get(ctx, sv.UserID); err != nil {
		return nil, repoError("user", err)
	}

	sv.Permissions = nil
	if err := s.repo.Create(ctx, sv); err != nil {
		return nil, repoError("supervisor", err)
	}
	if err := s.repo.ReplacePermissions(ctx, sv.ID, permissionIDs); err != nil {
		return nil, repoError("supervisor permission", err)
	}
	if err := s.setFlag(ctx, sv.UserID, true); err != nil {
		return nil, err
	}

	s.log.Info("Supervisor assigned", map[string]interface{}{
		"supervisor_id": sv.ID,
		"user_id":       sv.UserID,
		"building_id":   sv.BuildingID,
	})
	s.audit.Record(ctx, actor, "Assigned supervisor", map[string]interface{}{
		"supervisor_id": sv.ID,
		"user_id":       sv.UserID,
		"building_id":   sv.BuildingID,
	})
	return s.Get(ctx, sv.ID)
}

func (s *supervisorService) Update(ctx context.Context, actor Actor, sv *models.Supervisor, permissionIDs []uint) (*models.Supervisor, error) {
	if sv.BuildingID == 0 {
		return nil, invalid("building is required")
	}
	existing, err := s.repo.Get(ctx, sv.ID)
	if err != nil {
		return nil, repoError("supervisor", err)
	}

	// the assigned user is fixed for the lifetime of the record
	sv.UserID = existing.UserID
	sv.Permissions = nil
	if err := s.repo.Update(ctx, sv); err != nil {
		return nil, repoError("supervisor", err)
	}
	if permissionIDs != nil {
		if err := s.repo.ReplacePermissions(ctx, sv.ID, permissionIDs); err != nil {
			return nil, repoError("supervisor permission", err)
		}
	}

	s.audit.Record(ctx, actor, "Updated supervisor", map[string]interface{}{"supervisor_id": sv.ID, "building_id": sv.BuildingID})
	return s.Get(ctx, sv.ID)
}

func (s *supervisorService) SetPermissions(ctx context.Context, actor Actor, id uint, permissionIDs []uint) (*models.Supervisor, error) {
	if err := s.repo.ReplacePermissions(ctx, id, permissionIDs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repoError("supervisor", err)
		}
		return nil, repoError("supervisor permission", err)
	}

	s.log.Info("Supervisor permissions replaced", map[string]interface{}{
		"supervisor_id": id,
		"permissions":   permissionIDs,
	})
	s.audit.Record(ctx, actor, "Set supervisor permissions", map[string]interface{}{"supervisor_id": id, "permissions": permissionIDs})
	return s.Get(ctx, id)
}

func (s *supervisorService) Delete(ctx context.Context, actor Actor, id uint) error {
	sv, err := s.repo.Get(ctx, id)
	if err != nil {
		return repoError("supervisor", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError("supervisor", err)
	}
	if err := s.setFlag(ctx, sv.UserID, false); err != nil {
		s.log.Warn("Failed to clear supervisor flag", map[string]interface{}{
			"user_id": sv.UserID,
			"error":   err.Error(),
		})
	}

	s.audit.Record(ctx, actor, "Removed supervisor", map[string]interface{}{"supervisor_id": id, "user_id": sv.UserID})
	return nil
}

// PermissionService manages the named permissions supervisors can hold.
type PermissionService interface {
	List(ctx context.Context, p repository.Pagination) (repository.Page[models.SupervisorPermission], error)
	Get(ctx context.Context, id uint) (*models.SupervisorPermission, error)
	Create(ctx context.Context, actor Actor, sp *models.SupervisorPermission) error
	Update(ctx context.Context, actor Actor, sp *models.SupervisorPermission) error
	Delete(ctx context.Context, actor Actor, id uint) error
}

type permissionService struct {
	repo  repository.SupervisorPermissionRepository
	audit Recorder
	log   *logger.Logger
}

// NewPermissionService creates a new PermissionService.
func NewPermissionService(repo repository.SupervisorPermissionRepository, audit Recorder, log *logger.Logger) PermissionService {
	return &permissionService{repo: repo, audit: audit, log: log}
}

func validatePermission(sp *models.SupervisorPermission) error {
	sp.Name = strings.TrimSpace(sp.Name)
	if sp.Name == "" {
		return invalid("name is required")
	}
	return nil
}

func (s *permissionService) List(ctx context.Context, p repository.Pagination) (repository.Page[models.SupervisorPermission], error) {
	page, err := s.repo.List(ctx, p)
	return page, repoError("supervisor permission", err)
}

func (s *permissionService) Get(ctx context.Context, id uint) (*models.SupervisorPermission, error) {
	sp, err := s.repo.Get(ctx, id)
	return sp, repoError("supervisor permission", err)
}

func (s *permissionService) Create(ctx context.Context, actor Actor, sp *models.SupervisorPermission) error {
	if err := validatePermission(sp); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, sp); err != nil {
		return repoError("supervisor permission", err)
	}
	s.audit.Record(ctx, actor, "Created supervisor permission", map[string]interface{}{"permission_id": sp.ID, "name": sp.Name})
	return nil
}

func (s *permissionService) Update(ctx context.Context, actor Actor, sp *models.SupervisorPermission) error {
	if err := validatePermission(sp); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, sp); err != nil {
		return repoError("supervisor permission", err)
	}
	s.audit.Record(ctx, actor, "Updated supervisor permission", map[string]interface{}{"permission_id": sp.ID, "name": sp.Name})
	return nil
}

func (s *permissionService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError("supervisor permission", err)
	}
	s.audit.Record(ctx, actor, "Deleted supervisor permission", map[string]interface{}{"permission_id": id})
	return nil
}
