package services

import (
	"context"
	"strings"

	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
)

// LeaseView is a lease with the values derived from today's date.
type LeaseView struct {
	models.Lease
	RemainingDays  int  `json:"remaining_days"`
	IsExpired      bool `json:"is_expired"`
	DurationMonths int  `json:"duration_months"`
}

// LeaseService manages leases.
type LeaseService interface {
	List(ctx context.Context, f repository.LeaseFilter, p repository.Pagination) (repository.Page[LeaseView], error)
	Get(ctx context.Context, id uint) (*LeaseView, error)

	// Create validates the dates, checks that the unit and tenant exist and
	// fills a zero monthly rent from the unit's rent price.
	Create(ctx context.Context, actor Actor, l *models.Lease) error

	Update(ctx context.Context, actor Actor, l *models.Lease) error
	Delete(ctx context.Context, actor Actor, id uint) error

	// ExpireOverdue marks every active lease that ended before today as
	// expired. Nothing calls it automatically.
	ExpireOverdue(ctx context.Context, actor Actor) (int64, error)
}

type leaseService struct {
	repo    repository.LeaseRepository
	units   repository.UnitRepository
	tenants repository.TenantRepository
	audit   Recorder
	log     *logger.Logger
	now     Clock
}

// NewLeaseService creates a new LeaseService.
func NewLeaseService(
	repo repository.LeaseRepository,
	units repository.UnitRepository,
	tenants repository.TenantRepository,
	audit Recorder,
	log *logger.Logger,
) LeaseService {
	return &leaseService{repo: repo, units: units, tenants: tenants, audit: audit, log: log}
}

// ViewLease derives the date-dependent values of l as of today.
func ViewLease(l models.Lease, today models.Date) LeaseView {
	return LeaseView{
		Lease:          l,
		RemainingDays:  l.RemainingDays(today),
		IsExpired:      l.IsExpired(today),
		DurationMonths: l.DurationMonths(),
	}
}

func (s *leaseService) List(ctx context.Context, f repository.LeaseFilter, p repository.Pagination) (repository.Page[LeaseView], error) {
	if f.Status != "" && !f.Status.Valid() {
		return repository.Page[LeaseView]{}, invalid("unknown lease status %q", f.Status)
	}
	page, err := s.repo.List(ctx, f, p)
	if err != nil {
		return repository.Page[LeaseView]{}, repoError("lease", err)
	}

	today := s.now.today()
	out := repository.Page[LeaseView]{Total: page.Total, Page: page.Page, PerPage: page.PerPage}
	out.Items = make([]LeaseView, 0, len(page.Items))
	for _, l := range page.Items {
		out.Items = append(out.Items, ViewLease(l, today))
	}
	return out, nil
}

func (s *leaseService) Get(ctx context.Context, id uint) (*LeaseView, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, repoError("lease", err)
	}
	v := ViewLease(*l, s.now.today())
	return &v, nil
}

func (s *leaseService) validate(l *models.Lease) error {
	l.ContractNumber = strings.TrimSpace(l.ContractNumber)
	if l.Status == "" {
		l.Status = models.LeaseActive
	}

	switch {
	case l.ContractNumber == "":
		return invalid("contract number is required")
	case l.UnitID == 0:
		return invalid("unit is required")
	case l.TenantID == 0:
		return invalid("tenant is required")
	case l.StartDate.IsZero() || l.EndDate.IsZero():
		return invalid("start and end dates are required")
	case !l.StartDate.Before(l.EndDate):
		s.log.Warn("Invalid lease dates provided", map[string]interface{}{
			"contract_number": l.ContractNumber,
			"start_date":      l.StartDate.String(),
			"end_date":        l.EndDate.String(),
		})
		return ErrInvalidLeaseDates
	case !l.Status.Valid():
		return invalid("unknown lease status %q", l.Status)
	case l.MonthlyRent < 0 || l.Deposit < 0:
		return invalid("rent and deposit must not be negative")
	}
	return nil
}

func (s *leaseService) Create(ctx context.Context, actor Actor, l *models.Lease) error {
	if err := s.validate(l); err != nil {
		return err
	}

	unit, err := s.units.Get(ctx, l.UnitID)
	if err != nil {
		return repoError("unit", err)
	}
	if _, err := s.tenants.Get(ctx, l.TenantID); err != nil {
		return repoError("tenant", err)
	}
	if l.MonthlyRent == 0 && l.Status == models.LeaseActive {
		l.MonthlyRent = unit.RentPrice
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.log.Warn("Failed to create lease", map[string]interface{}{
			"contract_number": l.ContractNumber,
			"unit_id":         l.UnitID,
			"error":           err.Error(),
		})
		return repoError("lease", err)
	}

	s.log.Info("Lease created", map[string]interface{}{
		"lease_id":        l.ID,
		"contract_number": l.ContractNumber,
		"unit_id":         l.UnitID,
		"tenant_id":       l.TenantID,
	})
	s.audit.Record(ctx, actor, "Created lease", map[string]interface{}{
		"lease_id":        l.ID,
		"contract_number": l.ContractNumber,
	})
	return nil
}

func (s *leaseService) Update(ctx context.Context, actor Actor, l *models.Lease) error {
	if err := s.validate(l); err != nil {
		return err
	}
	existing, err := s.repo.Get(ctx, l.ID)
	if err != nil {
		return repoError("lease", err)
	}
	l.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, l); err != nil {
		return repoError("lease", err)
	}

	s.log.Info("Lease updated", map[string]interface{}{"lease_id": l.ID, "status": l.Status})
	s.audit.Record(ctx, actor, "Updated lease", map[string]interface{}{
		"lease_id":        l.ID,
		"contract_number": l.ContractNumber,
		"status":          l.Status,
	})
	return nil
}

func (s *leaseService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError("lease", err)
	}

	s.log.Info("Lease deleted", map[string]interface{}{"lease_id": id})
	s.audit.Record(ctx, actor, "Deleted lease", map[string]interface{}{"lease_id": id})
	return nil
}

func (s *leaseService) ExpireOverdue(ctx context.Context, actor Actor) (int64, error) {
	today := s.now.today()

	n, err := s.repo.ExpireEnded(ctx, today)
	if err != nil {
		s.log.Error("Failed to expire leases", err, map[string]interface{}{"today": today.String()})
		return 0, repoError("lease", err)
	}

	s.log.Info("Expired ended leases", map[string]interface{}{"today": today.String(), "count": n})
	s.audit.Record(ctx, actor, "Expired ended leases", map[string]interface{}{"today": today.String(), "count": n})
	return n, nil
}
