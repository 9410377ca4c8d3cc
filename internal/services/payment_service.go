package services

import (
	"context"

	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
)

// PaymentService records money received against leases.
type PaymentService interface {
	List(ctx context.Context, f repository.PaymentFilter, p repository.Pagination) (repository.Page[models.Payment], error)
	Get(ctx context.Context, id uint) (*models.Payment, error)
	Create(ctx context.Context, actor Actor, pay *models.Payment) error
	Update(ctx context.Context, actor Actor, pay *models.Payment) error
	Delete(ctx context.Context, actor Actor, id uint) error

	// TotalForLease sums every payment recorded against a lease.
	TotalForLease(ctx context.Context, leaseID uint) (float64, error)
}

type paymentService struct {
	repo   repository.PaymentRepository
	leases repository.LeaseRepository
	audit  Recorder
	log    *logger.Logger
	now    Clock
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(repo repository.PaymentRepository, leases repository.LeaseRepository, audit Recorder, log *logger.Logger) PaymentService {
	return &paymentService{repo: repo, leases: leases, audit: audit, log: log}
}

func (s *paymentService) validate(pay *models.Payment) error {
	if pay.Date.IsZero() {
		pay.Date = s.now.today()
	}
	switch {
	case pay.LeaseID == 0:
		return invalid("lease is required")
	case pay.Amount <= 0:
		return ErrInvalidAmount
	case !pay.PaymentMethod.Valid():
		return invalid("unknown payment method %q", pay.PaymentMethod)
	}
	return nil
}

func (s *paymentService) List(ctx context.Context, f repository.PaymentFilter, p repository.Pagination) (repository.Page[models.Payment], error) {
	page, err := s.repo.List(ctx, f, p)
	return page, repoError("payment", err)
}

func (s *paymentService) Get(ctx context.Context, id uint) (*models.Payment, error) {
	pay, err := s.repo.Get(ctx, id)
	return pay, repoError("payment", err)
}

func (s *paymentService) Create(ctx context.Context, actor Actor, pay *models.Payment) error {
	if err := s.validate(pay); err != nil {
		return err
	}
	if _, err := s.leases.Get(ctx, pay.LeaseID); err != nil {
		return repoError("lease", err)
	}
	if err := s.repo.Create(ctx, pay); err != nil {
		return repoError("payment", err)
	}

	s.log.Info("Payment recorded", map[string]interface{}{
		"payment_id": pay.ID,
		"lease_id":   pay.LeaseID,
		"amount":     pay.Amount,
		"method":     pay.PaymentMethod,
	})
	s.audit.Record(ctx, actor, "Recorded payment", map[string]interface{}{
		"payment_id": pay.ID,
		"lease_id":   pay.LeaseID,
		"amount":     pay.Amount,
	})
	return nil
}

func (s *paymentService) Update(ctx context.Context, actor Actor, pay *models.Payment) error {
	if err := s.validate(pay); err != nil {
		return err
	}
	existing, err := s.repo.Get(ctx, pay.ID)
	if err != nil {
		return repoError("payment", err)
	}
	pay.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, pay); err != nil {
		return repoError("payment", err)
	}
	s.audit.Record(ctx, actor, "Updated payment", map[string]interface{}{"payment_id": pay.ID, "amount": pay.Amount})
	return nil
}

func (s *paymentService) Delete(ctx context.Context, actor Actor, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return repoError("payment", err)
	}
	s.audit.Record(ctx, actor, "Deleted payment", map[string]interface{}{"payment_id": id})
	return nil
}

func (s *paymentService) TotalForLease(ctx context.Context, leaseID uint) (float64, error) {
	total, err := s.repo.SumByLease(ctx, leaseID)
	return total, repoError("payment", err)
}
