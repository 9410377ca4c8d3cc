package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/repository"
)

// Service-level errors. Handlers map these onto HTTP status codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrDuplicate        = errors.New("already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrInvalidInput     = errors.New("invalid input")
	ErrForbidden        = errors.New("forbidden")

	ErrInvalidLeaseDates   = fmt.Errorf("%w: start date must be before end date", ErrInvalidInput)
	ErrInvalidInvoiceDates = fmt.Errorf("%w: due date must not be before issue date", ErrInvalidInput)
	ErrInvalidAmount       = fmt.Errorf("%w: amount must be greater than zero", ErrInvalidInput)
	ErrInvalidRating       = fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, models.MinReviewRating, models.MaxReviewRating)
	ErrReviewNotAllowed    = fmt.Errorf("%w: only completed requests can be reviewed", ErrInvalidInput)
	ErrUnitNotLeased       = fmt.Errorf("%w: unit is not leased by the requesting tenant", ErrForbidden)
)

// Actor is the authenticated user performing an operation. The zero Actor
// is the system itself, used by command line tasks.
type Actor struct {
	UserID       uint
	IsSuperuser  bool
	IsTenant     bool
	IsSupervisor bool
}

// SystemActor performs maintenance tasks outside any request.
var SystemActor = Actor{IsSuperuser: true}

// userRef returns a pointer to the actor's user id, nil for the system.
func (a Actor) userRef() *uint {
	if a.UserID == 0 {
		return nil
	}
	id := a.UserID
	return &id
}

// Clock returns the current time. Services take one so tests can pin today.
type Clock func() time.Time

func (c Clock) today() models.Date {
	if c == nil {
		return models.DateOf(time.Now())
	}
	return models.DateOf(c())
}

// repoError translates repository errors into service errors.
func repoError(entity string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, entity)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %s with the same unique value", ErrDuplicate, entity)
	case errors.Is(err, repository.ErrInvalidReference):
		return fmt.Errorf("%w: %s", ErrInvalidReference, entity)
	default:
		return fmt.Errorf("%s: %w", entity, err)
	}
}

// invalid wraps ErrInvalidInput with a field-specific message.
func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Recorder writes audit trail entries for administrative actions.
type Recorder interface {
	Record(ctx context.Context, actor Actor, action string, details map[string]interface{})
}
