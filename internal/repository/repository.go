package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository-level errors. Driver errors are translated into these so that
// services never depend on gorm or the database backend.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("duplicate value violates a unique constraint")
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// Pagination bounds.
const (
	DefaultPerPage = 10
	MaxPerPage     = 200
)

// Pagination selects one page of a list. Zero values select the first page
// with DefaultPerPage rows.
type Pagination struct {
	Page    int
	PerPage int
}

// Normalize clamps page and per-page into their valid ranges.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset is the number of rows skipped before the page.
func (p Pagination) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Page is one page of results together with the unpaginated total.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}

// Scope narrows a query, for example to one building.
type Scope func(*gorm.DB) *gorm.DB

// translateError maps gorm and driver errors onto repository errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}

	// drivers that do not implement error translation
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"), strings.Contains(msg, "SQLSTATE 23505"):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"), strings.Contains(msg, "SQLSTATE 23503"):
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	return err
}

// crud implements the list/get/create/update/delete operations shared by
// every entity repository.
type crud[T any] struct {
	db       *gorm.DB
	entity   string
	order    string
	preloads []string
}

func newCRUD[T any](db *gorm.DB, entity, order string, preloads ...string) crud[T] {
	return crud[T]{db: db, entity: entity, order: order, preloads: preloads}
}

func (r crud[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

// list returns one page of rows matching where (a model value whose non-zero
// fields become equality conditions) and the scopes.
func (r crud[T]) list(ctx context.Context, where *T, p Pagination, scopes ...Scope) (Page[T], error) {
	p = p.Normalize()

	base := r.db.WithContext(ctx).Model(new(T))
	if where != nil {
		base = base.Where(where)
	}
	for _, s := range scopes {
		base = s(base)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page[T]{}, fmt.Errorf("failed to count %s: %w", r.entity, translateError(err))
	}

	q := base.Session(&gorm.Session{})
	for _, pre := range r.preloads {
		q = q.Preload(pre)
	}

	items := make([]T, 0, p.PerPage)
	err := q.Order(r.order).Limit(p.PerPage).Offset(p.Offset()).Find(&items).Error
	if err != nil {
		return Page[T]{}, fmt.Errorf("failed to list %s: %w", r.entity, translateError(err))
	}

	return Page[T]{Items: items, Total: total, Page: p.Page, PerPage: p.PerPage}, nil
}

// all returns every row matching where and the scopes, unpaginated.
func (r crud[T]) all(ctx context.Context, where *T, scopes ...Scope) ([]T, error) {
	q := r.query(ctx).Model(new(T))
	if where != nil {
		q = q.Where(where)
	}
	for _, s := range scopes {
		q = s(q)
	}

	items := []T{}
	if err := q.Order(r.order).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.entity, translateError(err))
	}
	return items, nil
}

func (r crud[T]) get(ctx context.Context, id uint) (*T, error) {
	var v T
	if err := r.query(ctx).First(&v, id).Error; err != nil {
		err = translateError(err)
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get %s %d: %w", r.entity, id, err)
	}
	return &v, nil
}

func (r crud[T]) create(ctx context.Context, v *T) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", r.entity, translateError(err))
	}
	return nil
}

// update writes every column of v, including zero values. Last write wins.
func (r crud[T]) update(ctx context.Context, v *T) error {
	res := r.db.WithContext(ctx).Model(v).Select("*").Omit(clause.Associations, "CreatedAt").Updates(v)
	if res.Error != nil {
		return fmt.Errorf("failed to update %s: %w", r.entity, translateError(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r crud[T]) delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s %d: %w", r.entity, id, translateError(res.Error))
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// first returns the first row matching the condition, or ErrNotFound.
func (r crud[T]) first(ctx context.Context, query interface{}, args ...interface{}) (*T, error) {
	var v T
	if err := r.query(ctx).Where(query, args...).Order(r.order).First(&v).Error; err != nil {
		err = translateError(err)
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find %s: %w", r.entity, err)
	}
	return &v, nil
}
