package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/menus/internal/domain"
)

// ShiftRange selects which siblings BulkShift touches relative to a pivot
// sort order.
type ShiftRange int

const (
	// ShiftAbove selects siblings with sort_order > pivot.
	ShiftAbove ShiftRange = iota
	// ShiftAtOrAbove selects siblings with sort_order >= pivot.
	ShiftAtOrAbove
)

// MenuFields carries the display fields an update may change. Nil pointers
// leave the stored value untouched.
type MenuFields struct {
	Name     *string
	URL      *string
	Icon     *string
	IsActive *bool
}

// MenuRepo is the ordered-row store behind the menu service. Every read
// excludes soft-deleted rows. A nil parentID addresses the root scope.
// Writes stamp updated_at with the caller's clock.
type MenuRepo interface {
	Create(ctx context.Context, m *domain.MenuItem) error
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
	ListAll(ctx context.Context) ([]*domain.MenuItem, error)
	ListByScope(ctx context.Context, parentID *string) ([]*domain.MenuItem, error)
	ListScopes(ctx context.Context) ([]*string, error)
	Ancestors(ctx context.Context, id string) ([]string, error)
	MaxSortOrder(ctx context.Context, parentID *string) (maxOrder int, ok bool, err error)
	CountScope(ctx context.Context, parentID *string) (int, error)
	UpdateFields(ctx context.Context, id string, fields MenuFields, at time.Time) error
	SetPosition(ctx context.Context, id string, parentID *string, sortOrder int, at time.Time) error
	Resequence(ctx context.Context, orderedIDs []string, at time.Time) error
	BulkShift(ctx context.Context, parentID *string, rng ShiftRange, pivot, delta int, excludeID string, at time.Time) (int64, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
