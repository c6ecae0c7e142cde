package testutil

import (
	"time"

	"github.com/alexanderramin/menus/internal/domain"
	"github.com/google/uuid"
)

// MenuOption customizes a fixture menu item.
type MenuOption func(*domain.MenuItem)

func WithParent(id string) MenuOption {
	return func(m *domain.MenuItem) {
		m.ParentID = &id
	}
}

func WithSortOrder(i int) MenuOption {
	return func(m *domain.MenuItem) {
		m.SortOrder = i
	}
}

func WithURL(u string) MenuOption {
	return func(m *domain.MenuItem) {
		m.URL = &u
	}
}

func WithIcon(i string) MenuOption {
	return func(m *domain.MenuItem) {
		m.Icon = &i
	}
}

func WithInactive() MenuOption {
	return func(m *domain.MenuItem) {
		m.IsActive = false
	}
}

func NewTestMenu(name string, opts ...MenuOption) *domain.MenuItem {
	now := time.Now().UTC()
	m := &domain.MenuItem{
		ID:        uuid.New().String(),
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to i.
func IntPtr(i int) *int {
	return &i
}
