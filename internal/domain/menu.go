package domain

import (
	"time"
	"unicode/utf8"
)

// Field limits enforced on write.
const (
	MaxNameLen = 255
	MaxURLLen  = 500
	MaxIconLen = 100
)

// MenuItem is a node of the menu forest. Siblings share ParentID (nil for
// roots) and are ranked by SortOrder.
type MenuItem struct {
	ID        string
	Name      string
	URL       *string
	Icon      *string
	ParentID  *string
	SortOrder int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// InScope reports whether the item belongs to the sibling group of parentID.
func (m *MenuItem) InScope(parentID *string) bool {
	return SameScope(m.ParentID, parentID)
}

// SameScope compares two parent references, treating nil as the root scope.
func SameScope(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Validate checks field constraints shared by create and update.
func (m *MenuItem) Validate() error {
	if m.Name == "" {
		return NewValidationError("name", "is required")
	}
	if utf8.RuneCountInString(m.Name) > MaxNameLen {
		return NewValidationError("name", "must be at most 255 characters")
	}
	if m.URL != nil && utf8.RuneCountInString(*m.URL) > MaxURLLen {
		return NewValidationError("url", "must be at most 500 characters")
	}
	if m.Icon != nil && utf8.RuneCountInString(*m.Icon) > MaxIconLen {
		return NewValidationError("icon", "must be at most 100 characters")
	}
	if m.SortOrder < 0 {
		return NewValidationError("sortOrder", "must not be negative")
	}
	return nil
}
