package contract

import (
	"unicode/utf8"

	"github.com/alexanderramin/menus/internal/domain"
	"github.com/google/uuid"
)

// CreateMenuRequest creates a menu item. A nil SortOrder appends to the
// end of the parent's scope; a nil ParentID targets the root scope.
type CreateMenuRequest struct {
	Name      string  `json:"name"`
	URL       *string `json:"url,omitempty"`
	Icon      *string `json:"icon,omitempty"`
	ParentID  *string `json:"parentId,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

func (r CreateMenuRequest) Validate() error {
	if r.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if err := validateDisplayFields(&r.Name, r.URL, r.Icon); err != nil {
		return err
	}
	if err := validateParentID(r.ParentID); err != nil {
		return err
	}
	return validateSortOrder(r.SortOrder)
}

// UpdateMenuRequest edits display fields only. Structure changes go through
// MoveMenuRequest and ReorderMenuRequest.
type UpdateMenuRequest struct {
	Name     *string `json:"name,omitempty"`
	URL      *string `json:"url,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func (r UpdateMenuRequest) Validate() error {
	if r.Name == nil && r.URL == nil && r.Icon == nil && r.IsActive == nil {
		return domain.NewValidationError("body", "must set at least one field")
	}
	if r.Name != nil && *r.Name == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	return validateDisplayFields(r.Name, r.URL, r.Icon)
}

// MoveMenuRequest reparents a menu item. A nil SortOrder appends to the end
// of the destination scope.
type MoveMenuRequest struct {
	ParentID  *string `json:"parentId"`
	SortOrder *int    `json:"sortOrder,omitempty"`
}

func (r MoveMenuRequest) Validate() error {
	if err := validateParentID(r.ParentID); err != nil {
		return err
	}
	return validateSortOrder(r.SortOrder)
}

// ReorderMenuRequest moves a menu item to SortOrder inside the scope of
// ParentID, which must be the item's current scope.
type ReorderMenuRequest struct {
	ParentID  *string `json:"parentId"`
	SortOrder *int    `json:"sortOrder"`
}

func (r ReorderMenuRequest) Validate() error {
	if err := validateParentID(r.ParentID); err != nil {
		return err
	}
	if r.SortOrder == nil {
		return domain.NewValidationError("sortOrder", "is required")
	}
	return validateSortOrder(r.SortOrder)
}

func validateDisplayFields(name, url, icon *string) error {
	if name != nil && utf8.RuneCountInString(*name) > domain.MaxNameLen {
		return domain.NewValidationError("name", "must be at most 255 characters")
	}
	if url != nil && utf8.RuneCountInString(*url) > domain.MaxURLLen {
		return domain.NewValidationError("url", "must be at most 500 characters")
	}
	if icon != nil && utf8.RuneCountInString(*icon) > domain.MaxIconLen {
		return domain.NewValidationError("icon", "must be at most 100 characters")
	}
	return nil
}

func validateParentID(id *string) error {
	if id == nil {
		return nil
	}
	if _, err := uuid.Parse(*id); err != nil {
		return domain.NewValidationError("parentId", "must be a UUID")
	}
	return nil
}

func validateSortOrder(order *int) error {
	if order != nil && *order < 0 {
		return domain.NewValidationError("sortOrder", "must not be negative")
	}
	return nil
}
