package service

import (
	"context"

	"github.com/alexanderramin/menus/internal/contract"
	"github.com/alexanderramin/menus/internal/domain"
	"github.com/alexanderramin/menus/internal/ordering"
	"github.com/alexanderramin/menus/internal/tree"
)

// MenuDetail is a menu item with its parent (nil for roots) and its direct
// children in sibling order.
type MenuDetail struct {
	Item     *domain.MenuItem
	Parent   *domain.MenuItem
	Children []*domain.MenuItem
}

// DeleteResult lists the soft-deleted ids, descendants before ancestors.
type DeleteResult struct {
	ID         string
	DeletedIDs []string
}

// ScopeViolation reports a sibling group whose sort orders are not 0..n-1.
type ScopeViolation struct {
	ParentID  *string
	Size      int
	Violation ordering.Violation
}

type MenuService interface {
	Create(ctx context.Context, req contract.CreateMenuRequest) (*domain.MenuItem, error)
	Tree(ctx context.Context) ([]*tree.Node, error)
	Get(ctx context.Context, id string) (*MenuDetail, error)
	Update(ctx context.Context, id string, req contract.UpdateMenuRequest) (*domain.MenuItem, error)
	Delete(ctx context.Context, id string) (*DeleteResult, error)
	Move(ctx context.Context, id string, req contract.MoveMenuRequest) (*domain.MenuItem, error)
	Reorder(ctx context.Context, id string, req contract.ReorderMenuRequest) (*domain.MenuItem, error)
	Check(ctx context.Context) ([]ScopeViolation, error)
	Repair(ctx context.Context) (int, error)
}
