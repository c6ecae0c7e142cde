package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/menus/internal/contract"
	"github.com/alexanderramin/menus/internal/db"
	"github.com/alexanderramin/menus/internal/domain"
	"github.com/alexanderramin/menus/internal/ordering"
	"github.com/alexanderramin/menus/internal/repository"
	"github.com/alexanderramin/menus/internal/tree"
	"github.com/google/uuid"
)

type menuService struct {
	menus    repository.MenuRepo
	uow      db.UnitOfWork
	txMenus  func(tx db.DBTX) repository.MenuRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewMenuService(menus repository.MenuRepo, uow db.UnitOfWork, observers ...UseCaseObserver) MenuService {
	return &menuService{
		menus: menus,
		uow:   uow,
		txMenus: func(tx db.DBTX) repository.MenuRepo {
			return repository.NewSQLiteMenuRepo(tx)
		},
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// track reports a finished use case to the observer and converts store
// errors into caller-facing kinds. Call it deferred with a pointer to the
// named error result.
func (s *menuService) track(ctx context.Context, name string, startedAt time.Time, fields map[string]any, errp *error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   *errp == nil,
		Err:       *errp,
		Fields:    fields,
	})
	*errp = publicError(*errp)
}

func (s *menuService) Create(ctx context.Context, req contract.CreateMenuRequest) (item *domain.MenuItem, err error) {
	startedAt := time.Now()
	fields := map[string]any{"name": req.Name}
	defer s.track(ctx, "create-menu", startedAt, fields, &err)

	if err = req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	item = &domain.MenuItem{
		ID:        uuid.New().String(),
		Name:      req.Name,
		URL:       req.URL,
		Icon:      req.Icon,
		ParentID:  req.ParentID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	fields["id"] = item.ID

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		menus := s.txMenus(tx)

		if item.ParentID != nil {
			if _, err := menus.GetByID(ctx, *item.ParentID); err != nil {
				return notFoundAs(err, "parent menu %s", *item.ParentID)
			}
		}

		maxOrder, ok, err := menus.MaxSortOrder(ctx, item.ParentID)
		if err != nil {
			return err
		}
		end := ordering.AppendPosition(maxOrder, ok)
		item.SortOrder = end
		if req.SortOrder != nil {
			item.SortOrder = ordering.Clamp(*req.SortOrder, end)
		}

		// An explicit position inside the range opens a slot for the new row.
		if item.SortOrder < end {
			if _, err := menus.BulkShift(ctx, item.ParentID, repository.ShiftAtOrAbove, item.SortOrder, 1, item.ID, now); err != nil {
				return err
			}
		}
		return menus.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	fields["sort_order"] = item.SortOrder
	return item, nil
}

func (s *menuService) Tree(ctx context.Context) (roots []*tree.Node, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer s.track(ctx, "list-menu-tree", startedAt, fields, &err)

	items, err := s.menus.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	fields["count"] = len(items)
	return tree.Build(items), nil
}

func (s *menuService) Get(ctx context.Context, id string) (detail *MenuDetail, err error) {
	startedAt := time.Now()
	defer s.track(ctx, "get-menu", startedAt, map[string]any{"id": id}, &err)

	item, err := s.menus.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "menu %s", id)
	}

	detail = &MenuDetail{Item: item}
	if item.ParentID != nil {
		parent, err := s.menus.GetByID(ctx, *item.ParentID)
		switch {
		case err == nil:
			detail.Parent = parent
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
	}

	detail.Children, err = s.menus.ListByScope(ctx, &item.ID)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *menuService) Update(ctx context.Context, id string, req contract.UpdateMenuRequest) (item *domain.MenuItem, err error) {
	startedAt := time.Now()
	defer s.track(ctx, "update-menu", startedAt, map[string]any{"id": id}, &err)

	if err = req.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		menus := s.txMenus(tx)
		if _, err := menus.GetByID(ctx, id); err != nil {
			return notFoundAs(err, "menu %s", id)
		}
		if err := menus.UpdateFields(ctx, id, repository.MenuFields{
			Name:     req.Name,
			URL:      req.URL,
			Icon:     req.Icon,
			IsActive: req.IsActive,
		}, s.now()); err != nil {
			return err
		}
		var err error
		item, err = menus.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete soft-deletes id and its whole subtree, descendants first, then
// closes the gap the removed item leaves among its siblings.
func (s *menuService) Delete(ctx context.Context, id string) (result *DeleteResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer s.track(ctx, "delete-menu", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		menus := s.txMenus(tx)

		target, err := menus.GetByID(ctx, id)
		if err != nil {
			return notFoundAs(err, "menu %s", id)
		}

		plan, err := ordering.DeletionPlan(id, func(parentID string) ([]string, error) {
			children, err := menus.ListByScope(ctx, &parentID)
			if err != nil {
				return nil, err
			}
			ids := make([]string, len(children))
			for i, c := range children {
				ids[i] = c.ID
			}
			return ids, nil
		})
		if err != nil {
			return err
		}

		deletedAt := s.now()
		for _, victim := range plan {
			if err := menus.SoftDelete(ctx, victim, deletedAt); err != nil {
				return fmt.Errorf("deleting menu %s: %w", victim, err)
			}
		}

		if _, err := menus.BulkShift(ctx, target.ParentID, repository.ShiftAbove, target.SortOrder, -1, target.ID, deletedAt); err != nil {
			return err
		}

		result = &DeleteResult{ID: id, DeletedIDs: plan}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["deleted_count"] = len(result.DeletedIDs)
	return result, nil
}

// Move reparents id. The old scope closes the gap behind the item and the
// destination scope opens a slot at the requested position; both shifts and
// the final write commit together.
func (s *menuService) Move(ctx context.Context, id string, req contract.MoveMenuRequest) (item *domain.MenuItem, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	if req.ParentID != nil {
		fields["parent_id"] = *req.ParentID
	}
	defer s.track(ctx, "move-menu", startedAt, fields, &err)

	if err = req.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		menus := s.txMenus(tx)

		node, err := menus.GetByID(ctx, id)
		if err != nil {
			return notFoundAs(err, "menu %s", id)
		}
		dest := req.ParentID
		if dest != nil {
			if err := s.checkDestination(ctx, menus, id, *dest); err != nil {
				return err
			}
		}
		sameScope := node.InScope(dest)

		size, err := menus.CountScope(ctx, dest)
		if err != nil {
			return err
		}
		if sameScope {
			size--
		}
		pos := size
		if req.SortOrder != nil {
			pos = ordering.Clamp(*req.SortOrder, size)
		}

		now := s.now()
		if _, err := menus.BulkShift(ctx, node.ParentID, repository.ShiftAbove, node.SortOrder, -1, id, now); err != nil {
			return err
		}
		if _, err := menus.BulkShift(ctx, dest, repository.ShiftAtOrAbove, pos, 1, id, now); err != nil {
			return err
		}
		if err := menus.SetPosition(ctx, id, dest, pos, now); err != nil {
			return err
		}

		item, err = menus.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["sort_order"] = item.SortOrder
	return item, nil
}

// checkDestination rejects a parent that is missing, the item itself, or
// one of its descendants.
func (s *menuService) checkDestination(ctx context.Context, menus repository.MenuRepo, id, parentID string) error {
	if parentID == id {
		return domain.Conflictf("menu %s cannot be its own parent", id)
	}
	if _, err := menus.GetByID(ctx, parentID); err != nil {
		return notFoundAs(err, "parent menu %s", parentID)
	}
	ancestors, err := menus.Ancestors(ctx, parentID)
	if err != nil {
		return err
	}
	for _, a := range ancestors {
		if a == id {
			return domain.Conflictf("menu %s cannot move under its descendant %s", id, parentID)
		}
	}
	return nil
}

// Reorder moves id to a new index within its current scope by rewriting
// every sibling's position from the in-memory order.
func (s *menuService) Reorder(ctx context.Context, id string, req contract.ReorderMenuRequest) (item *domain.MenuItem, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer s.track(ctx, "reorder-menu", startedAt, fields, &err)

	if err = req.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		menus := s.txMenus(tx)

		node, err := menus.GetByID(ctx, id)
		if err != nil {
			return notFoundAs(err, "menu %s", id)
		}
		if !node.InScope(req.ParentID) {
			return domain.Conflictf("menu %s is not in the requested scope; use move to change parents", id)
		}

		siblings, err := menus.ListByScope(ctx, req.ParentID)
		if err != nil {
			return err
		}
		ids := make([]string, len(siblings))
		for i, sib := range siblings {
			ids[i] = sib.ID
		}

		reordered, err := ordering.Reposition(ids, id, *req.SortOrder)
		if err != nil {
			return domain.Conflictf("reordering menu %s: %v", id, err)
		}
		if err := menus.Resequence(ctx, reordered, s.now()); err != nil {
			return err
		}
		fields["scope_size"] = len(reordered)

		item, err = menus.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["sort_order"] = item.SortOrder
	return item, nil
}

// Check reports every scope whose sort orders are not dense.
func (s *menuService) Check(ctx context.Context) (violations []ScopeViolation, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer s.track(ctx, "check-menus", startedAt, fields, &err)

	violations, err = findViolations(ctx, s.menus)
	if err != nil {
		return nil, err
	}
	fields["violations"] = len(violations)
	return violations, nil
}

// Repair re-indexes every non-dense scope from its current order and
// returns how many scopes were rewritten.
func (s *menuService) Repair(ctx context.Context) (repaired int, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer s.track(ctx, "repair-menus", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		menus := s.txMenus(tx)
		violations, err := findViolations(ctx, menus)
		if err != nil {
			return err
		}
		now := s.now()
		for _, v := range violations {
			siblings, err := menus.ListByScope(ctx, v.ParentID)
			if err != nil {
				return err
			}
			ids := make([]string, len(siblings))
			for i, sib := range siblings {
				ids[i] = sib.ID
			}
			if err := menus.Resequence(ctx, ids, now); err != nil {
				return err
			}
		}
		repaired = len(violations)
		return nil
	})
	if err != nil {
		return 0, err
	}
	fields["repaired"] = repaired
	return repaired, nil
}

func findViolations(ctx context.Context, menus repository.MenuRepo) ([]ScopeViolation, error) {
	scopes, err := menus.ListScopes(ctx)
	if err != nil {
		return nil, err
	}
	var violations []ScopeViolation
	for _, scope := range scopes {
		siblings, err := menus.ListByScope(ctx, scope)
		if err != nil {
			return nil, err
		}
		orders := make([]int, len(siblings))
		for i, sib := range siblings {
			orders[i] = sib.SortOrder
		}
		var v ordering.Violation
		if errors.As(ordering.CheckDense(orders), &v) {
			violations = append(violations, ScopeViolation{ParentID: scope, Size: len(siblings), Violation: v})
		}
	}
	return violations, nil
}
