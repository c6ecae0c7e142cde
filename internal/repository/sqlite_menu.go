package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/menus/internal/db"
	"github.com/alexanderramin/menus/internal/domain"
)

// menuColumns is the canonical SELECT column list for menus.
const menuColumns = `id, name, url, icon, parent_id, sort_order, is_active,
		created_at, updated_at, deleted_at`

// SQLiteMenuRepo implements MenuRepo using a SQLite database.
type SQLiteMenuRepo struct {
	db db.DBTX
}

// NewSQLiteMenuRepo creates a new SQLiteMenuRepo over a *sql.DB or *sql.Tx.
func NewSQLiteMenuRepo(conn db.DBTX) *SQLiteMenuRepo {
	return &SQLiteMenuRepo{db: conn}
}

// Create inserts m after checking its field limits, so a caller that skipped
// request validation still cannot store an invalid row.
func (r *SQLiteMenuRepo) Create(ctx context.Context, m *domain.MenuItem) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("inserting menu: %w", err)
	}
	query := `INSERT INTO menus (id, name, url, icon, parent_id, sort_order, is_active,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		optionalText(m.URL),
		optionalText(m.Icon),
		optionalText(m.ParentID),
		m.SortOrder,
		sqlBool(m.IsActive),
		stamp(m.CreatedAt),
		stamp(m.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting menu: %w", err)
	}
	return nil
}

func (r *SQLiteMenuRepo) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menus WHERE id = ? AND deleted_at IS NULL`
	row := r.db.QueryRowContext(ctx, query, id)
	m, err := scanMenu(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("menu %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning menu: %w", err)
	}
	return m, nil
}

// ListAll returns every live menu ordered by sort_order, the order the tree
// assembler preserves within each scope.
func (r *SQLiteMenuRepo) ListAll(ctx context.Context) ([]*domain.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menus
		WHERE deleted_at IS NULL
		ORDER BY sort_order, created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing menus: %w", err)
	}
	defer rows.Close()
	return scanMenus(rows)
}

func (r *SQLiteMenuRepo) ListByScope(ctx context.Context, parentID *string) ([]*domain.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menus
		WHERE parent_id IS ? AND deleted_at IS NULL
		ORDER BY sort_order, created_at, id`
	rows, err := r.db.QueryContext(ctx, query, optionalText(parentID))
	if err != nil {
		return nil, fmt.Errorf("listing menu scope: %w", err)
	}
	defer rows.Close()
	return scanMenus(rows)
}

// ListScopes returns every parent reference that has at least one live
// child. A nil entry stands for the root scope.
func (r *SQLiteMenuRepo) ListScopes(ctx context.Context) ([]*string, error) {
	query := `SELECT DISTINCT parent_id FROM menus WHERE deleted_at IS NULL ORDER BY parent_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing menu scopes: %w", err)
	}
	defer rows.Close()

	var scopes []*string
	for rows.Next() {
		var parentID sql.NullString
		if err := rows.Scan(&parentID); err != nil {
			return nil, fmt.Errorf("scanning menu scope: %w", err)
		}
		scopes = append(scopes, textPtr(parentID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu scopes: %w", err)
	}
	return scopes, nil
}

// Ancestors returns the ids on the path from id's parent up to its root,
// nearest first.
func (r *SQLiteMenuRepo) Ancestors(ctx context.Context, id string) ([]string, error) {
	query := `WITH RECURSIVE chain(id, parent_id, depth) AS (
			SELECT id, parent_id, 0 FROM menus WHERE id = ?
			UNION ALL
			SELECT m.id, m.parent_id, c.depth + 1
			FROM menus m JOIN chain c ON m.id = c.parent_id
		)
		SELECT id FROM chain WHERE depth > 0 ORDER BY depth`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("listing menu ancestors: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var ancestor string
		if err := rows.Scan(&ancestor); err != nil {
			return nil, fmt.Errorf("scanning menu ancestor: %w", err)
		}
		ids = append(ids, ancestor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu ancestors: %w", err)
	}
	return ids, nil
}

// MaxSortOrder returns the highest sort_order in the scope; ok is false
// when the scope has no live rows.
func (r *SQLiteMenuRepo) MaxSortOrder(ctx context.Context, parentID *string) (int, bool, error) {
	query := `SELECT MAX(sort_order) FROM menus WHERE parent_id IS ? AND deleted_at IS NULL`
	var maxOrder sql.NullInt64
	if err := r.db.QueryRowContext(ctx, query, optionalText(parentID)).Scan(&maxOrder); err != nil {
		return 0, false, fmt.Errorf("computing max sort order: %w", err)
	}
	if !maxOrder.Valid {
		return 0, false, nil
	}
	return int(maxOrder.Int64), true, nil
}

func (r *SQLiteMenuRepo) CountScope(ctx context.Context, parentID *string) (int, error) {
	query := `SELECT COUNT(*) FROM menus WHERE parent_id IS ? AND deleted_at IS NULL`
	var n int
	if err := r.db.QueryRowContext(ctx, query, optionalText(parentID)).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting menu scope: %w", err)
	}
	return n, nil
}

func (r *SQLiteMenuRepo) UpdateFields(ctx context.Context, id string, fields MenuFields, at time.Time) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if fields.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *fields.Name)
	}
	if fields.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *fields.URL)
	}
	if fields.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, *fields.Icon)
	}
	if fields.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, sqlBool(*fields.IsActive))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, stamp(at), id)

	query := `UPDATE menus SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND deleted_at IS NULL`
	return r.execOne(ctx, id, "updating menu fields", query, args...)
}

func (r *SQLiteMenuRepo) SetPosition(ctx context.Context, id string, parentID *string, sortOrder int, at time.Time) error {
	query := `UPDATE menus SET parent_id = ?, sort_order = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`
	return r.execOne(ctx, id, "updating menu position", query,
		optionalText(parentID), sortOrder, stamp(at), id)
}

// resequenceBatch bounds the ids rewritten per statement. Each id binds three
// parameters, which keeps a batch well under SQLite's variable limit.
const resequenceBatch = 500

// Resequence assigns sort_order = index to every id, in batches of
// resequenceBatch ids per statement. Run it inside a transaction so a scope
// is never observed half rewritten.
func (r *SQLiteMenuRepo) Resequence(ctx context.Context, orderedIDs []string, at time.Time) error {
	ts := stamp(at)
	for start := 0; start < len(orderedIDs); start += resequenceBatch {
		end := min(start+resequenceBatch, len(orderedIDs))
		if err := r.resequenceRange(ctx, orderedIDs[start:end], start, ts); err != nil {
			return err
		}
	}
	return nil
}

// resequenceRange gives ids[i] the sort order offset+i.
func (r *SQLiteMenuRepo) resequenceRange(ctx context.Context, ids []string, offset int, ts string) error {
	var b strings.Builder
	args := make([]any, 0, len(ids)*3+1)
	b.WriteString(`UPDATE menus SET sort_order = CASE id`)
	for i, id := range ids {
		b.WriteString(` WHEN ? THEN ?`)
		args = append(args, id, offset+i)
	}
	b.WriteString(` END, updated_at = ? WHERE deleted_at IS NULL AND id IN (`)
	args = append(args, ts)
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("?")
		args = append(args, id)
	}
	b.WriteString(")")

	res, err := r.db.ExecContext(ctx, b.String(), args...)
	if err != nil {
		return fmt.Errorf("resequencing menus: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resequencing menus: %w", err)
	}
	if int(n) != len(ids) {
		return fmt.Errorf("resequencing menus: updated %d of %d rows: %w", n, len(ids), ErrNotFound)
	}
	return nil
}

// BulkShift adds delta to sort_order for every live row of the scope in the
// selected range, except excludeID. It returns the number of rows moved.
func (r *SQLiteMenuRepo) BulkShift(ctx context.Context, parentID *string, rng ShiftRange, pivot, delta int, excludeID string, at time.Time) (int64, error) {
	op := ">"
	if rng == ShiftAtOrAbove {
		op = ">="
	}
	query := `UPDATE menus SET sort_order = sort_order + ?, updated_at = ?
		WHERE parent_id IS ? AND deleted_at IS NULL AND sort_order ` + op + ` ? AND id != ?`
	res, err := r.db.ExecContext(ctx, query,
		delta, stamp(at), optionalText(parentID), pivot, excludeID)
	if err != nil {
		return 0, fmt.Errorf("shifting menu scope: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("shifting menu scope: %w", err)
	}
	return n, nil
}

func (r *SQLiteMenuRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE menus SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`
	ts := stamp(at)
	return r.execOne(ctx, id, "soft-deleting menu", query, ts, ts, id)
}

// execOne runs a single-row update and reports ErrNotFound when no live row matched.
func (r *SQLiteMenuRepo) execOne(ctx context.Context, id, action, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	if n == 0 {
		return fmt.Errorf("menu %s: %w", id, ErrNotFound)
	}
	return nil
}
