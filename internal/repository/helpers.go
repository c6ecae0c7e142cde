package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/menus/internal/domain"
)

// ErrNotFound is wrapped by every lookup or single-row write that finds no
// live menu. Soft-deleted rows count as missing.
var ErrNotFound = domain.ErrNotFound

// Timestamps are stored as UTC RFC3339 text with nanoseconds so they sort
// lexically and round-trip exactly.
const stampLayout = time.RFC3339Nano

func stamp(t time.Time) string {
	return t.UTC().Format(stampLayout)
}

func parseStamp(column, v string) (time.Time, error) {
	t, err := time.Parse(stampLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s %q: %w", column, v, err)
	}
	return t, nil
}

// optionalText binds a nil pointer as SQL NULL.
func optionalText(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func textPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func sqlBool(b bool) int {
	if b {
		return 1
	}
	return 0
}

// rowScanner lets scanMenu read from either *sql.Row or *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMenu reads one row in menuColumns order.
func scanMenu(row rowScanner) (*domain.MenuItem, error) {
	var (
		m                    domain.MenuItem
		url, icon, parentID  sql.NullString
		deletedAt            sql.NullString
		createdAt, updatedAt string
		isActive             int
	)
	if err := row.Scan(
		&m.ID, &m.Name, &url, &icon, &parentID, &m.SortOrder, &isActive,
		&createdAt, &updatedAt, &deletedAt,
	); err != nil {
		return nil, err
	}

	m.URL, m.Icon, m.ParentID = textPtr(url), textPtr(icon), textPtr(parentID)
	m.IsActive = isActive != 0

	var err error
	if m.CreatedAt, err = parseStamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseStamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		at, err := parseStamp("deleted_at", deletedAt.String)
		if err != nil {
			return nil, err
		}
		m.DeletedAt = &at
	}
	return &m, nil
}

func scanMenus(rows *sql.Rows) ([]*domain.MenuItem, error) {
	var menus []*domain.MenuItem
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning menu row: %w", err)
		}
		menus = append(menus, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menus: %w", err)
	}
	return menus, nil
}
