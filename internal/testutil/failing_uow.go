package testutil

import (
	"context"
	"database/sql"
	"sync"

	"github.com/alexanderramin/menus/internal/db"
)

// FailOnNthExecUoW runs the callback in a real transaction but makes write
// number FailOn (1-based) return Err instead of touching the store. Reads are
// never counted. Use it to prove a multi-step reshuffle leaves no partial
// writes behind.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error

	mu     sync.Mutex
	failed string
}

// FailedQuery reports the statement that was refused, or "" if the injected
// failure never fired.
func (u *FailOnNthExecUoW) FailedQuery() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.failed
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &countingTx{DBTX: tx, owner: u})
	})
}

type countingTx struct {
	db.DBTX
	owner *FailOnNthExecUoW
	execs int
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.execs++
	if c.execs == c.owner.FailOn {
		c.owner.mu.Lock()
		c.owner.failed = query
		c.owner.mu.Unlock()
		return nil, c.owner.Err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
