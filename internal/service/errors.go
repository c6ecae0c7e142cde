package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/menus/internal/db"
	"github.com/alexanderramin/menus/internal/domain"
	"github.com/alexanderramin/menus/internal/repository"
)

// notFoundAs rewrites a repository miss into a NotFound error naming the
// missing reference; other errors pass through.
func notFoundAs(err error, format string, args ...any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NotFoundf(format, args...)
	}
	return err
}

// publicError maps an internal error onto the kinds callers may see.
func publicError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConflict):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, db.ErrRollbackFailed):
		return fmt.Errorf("menu store needs repair: %w", domain.ErrIntegrity)
	default:
		return fmt.Errorf("menu store unavailable: %w", domain.ErrStore)
	}
}
