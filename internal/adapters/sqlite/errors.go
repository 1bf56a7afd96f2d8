package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/example/searchops/internal/errs"
)

// wrapErr annotates a driver error with what was being attempted. Lock
// contention and deadline errors are marked transient so that callers can
// retry them.
func wrapErr(err error, format string, args ...any) error {
	if isTransient(err) {
		return errs.Transient(err, format, args...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

func isTransient(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return true
		}
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
