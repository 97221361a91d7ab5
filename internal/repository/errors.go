package repository

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is wrapped by every lookup that matches no row.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an insert violates a uniqueness rule,
	// such as a second application for the same job.
	ErrConflict = errors.New("already exists")
)

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
