package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is the distinguishable "absent" result for single-row
	// lookups; callers decide whether that is an error at all.
	ErrNotFound = errors.New("record not found")

	// ErrConflict reports a uniqueness violation (duplicate id, invite code,
	// or membership pair).
	ErrConflict = errors.New("record already exists")

	// ErrTimeout reports that the store did not answer within the caller's
	// deadline. The transaction is rolled back by the store, never left open.
	ErrTimeout = errors.New("storage timeout")

	// ErrInvalidRole rejects a membership write whose role falls outside
	// the closed set before it reaches the store.
	ErrInvalidRole = errors.New("invalid membership role")
)

// Translate maps gorm and context errors onto the repository sentinels so
// upper layers never import gorm to branch on failures. Already-translated
// errors pass through unchanged; unrecognized errors are wrapped and
// treated as generic storage failures.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrTimeout),
		errors.Is(err, ErrInvalidRole):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	default:
		return fmt.Errorf("storage: %w", err)
	}
}
