package store

import (
	"context"
	"errors"

	"github.com/airworthy/adcheck/internal/rules"
)

// ErrNotFound is returned when no directive exists for the requested ID.
var ErrNotFound = errors.New("directive not found")

// Store defines the interface for directive persistence operations.
// Implementations must be thread-safe and support concurrent access.
type Store interface {
	// ListDirectives retrieves all stored directives, ordered by
	// directive ID for deterministic output. Returns an empty slice when
	// the store is empty.
	ListDirectives(ctx context.Context) ([]rules.Directive, error)

	// GetDirective retrieves a single directive by its ID.
	// Returns ErrNotFound when it does not exist.
	GetDirective(ctx context.Context, id string) (*rules.Directive, error)

	// PutDirective creates or replaces a directive. Directives are
	// immutable once extracted; replacement only happens when the same
	// source document is re-extracted.
	PutDirective(ctx context.Context, d rules.Directive) error

	// DeleteDirective removes a directive by ID.
	// Returns no error if it doesn't exist (idempotent).
	DeleteDirective(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	// After Close is called, the store should not be used.
	Close() error
}
