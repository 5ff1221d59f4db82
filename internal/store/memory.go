package store

import (
	"context"
	"sort"
	"sync"

	"github.com/airworthy/adcheck/internal/rules"
)

// MemoryStore is an in-memory implementation of the Store interface.
// It uses a map for storage and RWMutex for thread-safe concurrent access.
// This implementation is suitable for development, testing, or
// single-instance deployments.
type MemoryStore struct {
	mu         sync.RWMutex
	directives map[string]rules.Directive // directive ID -> Directive
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		directives: make(map[string]rules.Directive),
	}
}

// ListDirectives retrieves all stored directives, ordered by ID.
func (m *MemoryStore) ListDirectives(ctx context.Context) ([]rules.Directive, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]rules.Directive, 0, len(m.directives))
	for _, d := range m.directives {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DirectiveID < result[j].DirectiveID
	})
	return result, nil
}

// GetDirective retrieves a single directive by its ID.
func (m *MemoryStore) GetDirective(ctx context.Context, id string) (*rules.Directive, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, exists := m.directives[id]
	if !exists {
		return nil, ErrNotFound
	}
	return &d, nil
}

// PutDirective creates or replaces a directive in memory.
func (m *MemoryStore) PutDirective(ctx context.Context, d rules.Directive) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.directives[d.DirectiveID] = d
	return nil
}

// DeleteDirective removes a directive from memory.
func (m *MemoryStore) DeleteDirective(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Idempotent: no error if the directive doesn't exist.
	delete(m.directives, id)
	return nil
}

// Close is a no-op for MemoryStore as there are no resources to release.
func (m *MemoryStore) Close() error {
	return nil
}
