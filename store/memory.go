package store

import (
	"context"
	"sync"

	"github.com/m3rciful/shoplistbot/shoplist"
)

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory document store for tests and development.
// Safe for concurrent access.
type MemoryStore struct {
	mu    sync.RWMutex
	doc   *shoplist.Document
	saves int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a deep copy of the stored document, or ErrNotFound.
func (m *MemoryStore) Load(_ context.Context) (*shoplist.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.doc == nil {
		return nil, ErrNotFound
	}
	return m.doc.Clone(), nil
}

// Save stores a deep copy of the document.
func (m *MemoryStore) Save(_ context.Context, doc *shoplist.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = doc.Clone()
	m.saves++
	return nil
}

// Saves reports how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
