package catalog

import (
	"sync"

	"github.com/dmcosta/shelfmark/internal/models"
)

// MemStore is an in-memory Persister. It backs tests and any caller that
// wants catalog semantics without a database.
type MemStore struct {
	mu       sync.Mutex
	catalogs map[string][]models.Entry
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{catalogs: make(map[string][]models.Entry)}
}

// LoadCatalog returns a copy of the stored catalog, or an empty one for an
// unknown scope.
func (m *MemStore) LoadCatalog(scope string) ([]models.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := m.catalogs[scope]
	entries := make([]models.Entry, len(stored))
	for i, e := range stored {
		entries[i] = e.Clone()
	}
	return entries, nil
}

// SaveCatalog replaces the stored catalog for a scope.
func (m *MemStore) SaveCatalog(scope string, entries []models.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.Entry, len(entries))
	for i, e := range entries {
		copied[i] = e.Clone()
	}
	m.catalogs[scope] = copied
	return nil
}
