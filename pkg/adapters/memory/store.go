package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/arbor/pkg/domain"
)

// Store implements ports.DocumentStore in memory.
// Documents are kept encoded, so callers never share state with the store.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// NewFromDocuments creates a store seeded with raw JSON documents.
// Every document is parsed once so a malformed seed fails early.
func NewFromDocuments(docs map[string]string) (*Store, error) {
	s := NewStore()
	for key, raw := range docs {
		if _, err := domain.ParseWorkspace([]byte(raw)); err != nil {
			return nil, fmt.Errorf("document %q: %w", key, err)
		}
		s.data[key] = []byte(raw)
	}
	return s, nil
}

// Save persists the document in memory.
func (s *Store) Save(ctx context.Context, key string, ws *domain.Workspace) error {
	data, err := domain.EncodeBytes(ws)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = data
	return nil
}

// Load decodes the stored document.
func (s *Store) Load(ctx context.Context, key string) (*domain.Workspace, error) {
	s.mu.RLock()
	data, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrDocumentNotFound, key)
	}
	return domain.ParseWorkspace(data)
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
