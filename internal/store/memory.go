package store

import (
	"context"
	"sort"
	"sync"

	"github.com/kozaktomas/face-vault/internal/faceprint"
)

// MemoryStore is the default, volatile TemplateStore. Templates live for
// the duration of the process only.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[string]faceprint.Faceprints
}

// NewMemoryStore creates an empty in-memory template store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		templates: make(map[string]faceprint.Faceprints),
	}
}

// Upsert creates or replaces the template for a user. The record is stored
// by value, so callers never observe a half-written entry.
func (s *MemoryStore) Upsert(ctx context.Context, userID string, fp faceprint.Faceprints) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[userID] = fp
	return nil
}

// Lookup returns a copy of the stored template, or nil if absent.
func (s *MemoryStore) Lookup(ctx context.Context, userID string) (*faceprint.Faceprints, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fp, ok := s.templates[userID]
	if !ok {
		return nil, nil
	}
	return &fp, nil
}

// List returns all user ids sorted lexicographically.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.templates))
	for id := range s.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Remove deletes one user's template.
func (s *MemoryStore) Remove(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.templates[userID]; !ok {
		return ErrUserNotFound
	}
	delete(s.templates, userID)
	return nil
}

// Clear removes every template.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = make(map[string]faceprint.Faceprints)
	return nil
}

// Count returns the number of enrolled users.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.templates), nil
}
