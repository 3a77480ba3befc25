package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryDocumentStore is a map-backed DocumentStore. It backs tests and acts
// as a degraded mode when no database is configured; data does not survive a
// restart, matching how the service behaves before first persistence.
type MemoryDocumentStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{docs: make(map[string][]byte)}
}

func (s *MemoryDocumentStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	body, ok := s.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

func (s *MemoryDocumentStore) Put(_ context.Context, key string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(body))
	copy(cp, body)
	s.docs[key] = cp
	return nil
}

func (s *MemoryDocumentStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
	return nil
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemorySessionStore is a map-backed SessionStore with per-record expiry.
// Used in tests and when Redis is unreachable at startup; sessions then last
// at most until the process exits, which is an acceptable degradation for a
// single-admin console.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{entries: make(map[string]memoryEntry)}
}

func (s *MemorySessionStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.entries[key] = memoryEntry{value: value, expiresAt: exp}
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		return "", ErrNotFound
	}
	return e.value, nil
}

func (s *MemorySessionStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.entries, k)
	}
	return nil
}
