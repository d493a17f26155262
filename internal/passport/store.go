package passport

import (
	"context"
	"sync"
)

// Store persists Progress keyed by passport id.
// Implementations must be safe for concurrent use by multiple sessions.
type Store interface {
	// Load returns the stored progress and true, or (nil, false, nil) when the
	// passport has never been saved.
	Load(ctx context.Context, passportID string) (Progress, bool, error)
	// Save durably replaces the stored progress before returning.
	Save(ctx context.Context, passportID string, p Progress) error
}

// MemoryStore is an in-process Store. Entries are kept in their serialized
// form so that reads never alias a controller's live map.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, passportID string) (Progress, bool, error) {
	s.mu.RLock()
	data, ok := s.entries[passportID]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	p, err := DecodeProgress(data)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, passportID string, p Progress) error {
	data, err := EncodeProgress(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.entries[passportID] = data
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored passports.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
