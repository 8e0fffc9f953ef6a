package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/backend"
)

var ErrNotFound = errors.New("session not found")

// Record is what a Storage keeps per session id.
type Record struct {
	Token string
	User  *backend.User
	UI    UIState
}

type Storage interface {
	Get(ctx context.Context, id string) (Record, error)
	Put(ctx context.Context, id string, r Record, ttl time.Duration) error
	// SaveUI replaces the UI state without touching token, user or expiry.
	SaveUI(ctx context.Context, id string, ui UIState) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	rec     Record
	expires time.Time
}

// MemoryStorage is the single-process driver used in development and tests.
type MemoryStorage struct {
	mu  sync.Mutex
	m   map[string]memoryEntry
	now func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{m: map[string]memoryEntry{}, now: time.Now}
}

func (s *MemoryStorage) Get(_ context.Context, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.m, id)
		return Record{}, ErrNotFound
	}
	return e.rec, nil
}

func (s *MemoryStorage) Put(_ context.Context, id string, r Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = memoryEntry{rec: r, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStorage) SaveUI(_ context.Context, id string, ui UIState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[id]
	if !ok {
		return ErrNotFound
	}
	e.rec.UI = ui
	s.m[id] = e
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}

func (s *MemoryStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
