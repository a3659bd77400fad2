// Package memory is the in-process session store, used in development and
// tests. Nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
)

// SessionStore keeps the persisted keys in a map.
type SessionStore struct {
	mu     sync.Mutex
	values map[string]string
	writes map[string]int
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		values: make(map[string]string),
		writes: make(map[string]int),
	}
}

func (s *SessionStore) Load(_ context.Context) (domain.PersistedSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.PersistedFromFields(s.values), nil
}

func (s *SessionStore) Save(_ context.Context, p domain.PersistedSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range p.Fields() {
		s.set(k, v)
	}
	return nil
}

func (s *SessionStore) SaveActivity(_ context.Context, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(domain.KeyLastActivity, domain.FormatActivity(at))
	return nil
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.values)
	return nil
}

func (s *SessionStore) Ping(_ context.Context) error { return nil }

// Get returns the raw value of key and whether it is present.
func (s *SessionStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Writes returns how many times key has been written.
func (s *SessionStore) Writes(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[key]
}

func (s *SessionStore) set(key, value string) {
	s.writes[key]++
	if value == "" {
		delete(s.values, key)
		return
	}
	s.values[key] = value
}
