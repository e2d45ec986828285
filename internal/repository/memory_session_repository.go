package repository

import (
	"commission-central/internal/models"
	"context"
	"sync"
	"time"
)

// MemorySessionStore keeps sessions in process memory. Sessions untouched for
// longer than ttl are treated as abandoned: they are dropped on access and
// swept whenever a new session is created.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.ImportSession
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]models.ImportSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Create(ctx context.Context, session models.ImportSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()
	session.UpdatedAt = s.now()
	s.sessions[session.Code] = session
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, code string) (models.ImportSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lookup(code)
}

func (s *MemorySessionStore) Update(ctx context.Context, code string, fn UpdateFunc) (models.ImportSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.lookup(code)
	if err != nil {
		return models.ImportSession{}, err
	}

	next, changed := fn(current)
	if !changed {
		return current, nil
	}
	next.UpdatedAt = s.now()
	s.sessions[code] = next
	return next, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, code)
	return nil
}

// lookup must be called with mu held.
func (s *MemorySessionStore) lookup(code string) (models.ImportSession, error) {
	session, ok := s.sessions[code]
	if !ok {
		return models.ImportSession{}, ErrSessionNotFound
	}
	if s.ttl > 0 && s.now().Sub(session.UpdatedAt) > s.ttl {
		delete(s.sessions, code)
		return models.ImportSession{}, ErrSessionNotFound
	}
	return session, nil
}

// sweep drops every expired session. It must be called with mu held.
func (s *MemorySessionStore) sweep() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	for code, session := range s.sessions {
		if now.Sub(session.UpdatedAt) > s.ttl {
			delete(s.sessions, code)
		}
	}
}
