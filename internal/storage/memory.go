package storage

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/letsssgooo/aiQuizBot/internal/quiz"
)

// MemorySessionStore хранит сессии в LRU с истечением по времени.
// Самые старые сессии вытесняются при переполнении.
type MemorySessionStore struct {
	cache *expirable.LRU[string, quiz.Session]
}

// NewMemorySessionStore создаёт хранилище на capacity сессий, живущих ttl.
func NewMemorySessionStore(capacity int, ttl time.Duration) *MemorySessionStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &MemorySessionStore{
		cache: expirable.NewLRU[string, quiz.Session](capacity, nil, ttl),
	}
}

// Save сохраняет сессию, перезаписывая сессию с тем же ключом.
func (s *MemorySessionStore) Save(_ context.Context, session quiz.Session) error {
	s.cache.Add(session.Key, session)
	return nil
}

// Get возвращает сессию или quiz.ErrSessionNotFound.
func (s *MemorySessionStore) Get(_ context.Context, key string) (quiz.Session, error) {
	session, ok := s.cache.Get(key)
	if !ok {
		return quiz.Session{}, quiz.ErrSessionNotFound
	}
	return session, nil
}

// Len возвращает число живых сессий.
func (s *MemorySessionStore) Len() int {
	return s.cache.Len()
}
