// Package redis хранит сессии квизов в Redis, чтобы они переживали рестарт бота.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/letsssgooo/aiQuizBot/internal/quiz"
)

const (
	keyPrefix      = "quizbot:session:"
	connectTimeout = 5 * time.Second
)

// Config — параметры подключения к Redis.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// SessionStore реализует quiz.SessionStore поверх Redis.
type SessionStore struct {
	client *goredis.Client
	ttl    time.Duration
}

var _ quiz.SessionStore = (*SessionStore)(nil)

// NewSessionStore подключается к Redis и проверяет соединение.
func NewSessionStore(ctx context.Context, cfg Config) (*SessionStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return newSessionStore(client, cfg.TTL), nil
}

func newSessionStore(client *goredis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
	}
}

// Save сохраняет сессию на время TTL.
func (s *SessionStore) Save(ctx context.Context, session quiz.Session) error {
	value, err := encodeSession(session)
	if err != nil {
		return err
	}

	if err = s.client.Set(ctx, sessionKey(session.Key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", session.Key, err)
	}

	return nil
}

// Get возвращает сессию или quiz.ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, key string) (quiz.Session, error) {
	value, err := s.client.Get(ctx, sessionKey(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return quiz.Session{}, quiz.ErrSessionNotFound
	}
	if err != nil {
		return quiz.Session{}, fmt.Errorf("failed to get session %s: %w", key, err)
	}

	return decodeSession(value)
}

// Close закрывает соединение.
func (s *SessionStore) Close() error {
	return s.client.Close()
}

func sessionKey(key string) string {
	return keyPrefix + key
}

func encodeSession(session quiz.Session) ([]byte, error) {
	value, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session %s: %w", session.Key, err)
	}
	return value, nil
}

func decodeSession(value []byte) (quiz.Session, error) {
	var session quiz.Session
	if err := json.Unmarshal(value, &session); err != nil {
		return quiz.Session{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return session, nil
}
