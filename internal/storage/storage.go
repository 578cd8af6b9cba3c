// Package storage содержит реализации quiz.SessionStore.
package storage

import (
	"time"

	"github.com/letsssgooo/aiQuizBot/internal/quiz"
)

// Значения по умолчанию для хранилища в памяти.
const (
	DefaultTTL      = time.Hour
	DefaultCapacity = 10000
)

var _ quiz.SessionStore = (*MemorySessionStore)(nil)
