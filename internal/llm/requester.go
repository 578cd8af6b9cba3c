package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrCompletionUnavailable — модель не ответила ни с одной попытки.
var ErrCompletionUnavailable = errors.New("completion unavailable")

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
)

// Completer отправляет один запрос к языковой модели.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature *float32) (string, error)
}

// RequesterConfig задаёт запрос и политику повторов.
type RequesterConfig struct {
	Prompt      string
	Temperature *float32
	MaxAttempts int
	BaseDelay   time.Duration
}

// Requester запрашивает текст квиза с повторами и экспоненциальной паузой.
type Requester struct {
	completer Completer
	cfg       RequesterConfig
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewRequester создаёт Requester; нулевые поля конфига заменяются значениями по умолчанию.
func NewRequester(completer Completer, cfg RequesterConfig) *Requester {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaultBaseDelay
	}

	return &Requester{
		completer: completer,
		cfg:       cfg,
		sleep:     sleepContext,
	}
}

// RequestQuizText возвращает сырой ответ модели.
// После попытки n (с нуля) ждёт BaseDelay * 2^n, если попытки ещё остались.
func (r *Requester) RequestQuizText(ctx context.Context) (string, error) {
	var lastErr error

	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		text, err := r.completer.Complete(ctx, r.cfg.Prompt, r.cfg.Temperature)
		if err == nil {
			return text, nil
		}

		lastErr = err
		slog.Error("failed to request quiz completion", "attempt", attempt+1, "err", err)

		if attempt == r.cfg.MaxAttempts-1 {
			break
		}

		if err = r.sleep(ctx, r.cfg.BaseDelay<<attempt); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("%w after %d attempts: %w", ErrCompletionUnavailable, r.cfg.MaxAttempts, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
