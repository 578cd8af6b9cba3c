package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Resolver формирует вердикт по ответу пользователя.
type Resolver struct {
	store SessionStore
}

// NewResolver создаёт Resolver поверх хранилища сессий.
func NewResolver(store SessionStore) *Resolver {
	return &Resolver{store: store}
}

// ResolvePoll возвращает объяснение для ответившего в квиз-опросе.
// Правильность уже показал сам Telegram, поэтому здесь только объяснение.
// ok == false, если сессии нет или голос отозван: такой ответ молча игнорируется.
func (r *Resolver) ResolvePoll(ctx context.Context, answer PollAnswer) (Verdict, bool) {
	if len(answer.OptionIDs) == 0 {
		return Verdict{}, false
	}

	session, err := r.store.Get(ctx, answer.PollID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			slog.Warn("failed to load poll session", "poll_id", answer.PollID, "err", err)
		}
		return Verdict{}, false
	}

	return Verdict{
		ChatID: session.ChatID,
		Text:   fmt.Sprintf("📖 Explanation for %s:\n%s", answer.UserName, session.Explanation),
	}, true
}

// ResolveButton сравнивает выбранную букву с правильной.
// Если сессия не найдена, вердикт выдаётся без объяснения.
func (r *Resolver) ResolveButton(ctx context.Context, answer ButtonAnswer) string {
	verdict := "Correct!"
	if answer.Selected != answer.Correct {
		verdict = fmt.Sprintf("Incorrect! The correct answer is %s.", answer.Correct)
	}

	session, err := r.store.Get(ctx, answer.Key)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			slog.Warn("failed to load button session", "key", answer.Key, "err", err)
		}
		return verdict
	}

	if session.Explanation == "" {
		return verdict
	}

	return verdict + "\n\n" + session.Explanation
}
