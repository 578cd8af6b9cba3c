package bot

import (
	"context"
	"log/slog"
	"time"
)

// RunScheduled отправляет квиз в chatID сразу и затем каждые interval до отмены ctx.
// Квизы идут мимо пула воркеров: рассылка не должна получать ответ "занят".
func (b *Bot) RunScheduled(ctx context.Context, chatID int64, interval time.Duration) error {
	slog.Info("periodic quizzes enabled", "chat_id", chatID, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p := newScheduledPresenter(b.sender, chatID)

	for {
		b.runQuiz(ctx, p)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
