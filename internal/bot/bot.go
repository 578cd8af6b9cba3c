package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/letsssgooo/aiQuizBot/internal/client"
	"github.com/letsssgooo/aiQuizBot/internal/events/fetcher"
	"github.com/letsssgooo/aiQuizBot/internal/events/sender"
	"github.com/letsssgooo/aiQuizBot/internal/llm"
	"github.com/letsssgooo/aiQuizBot/internal/quiz"
)

const (
	defaultWorkers     = 4
	defaultPollTimeout = 30 * time.Second
	fetchRetryDelay    = 3 * time.Second
)

// Options — необязательные параметры бота.
type Options struct {
	// PollTimeout — таймаут long polling.
	PollTimeout time.Duration
	// Workers ограничивает число одновременно генерируемых квизов.
	Workers int
	// Username бота без @. Если задан, команды вида /quiz@other_bot игнорируются.
	Username string
}

// Bot реализует Telegram бота для квизов.
type Bot struct {
	fetcher  fetcher.Fetcher
	sender   sender.Sender
	quizzes  *quiz.Service
	resolver *quiz.Resolver

	jobs        *errgroup.Group
	pollTimeout int
	username    string
}

// NewBot создаёт нового бота.
func NewBot(
	f fetcher.Fetcher,
	s sender.Sender,
	quizzes *quiz.Service,
	resolver *quiz.Resolver,
	opts Options,
) *Bot {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = defaultPollTimeout
	}

	jobs := &errgroup.Group{}
	jobs.SetLimit(opts.Workers)

	return &Bot{
		fetcher:     f,
		sender:      s,
		quizzes:     quizzes,
		resolver:    resolver,
		jobs:        jobs,
		pollTimeout: int(opts.PollTimeout / time.Second),
		username:    strings.TrimPrefix(opts.Username, "@"),
	}
}

// Run запускает бота (long polling) до отмены ctx.
// Перед выходом дожидается начатых квизов.
func (b *Bot) Run(ctx context.Context) error {
	slog.Info("bot started", "mode", b.quizzes.Mode())
	defer func() {
		_ = b.jobs.Wait()
		slog.Info("bot stopped")
	}()

	for {
		updates, err := b.fetcher.Fetch(ctx, b.pollTimeout)
		if ctx.Err() != nil {
			return nil
		}

		if err != nil {
			slog.Error("failed to fetch updates", "err", err)

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(fetchRetryDelay):
			}
			continue
		}

		for _, update := range updates {
			if err = b.HandleUpdate(ctx, update); err != nil {
				slog.Error("failed to handle update", "update_id", update.UpdateID, "err", err)
			}
		}
	}
}

// HandleUpdate обрабатывает одно обновление.
func (b *Bot) HandleUpdate(ctx context.Context, update client.Update) error {
	switch {
	case update.Message != nil:
		return b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		return b.handleCallback(ctx, update.CallbackQuery)
	case update.PollAnswer != nil:
		return b.handlePollAnswer(ctx, update.PollAnswer)
	default:
		return nil
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *client.Message) error {
	if msg.Chat == nil {
		return nil
	}

	command, ok := b.parseCommand(msg.Text)
	if !ok {
		return nil
	}

	p := newReplyPresenter(b.sender, msg)

	switch command {
	case "start":
		return p.SendText(ctx, msgWelcome)
	case "quiz":
		return b.dispatch(ctx, p)
	default:
		return p.SendText(ctx, msgHelp)
	}
}

// parseCommand возвращает имя команды без "/" и упоминания бота.
func (b *Bot) parseCommand(text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", false
	}

	command, mention, found := strings.Cut(fields[0][1:], "@")
	if found && b.username != "" && !strings.EqualFold(mention, b.username) {
		return "", false
	}

	return strings.ToLower(command), true
}

// dispatch ставит генерацию квиза в пул, не блокируя цикл обновлений.
func (b *Bot) dispatch(ctx context.Context, p quiz.Presenter) error {
	started := b.jobs.TryGo(func() error {
		b.runQuiz(ctx, p)
		return nil
	})
	if started {
		return nil
	}

	slog.Warn("quiz workers are busy", "chat_id", p.ChatID())
	return p.SendText(ctx, msgBusy)
}

// runQuiz генерирует, разбирает и показывает один квиз.
// Пользователь получает сообщение о любой неудаче.
func (b *Bot) runQuiz(ctx context.Context, p quiz.Presenter) {
	log := slog.With("quiz_id", uuid.NewString(), "chat_id", p.ChatID())

	q, raw, err := b.quizzes.Generate(ctx)
	switch {
	case errors.Is(err, quiz.ErrUnparsable):
		log.Warn("could not parse quiz completion", "raw", raw)
		b.notify(ctx, log, p, msgUnparsable)
		return
	case errors.Is(err, llm.ErrCompletionUnavailable):
		log.Error("failed to generate quiz", "err", err)
		b.notify(ctx, log, p, msgGenerationFailed)
		return
	case err != nil:
		log.Error("quiz generation aborted", "err", err)
		if ctx.Err() == nil {
			b.notify(ctx, log, p, msgGenerationFailed)
		}
		return
	}

	key, err := b.quizzes.Present(ctx, q, p)
	if err != nil {
		if key == "" {
			log.Error("failed to present quiz", "err", err)
			b.notify(ctx, log, p, msgSendFailed)
			return
		}
		// квиз уже в чате, но ответ на него не найдёт объяснения
		log.Warn("quiz presented without session", "key", key, "err", err)
		return
	}

	log.Info("quiz presented", "key", key, "mode", b.quizzes.Mode())
}

func (b *Bot) notify(ctx context.Context, log *slog.Logger, p quiz.Presenter, text string) {
	if err := p.SendText(ctx, text); err != nil {
		log.Error("failed to notify chat", "err", err)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cq *client.CallbackQuery) error {
	selected, correct, ok := quiz.ParseCallbackData(cq.Data)
	if !ok || cq.Message == nil || cq.Message.Chat == nil {
		return b.sender.Ack(ctx, cq.ID, "")
	}

	chatID := cq.Message.Chat.ID
	messageID := cq.Message.MessageID
	name := userName(cq.From)

	verdict := b.resolver.ResolveButton(ctx, quiz.ButtonAnswer{
		Key:      quiz.ButtonSessionKey(chatID, messageID),
		Selected: selected,
		Correct:  correct,
	})

	if err := b.sender.Ack(ctx, cq.ID, ""); err != nil {
		slog.Warn("failed to answer callback", "callback_id", cq.ID, "err", err)
	}

	text := fmt.Sprintf("%s\n\n%s: %s", cq.Message.Text, name, verdict)
	if err := b.sender.Edit(ctx, chatID, messageID, text, nil); err != nil {
		return fmt.Errorf("failed to show verdict: %w", err)
	}

	return nil
}

func (b *Bot) handlePollAnswer(ctx context.Context, answer *client.PollAnswer) error {
	verdict, ok := b.resolver.ResolvePoll(ctx, quiz.PollAnswer{
		PollID:    answer.PollID,
		UserName:  userName(answer.User),
		OptionIDs: answer.OptionIDs,
	})
	if !ok {
		slog.Debug("poll answer ignored", "poll_id", answer.PollID)
		return nil
	}

	if _, err := b.sender.Message(ctx, verdict.ChatID, verdict.Text, nil); err != nil {
		return fmt.Errorf("failed to send explanation: %w", err)
	}

	return nil
}

func userName(u *client.User) string {
	switch {
	case u == nil:
		return defaultUserName
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	default:
		return defaultUserName
	}
}
