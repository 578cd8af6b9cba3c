package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Mode — способ показа квиза в чате.
type Mode string

const (
	// ModePoll показывает нативный квиз-опрос Telegram, ключ — id опроса.
	ModePoll Mode = "poll"
	// ModeButtons показывает вопрос с inline кнопками, ключ — чат и сообщение.
	ModeButtons Mode = "buttons"
)

// Ограничения Telegram для квиз-опросов.
const (
	maxPollQuestionLen = 300
	maxPollOptionLen   = 100
)

// Poll — квиз-опрос, готовый к отправке.
type Poll struct {
	Question     string
	Options      []string
	CorrectIndex int
}

// Button — inline кнопка с непрозрачными данными callback.
type Button struct {
	Text string
	Data string
}

// Presenter умеет показать квиз в одном конкретном чате.
// Реализуется и для ответа на команду пользователя, и для рассылки по таймеру.
type Presenter interface {
	// ChatID возвращает чат, в который уходят сообщения.
	ChatID() int64

	// SendText отправляет обычное сообщение.
	SendText(ctx context.Context, text string) error

	// SendQuizPoll отправляет квиз-опрос и возвращает id опроса.
	SendQuizPoll(ctx context.Context, poll Poll) (string, error)

	// SendButtons отправляет текст с кнопками и возвращает id сообщения.
	SendButtons(ctx context.Context, text string, buttons []Button) (int, error)
}

// Formatter превращает ParsedQuiz в сообщение и регистрирует сессию.
type Formatter struct {
	mode  Mode
	store SessionStore
	now   func() time.Time
}

// NewFormatter создаёт Formatter для режима mode.
func NewFormatter(mode Mode, store SessionStore) *Formatter {
	return &Formatter{
		mode:  mode,
		store: store,
		now:   time.Now,
	}
}

// Mode возвращает режим показа.
func (f *Formatter) Mode() Mode {
	return f.mode
}

// Present показывает квиз через p и сохраняет сессию.
// Возвращает ключ корреляции; для невалидного квиза — ErrUnparsable.
func (f *Formatter) Present(ctx context.Context, q ParsedQuiz, p Presenter) (string, error) {
	if !q.Valid() {
		return "", ErrUnparsable
	}

	var (
		key string
		err error
	)

	switch f.mode {
	case ModeButtons:
		key, err = f.presentButtons(ctx, q, p)
	default:
		key, err = f.presentPoll(ctx, q, p)
	}

	if err != nil {
		return "", err
	}

	session := Session{
		Key:           key,
		Explanation:   q.Explanation,
		ChatID:        p.ChatID(),
		CorrectLetter: q.CorrectLetter(),
		CreatedAt:     f.now(),
	}

	if err = f.store.Save(ctx, session); err != nil {
		return key, fmt.Errorf("failed to save quiz session %s: %w", key, err)
	}

	return key, nil
}

func (f *Formatter) presentPoll(ctx context.Context, q ParsedQuiz, p Presenter) (string, error) {
	options := make([]string, len(q.Options))
	for i, option := range q.Options {
		options[i] = truncate(option, maxPollOptionLen)
	}

	pollID, err := p.SendQuizPoll(ctx, Poll{
		Question:     truncate(q.Question, maxPollQuestionLen),
		Options:      options,
		CorrectIndex: q.CorrectIndex,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send quiz poll: %w", err)
	}

	return pollID, nil
}

func (f *Formatter) presentButtons(ctx context.Context, q ParsedQuiz, p Presenter) (string, error) {
	correct := q.CorrectLetter()
	buttons := make([]Button, len(q.Options))
	for i, letter := range q.Letters {
		buttons[i] = Button{
			Text: letter,
			Data: CallbackData(letter, correct),
		}
	}

	messageID, err := p.SendButtons(ctx, FormatQuestion(q), buttons)
	if err != nil {
		return "", fmt.Errorf("failed to send quiz buttons: %w", err)
	}

	return ButtonSessionKey(p.ChatID(), messageID), nil
}

// FormatQuestion собирает текст вопроса с подписанными буквами вариантами.
func FormatQuestion(q ParsedQuiz) string {
	var sb strings.Builder

	sb.WriteString("❓ ")
	sb.WriteString(q.Question)
	sb.WriteString("\n")

	for i, option := range q.Options {
		fmt.Fprintf(&sb, "\n%s) %s", q.Letters[i], option)
	}

	return sb.String()
}

// ButtonSessionKey — ключ сессии для квиза с кнопками.
func ButtonSessionKey(chatID int64, messageID int) string {
	return fmt.Sprintf("%d:%d", chatID, messageID)
}

// CallbackData кодирует выбранную и правильную буквы как "<selected>_<correct>".
func CallbackData(selected, correct string) string {
	return selected + "_" + correct
}

// ParseCallbackData разбирает данные кнопки, созданные CallbackData.
func ParseCallbackData(data string) (selected, correct string, ok bool) {
	selected, correct, found := strings.Cut(data, "_")
	if !found {
		return "", "", false
	}

	if _, ok = LetterToIndex(selected); !ok {
		return "", "", false
	}

	if _, ok = LetterToIndex(correct); !ok {
		return "", "", false
	}

	return selected, correct, true
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
