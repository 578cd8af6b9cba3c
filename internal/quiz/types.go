package quiz

import (
	"context"
	"errors"
	"time"
)

// QuestionNotFound подставляется, если в ответе модели нет строки "Question:".
const QuestionNotFound = "Question not found"

// MinOptions — минимальное число вариантов, с которым квиз можно показать.
const MinOptions = 2

var (
	// ErrUnparsable — ответ модели не удалось разобрать в показываемый квиз.
	ErrUnparsable = errors.New("quiz response could not be parsed")

	// ErrSessionNotFound — по ключу корреляции нет сессии (истекла или не было).
	ErrSessionNotFound = errors.New("quiz session not found")
)

// AnswerLetters — допустимые буквы вариантов ответа.
var AnswerLetters = []string{"A", "B", "C", "D"}

// LetterToIndex преобразует букву в индекс (A=0, B=1, ...).
func LetterToIndex(letter string) (int, bool) {
	for i, l := range AnswerLetters {
		if l == letter {
			return i, true
		}
	}

	return -1, false
}

// IndexToLetter преобразует индекс в букву (0=A, 1=B, ...).
func IndexToLetter(idx int) string {
	if idx >= 0 && idx < len(AnswerLetters) {
		return AnswerLetters[idx]
	}

	return ""
}

// ParsedQuiz — результат разбора ответа модели.
// CorrectIndex равен -1, если правильный ответ определить не удалось.
type ParsedQuiz struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	Letters      []string `json:"letters"` // буква каждого варианта в порядке Options
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// Valid сообщает, можно ли показывать квиз пользователю.
// Telegram не принимает пустые варианты, поэтому такой квиз невалиден.
func (p ParsedQuiz) Valid() bool {
	if len(p.Options) < MinOptions ||
		len(p.Letters) != len(p.Options) ||
		p.CorrectIndex < 0 ||
		p.CorrectIndex >= len(p.Options) {
		return false
	}

	for _, option := range p.Options {
		if option == "" {
			return false
		}
	}

	return true
}

// CorrectLetter возвращает букву правильного варианта или "".
func (p ParsedQuiz) CorrectLetter() string {
	if p.CorrectIndex < 0 || p.CorrectIndex >= len(p.Letters) {
		return ""
	}

	return p.Letters[p.CorrectIndex]
}

// Session связывает показанный квиз с объяснением и чатом.
type Session struct {
	Key           string    `json:"key"`
	Explanation   string    `json:"explanation"`
	ChatID        int64     `json:"chat_id"`
	CorrectLetter string    `json:"correct_letter"`
	CreatedAt     time.Time `json:"created_at"`
}

// SessionStore хранит сессии квизов по ключу корреляции.
type SessionStore interface {
	// Save сохраняет сессию под session.Key.
	Save(ctx context.Context, session Session) error

	// Get возвращает сессию или ErrSessionNotFound.
	Get(ctx context.Context, key string) (Session, error)
}

// PollAnswer — голос пользователя в квиз-опросе.
type PollAnswer struct {
	PollID    string
	UserName  string
	OptionIDs []int
}

// ButtonAnswer — нажатие inline кнопки с вариантом ответа.
type ButtonAnswer struct {
	Key      string
	Selected string
	Correct  string
}

// Verdict — сообщение, которое нужно отправить в чат ChatID.
type Verdict struct {
	ChatID int64
	Text   string
}
