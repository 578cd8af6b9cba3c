package client

import (
	"context"
	"time"
)

// Update представляет обновление от Telegram.
type Update struct {
	UpdateID      int            `json:"update_id"`
	Message       *Message       `json:"message"`
	CallbackQuery *CallbackQuery `json:"callback_query"`
	PollAnswer    *PollAnswer    `json:"poll_answer"`
}

// Message представляет сообщение.
type Message struct {
	MessageID int    `json:"message_id"`
	From      *User  `json:"from"`
	Chat      *Chat  `json:"chat"`
	Text      string `json:"text"`
	Poll      *Poll  `json:"poll"`
}

// User представляет пользователя Telegram.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// Chat представляет чат.
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// Poll представляет опрос. Для квиза заполнен CorrectOptionID.
type Poll struct {
	ID              string       `json:"id"`
	Question        string       `json:"question"`
	Options         []PollOption `json:"options"`
	Type            string       `json:"type"`
	IsAnonymous     bool         `json:"is_anonymous"`
	CorrectOptionID *int         `json:"correct_option_id,omitempty"`
}

// PollOption — вариант ответа в опросе.
type PollOption struct {
	Text       string `json:"text"`
	VoterCount int    `json:"voter_count"`
}

// PollAnswer приходит, когда пользователь голосует в неанонимном опросе.
// Пустой OptionIDs означает, что голос отозван.
type PollAnswer struct {
	PollID    string `json:"poll_id"`
	User      *User  `json:"user"`
	OptionIDs []int  `json:"option_ids"`
}

// CallbackQuery представляет callback от inline кнопки.
type CallbackQuery struct {
	ID      string   `json:"id"`
	From    *User    `json:"from"`
	Message *Message `json:"message"`
	Data    string   `json:"data"`
}

// InlineKeyboardMarkup представляет inline клавиатуру.
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// InlineKeyboardButton представляет кнопку inline клавиатуры.
type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
}

// SendOptions содержит опции отправки сообщения.
type SendOptions struct {
	ParseMode        string                `json:"parse_mode,omitempty"`
	ReplyMarkup      *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	ReplyToMessageID int                   `json:"reply_to_message_id,omitempty"`
}

// PollOptions описывает квиз-опрос для sendPoll.
type PollOptions struct {
	Question         string
	Options          []string
	CorrectOptionID  int
	IsAnonymous      bool
	ReplyToMessageID int
}

// Client определяет интерфейс Telegram клиента.
type Client interface {
	// SendMessage отправляет сообщение.
	SendMessage(ctx context.Context, chatID int64, text string, opts *SendOptions) (*Message, error)

	// SendPoll отправляет квиз-опрос. У возвращённого сообщения заполнен Poll.
	SendPoll(ctx context.Context, chatID int64, poll PollOptions) (*Message, error)

	// EditMessage редактирует сообщение.
	EditMessage(ctx context.Context, chatID int64, messageID int, text string, opts *SendOptions) error

	// AnswerCallback отвечает на callback query.
	AnswerCallback(ctx context.Context, callbackID string, text string) error

	// GetUpdates получает обновления (long polling).
	GetUpdates(ctx context.Context, offset int, timeout int) ([]Update, error)
}

// Таймауты
const (
	timeoutSend = 5 * time.Second

	// запас сверх long polling таймаута, чтобы сервер успел ответить
	pollingGrace = 10 * time.Second
)

// AllowedUpdates — типы обновлений, которые запрашивает бот.
var AllowedUpdates = []string{"message", "callback_query", "poll_answer"}
