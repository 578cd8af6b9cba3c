package sender

import (
	"context"

	"github.com/letsssgooo/aiQuizBot/internal/client"
)

// Sender определяет основной интерфейс для отправки сообщений.
type Sender interface {
	// Message отправляет текстовое сообщение.
	Message(ctx context.Context, chatID int64, text string, opts *client.SendOptions) (*client.Message, error)

	// Poll отправляет квиз-опрос.
	Poll(ctx context.Context, chatID int64, poll client.PollOptions) (*client.Message, error)

	// Edit заменяет текст и клавиатуру ранее отправленного сообщения.
	Edit(ctx context.Context, chatID int64, messageID int, text string, opts *client.SendOptions) error

	// Ack закрывает "часики" на нажатой inline кнопке.
	Ack(ctx context.Context, callbackID string, text string) error
}
