package sender

import (
	"context"

	"github.com/letsssgooo/aiQuizBot/internal/client"
)

// TelegramSender реализует отправку сообщений через Telegram Bot API.
type TelegramSender struct {
	client client.Client
}

// NewSender создает новый объект структуры TelegramSender.
func NewSender(client client.Client) *TelegramSender {
	return &TelegramSender{client: client}
}

// Message отправляет текстовое сообщение.
func (s *TelegramSender) Message(
	ctx context.Context,
	chatID int64,
	text string,
	opts *client.SendOptions,
) (*client.Message, error) {
	return s.client.SendMessage(ctx, chatID, text, opts)
}

// Poll отправляет неанонимный квиз-опрос.
func (s *TelegramSender) Poll(ctx context.Context, chatID int64, poll client.PollOptions) (*client.Message, error) {
	poll.IsAnonymous = false
	return s.client.SendPoll(ctx, chatID, poll)
}

// Edit заменяет текст сообщения.
func (s *TelegramSender) Edit(
	ctx context.Context,
	chatID int64,
	messageID int,
	text string,
	opts *client.SendOptions,
) error {
	return s.client.EditMessage(ctx, chatID, messageID, text, opts)
}

// Ack отвечает на callback query.
func (s *TelegramSender) Ack(ctx context.Context, callbackID string, text string) error {
	return s.client.AnswerCallback(ctx, callbackID, text)
}
