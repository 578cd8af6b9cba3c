package bot

import (
	"context"
	"errors"

	"github.com/letsssgooo/aiQuizBot/internal/client"
	"github.com/letsssgooo/aiQuizBot/internal/events/sender"
	"github.com/letsssgooo/aiQuizBot/internal/quiz"
)

var errNoPoll = errors.New("sent message has no poll")

// chatPresenter показывает квиз в одном чате.
// Ненулевой replyTo превращает все сообщения в ответы на команду пользователя.
type chatPresenter struct {
	sender  sender.Sender
	chatID  int64
	replyTo int
}

var _ quiz.Presenter = (*chatPresenter)(nil)

// newReplyPresenter отвечает на сообщение с командой.
func newReplyPresenter(s sender.Sender, msg *client.Message) *chatPresenter {
	return &chatPresenter{
		sender:  s,
		chatID:  msg.Chat.ID,
		replyTo: msg.MessageID,
	}
}

// newScheduledPresenter пишет в чат без привязки к сообщению, для рассылки по таймеру.
func newScheduledPresenter(s sender.Sender, chatID int64) *chatPresenter {
	return &chatPresenter{
		sender: s,
		chatID: chatID,
	}
}

func (p *chatPresenter) ChatID() int64 {
	return p.chatID
}

func (p *chatPresenter) SendText(ctx context.Context, text string) error {
	_, err := p.sender.Message(ctx, p.chatID, text, p.options(nil))
	return err
}

func (p *chatPresenter) SendQuizPoll(ctx context.Context, poll quiz.Poll) (string, error) {
	msg, err := p.sender.Poll(ctx, p.chatID, client.PollOptions{
		Question:         poll.Question,
		Options:          poll.Options,
		CorrectOptionID:  poll.CorrectIndex,
		ReplyToMessageID: p.replyTo,
	})
	if err != nil {
		return "", err
	}

	if msg == nil || msg.Poll == nil {
		return "", errNoPoll
	}

	return msg.Poll.ID, nil
}

func (p *chatPresenter) SendButtons(ctx context.Context, text string, buttons []quiz.Button) (int, error) {
	row := make([]client.InlineKeyboardButton, len(buttons))
	for i, b := range buttons {
		row[i] = client.InlineKeyboardButton{
			Text:         b.Text,
			CallbackData: b.Data,
		}
	}

	msg, err := p.sender.Message(ctx, p.chatID, text, p.options(&client.InlineKeyboardMarkup{
		InlineKeyboard: [][]client.InlineKeyboardButton{row},
	}))
	if err != nil {
		return 0, err
	}

	return msg.MessageID, nil
}

func (p *chatPresenter) options(markup *client.InlineKeyboardMarkup) *client.SendOptions {
	if p.replyTo == 0 && markup == nil {
		return nil
	}

	return &client.SendOptions{
		ReplyMarkup:      markup,
		ReplyToMessageID: p.replyTo,
	}
}
