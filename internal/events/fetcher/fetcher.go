package fetcher

import (
	"context"

	"github.com/letsssgooo/aiQuizBot/internal/client"
)

// TelegramFetcher реализует Fetcher через Telegram Bot API.
// Offset сдвигается после каждой непустой пачки, поэтому обновление
// подтверждается серверу при следующем запросе.
type TelegramFetcher struct {
	client client.Client
	offset int
}

func NewTelegramFetcher(client client.Client) *TelegramFetcher {
	return &TelegramFetcher{
		client: client,
		offset: 0,
	}
}

// Fetch получает слайс Update, учитывая timeout
func (f *TelegramFetcher) Fetch(ctx context.Context, timeout int) ([]client.Update, error) {
	updates, err := f.client.GetUpdates(ctx, f.offset, timeout)
	if err != nil {
		return nil, err
	}

	if len(updates) != 0 {
		f.offset = updates[len(updates)-1].UpdateID + 1
	}

	return updates, nil
}
