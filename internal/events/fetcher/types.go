package fetcher

import (
	"context"

	"github.com/letsssgooo/aiQuizBot/internal/client"
)

// Fetcher  определяет основной интерфейс для получения сообщений.
type Fetcher interface {
	// Fetch получает слайс Update, ожидая новые не дольше timeout секунд.
	Fetch(ctx context.Context, timeout int) ([]client.Update, error)
}
