package fetcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letsssgooo/aiQuizBot/internal/client"
)

// stubClient отдаёт заранее заданные пачки обновлений и запоминает offset.
type stubClient struct {
	client.Client
	batches [][]client.Update
	err     error
	offsets []int
}

func (s *stubClient) GetUpdates(_ context.Context, offset int, _ int) ([]client.Update, error) {
	s.offsets = append(s.offsets, offset)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.batches) == 0 {
		return nil, nil
	}
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return batch, nil
}

func TestTelegramFetcher_AdvancesOffset(t *testing.T) {
	stub := &stubClient{batches: [][]client.Update{
		{{UpdateID: 100}, {UpdateID: 101}},
		{},
		{{UpdateID: 105}},
	}}
	f := NewTelegramFetcher(stub)
	ctx := context.Background()

	updates, err := f.Fetch(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, updates, 2)

	updates, err = f.Fetch(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, updates)

	_, err = f.Fetch(ctx, 1)
	require.NoError(t, err)

	_, err = f.Fetch(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 102, 102, 106}, stub.offsets)
}

func TestTelegramFetcher_ErrorKeepsOffset(t *testing.T) {
	stub := &stubClient{err: errors.New("network down")}
	f := NewTelegramFetcher(stub)

	_, err := f.Fetch(context.Background(), 1)
	require.Error(t, err)

	_, _ = f.Fetch(context.Background(), 1)
	assert.Equal(t, []int{0, 0}, stub.offsets)
}
