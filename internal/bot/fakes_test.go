package bot

import (
	"context"
	"strconv"
	"sync"

	"github.com/letsssgooo/aiQuizBot/internal/client"
)

type sentMessage struct {
	chatID int64
	text   string
	opts   *client.SendOptions
}

type sentPoll struct {
	chatID int64
	poll   client.PollOptions
}

type editedMessage struct {
	chatID    int64
	messageID int
	text      string
	opts      *client.SendOptions
}

// fakeSender записывает исходящие вызовы и выдаёт возрастающие id.
type fakeSender struct {
	mu       sync.Mutex
	nextID   int
	messages []sentMessage
	polls    []sentPoll
	edits    []editedMessage
	acks     []string
	err      error
	pollErr  error
}

func (s *fakeSender) Message(_ context.Context, chatID int64, text string, opts *client.SendOptions) (*client.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	s.nextID++
	s.messages = append(s.messages, sentMessage{chatID: chatID, text: text, opts: opts})
	return &client.Message{MessageID: s.nextID, Chat: &client.Chat{ID: chatID}, Text: text}, nil
}

func (s *fakeSender) Poll(_ context.Context, chatID int64, poll client.PollOptions) (*client.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	if s.pollErr != nil {
		return nil, s.pollErr
	}
	s.nextID++
	s.polls = append(s.polls, sentPoll{chatID: chatID, poll: poll})
	return &client.Message{
		MessageID: s.nextID,
		Chat:      &client.Chat{ID: chatID},
		Poll:      &client.Poll{ID: "poll-" + strconv.Itoa(s.nextID), Type: "quiz"},
	}, nil
}

func (s *fakeSender) Edit(_ context.Context, chatID int64, messageID int, text string, opts *client.SendOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.edits = append(s.edits, editedMessage{chatID: chatID, messageID: messageID, text: text, opts: opts})
	return s.err
}

func (s *fakeSender) Ack(_ context.Context, callbackID string, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.acks = append(s.acks, callbackID)
	return nil
}

func (s *fakeSender) texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	texts := make([]string, len(s.messages))
	for i, m := range s.messages {
		texts[i] = m.text
	}
	return texts
}

// blockingSource отдаёт текст только после закрытия release.
type blockingSource struct {
	text    string
	err     error
	release chan struct{}
}

func (s *blockingSource) RequestQuizText(ctx context.Context) (string, error) {
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.text, s.err
}

// scriptedFetcher отдаёт пачки обновлений по очереди, затем ждёт отмены.
type scriptedFetcher struct {
	mu      sync.Mutex
	batches [][]client.Update
	drained chan struct{}
}

func (f *scriptedFetcher) Fetch(ctx context.Context, _ int) ([]client.Update, error) {
	f.mu.Lock()
	if len(f.batches) > 0 {
		batch := f.batches[0]
		f.batches = f.batches[1:]
		f.mu.Unlock()
		return batch, nil
	}
	f.mu.Unlock()

	if f.drained != nil {
		close(f.drained)
		f.drained = nil
	}

	<-ctx.Done()
	return nil, ctx.Err()
}
