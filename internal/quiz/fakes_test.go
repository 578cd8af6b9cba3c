package quiz

import (
	"context"
	"errors"
	"sync"
)

// mapStore — хранилище сессий без TTL для тестов.
type mapStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	saveErr  error
	getErr   error
}

func newMapStore() *mapStore {
	return &mapStore{sessions: make(map[string]Session)}
}

func (s *mapStore) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions[session.Key] = session
	return nil
}

func (s *mapStore) Get(_ context.Context, key string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return Session{}, s.getErr
	}
	session, ok := s.sessions[key]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

// recordingPresenter запоминает всё, что ему отправили.
type recordingPresenter struct {
	chatID    int64
	texts     []string
	polls     []Poll
	buttons   [][]Button
	questions []string
	pollID    string
	messageID int
	err       error
}

func (p *recordingPresenter) ChatID() int64 {
	return p.chatID
}

func (p *recordingPresenter) SendText(_ context.Context, text string) error {
	p.texts = append(p.texts, text)
	return p.err
}

func (p *recordingPresenter) SendQuizPoll(_ context.Context, poll Poll) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.polls = append(p.polls, poll)
	return p.pollID, nil
}

func (p *recordingPresenter) SendButtons(_ context.Context, text string, buttons []Button) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	p.questions = append(p.questions, text)
	p.buttons = append(p.buttons, buttons)
	return p.messageID, nil
}

// stubSource отдаёт заранее заданный текст или ошибку.
type stubSource struct {
	text string
	err  error
}

func (s stubSource) RequestQuizText(context.Context) (string, error) {
	return s.text, s.err
}

var errTransport = errors.New("transport failure")
