package quiz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Generate(t *testing.T) {
	s := NewService(stubSource{text: cucumberResponse}, NewFormatter(ModePoll, newMapStore()))

	q, raw, err := s.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cucumberResponse, raw)
	assert.Equal(t, "A", q.CorrectLetter())
	assert.Equal(t, ModePoll, s.Mode())
}

func TestService_GenerateSourceError(t *testing.T) {
	s := NewService(stubSource{err: errTransport}, NewFormatter(ModePoll, newMapStore()))

	q, raw, err := s.Generate(context.Background())
	assert.ErrorIs(t, err, errTransport)
	assert.Empty(t, raw)
	assert.False(t, q.Valid())
}

func TestService_GenerateUnparsable(t *testing.T) {
	const garbage = "I cannot help with that."
	s := NewService(stubSource{text: garbage}, NewFormatter(ModeButtons, newMapStore()))

	_, raw, err := s.Generate(context.Background())
	assert.ErrorIs(t, err, ErrUnparsable)
	assert.Equal(t, garbage, raw)
}

func TestService_GenerateAndPresent(t *testing.T) {
	store := newMapStore()
	s := NewService(stubSource{text: cucumberResponse}, NewFormatter(ModeButtons, store))
	p := &recordingPresenter{chatID: 9, messageID: 3}

	q, _, err := s.Generate(context.Background())
	require.NoError(t, err)

	key, err := s.Present(context.Background(), q, p)
	require.NoError(t, err)
	assert.Equal(t, "9:3", key)

	verdict := NewResolver(store).ResolveButton(context.Background(), ButtonAnswer{
		Key:      key,
		Selected: "B",
		Correct:  "A",
	})
	assert.Equal(t, "Incorrect! The correct answer is A.\n\nCucumber is the gem implementing the Gherkin syntax.", verdict)
}
