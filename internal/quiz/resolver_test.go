package quiz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_ResolvePoll(t *testing.T) {
	store := newMapStore()
	require.NoError(t, store.Save(context.Background(), Session{
		Key:           "poll-1",
		Explanation:   "Because Gherkin.",
		ChatID:        42,
		CorrectLetter: "A",
	}))
	r := NewResolver(store)

	verdict, ok := r.ResolvePoll(context.Background(), PollAnswer{
		PollID:    "poll-1",
		UserName:  "alice",
		OptionIDs: []int{2},
	})
	require.True(t, ok)
	assert.Equal(t, Verdict{
		ChatID: 42,
		Text:   "📖 Explanation for alice:\nBecause Gherkin.",
	}, verdict)
}

func TestResolver_ResolvePollUnknownKey(t *testing.T) {
	r := NewResolver(newMapStore())

	_, ok := r.ResolvePoll(context.Background(), PollAnswer{
		PollID:    "never-registered",
		UserName:  "bob",
		OptionIDs: []int{0},
	})
	assert.False(t, ok)
}

func TestResolver_ResolvePollRetractedVote(t *testing.T) {
	store := newMapStore()
	require.NoError(t, store.Save(context.Background(), Session{Key: "poll-1", ChatID: 1}))
	r := NewResolver(store)

	_, ok := r.ResolvePoll(context.Background(), PollAnswer{PollID: "poll-1", UserName: "bob"})
	assert.False(t, ok)
}

func TestResolver_ResolvePollStoreError(t *testing.T) {
	store := newMapStore()
	store.getErr = errTransport
	r := NewResolver(store)

	_, ok := r.ResolvePoll(context.Background(), PollAnswer{PollID: "poll-1", OptionIDs: []int{1}})
	assert.False(t, ok)
}

func TestResolver_ResolveButton(t *testing.T) {
	store := newMapStore()
	require.NoError(t, store.Save(context.Background(), Session{
		Key:           "42:7",
		Explanation:   "Cucumber is the gem.",
		ChatID:        42,
		CorrectLetter: "A",
	}))
	r := NewResolver(store)

	testCases := []struct {
		name     string
		answer   ButtonAnswer
		expected string
	}{
		{
			name:     "wrong choice names the correct letter",
			answer:   ButtonAnswer{Key: "42:7", Selected: "B", Correct: "A"},
			expected: "Incorrect! The correct answer is A.\n\nCucumber is the gem.",
		},
		{
			name:     "right choice",
			answer:   ButtonAnswer{Key: "42:7", Selected: "A", Correct: "A"},
			expected: "Correct!\n\nCucumber is the gem.",
		},
		{
			name:     "expired session still gets a verdict",
			answer:   ButtonAnswer{Key: "42:8", Selected: "C", Correct: "D"},
			expected: "Incorrect! The correct answer is D.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, r.ResolveButton(context.Background(), tc.answer))
		})
	}
}

func TestResolver_ResolveButtonEmptyExplanation(t *testing.T) {
	store := newMapStore()
	require.NoError(t, store.Save(context.Background(), Session{Key: "1:1", CorrectLetter: "B"}))
	r := NewResolver(store)

	got := r.ResolveButton(context.Background(), ButtonAnswer{Key: "1:1", Selected: "B", Correct: "B"})
	assert.Equal(t, "Correct!", got)
}
