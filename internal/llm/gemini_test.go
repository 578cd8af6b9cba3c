package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeminiServer(t *testing.T, status int, body string, gotBody *map[string]any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/"+DefaultModel+":generateContent"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		if gotBody != nil {
			raw, err := io.ReadAll(r.Body)
			assert.NoError(t, err)
			assert.NoError(t, json.Unmarshal(raw, gotBody))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestGeminiCompleter_Complete(t *testing.T) {
	var request map[string]any
	srv := newGeminiServer(t, http.StatusOK,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"Question: What is Gherkin?"}]}}]}`,
		&request,
	)

	g, err := NewGeminiCompleter(context.Background(), GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	temp := float32(0.5)
	text, err := g.Complete(context.Background(), "prompt text", &temp)
	require.NoError(t, err)
	assert.Equal(t, "Question: What is Gherkin?", text)

	genConfig, ok := request["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 0.5, genConfig["temperature"], 1e-6)
}

func TestGeminiCompleter_EmptyResponse(t *testing.T) {
	srv := newGeminiServer(t, http.StatusOK, `{"candidates":[]}`, nil)

	g, err := NewGeminiCompleter(context.Background(), GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = g.Complete(context.Background(), "prompt", nil)
	assert.ErrorIs(t, err, errEmptyCompletion)
}

func TestGeminiCompleter_APIError(t *testing.T) {
	srv := newGeminiServer(t, http.StatusBadRequest,
		`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`, nil)

	g, err := NewGeminiCompleter(context.Background(), GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = g.Complete(context.Background(), "prompt", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate content")
}
