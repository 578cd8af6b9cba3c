package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel — модель Gemini по умолчанию.
const DefaultModel = "gemini-2.0-flash"

var errEmptyCompletion = errors.New("empty completion")

// GeminiConfig — параметры подключения к Gemini API.
type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL переопределяет адрес API, пустое значение — адрес по умолчанию.
	BaseURL string
}

// GeminiCompleter реализует Completer поверх genai.
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

// NewGeminiCompleter создаёт клиент Gemini API.
func NewGeminiCompleter(ctx context.Context, cfg GeminiConfig) (*GeminiCompleter, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiCompleter{
		client: client,
		model:  cfg.Model,
	}, nil
}

// Complete отправляет prompt и возвращает текст ответа.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string, temperature *float32) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errEmptyCompletion
	}

	return text, nil
}
