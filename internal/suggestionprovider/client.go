// Package suggestionprovider реализует клиент внешнего AI-провайдера
// (Gemini) для генерации подсказок визовых вопросов.
package suggestionprovider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client инкапсулирует клиент Gemini и имя модели.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient создаёт клиент Gemini с заданным API-ключом и моделью.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	const op = "suggestionprovider.NewClient"
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Client{client: client, model: model}, nil
}

// Generate запрашивает у модели список вопросов по теме topic.
// Ответ ожидается построчно, по одному вопросу на строку.
func (c *Client) Generate(ctx context.Context, topic string) ([]string, error) {
	const op = "suggestionprovider.Generate"

	model := c.client.GenerativeModel(c.model)
	prompt := fmt.Sprintf(
		"Suggest 5 short, practical questions a person might ask about %s visas for South Korea. "+
			"Return one question per line, without numbering.", topic)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%s: %w", op, errors.New("empty response"))
	}

	var suggestions []string
	for _, part := range resp.Candidates[0].Content.Parts {
		text, ok := part.(genai.Text)
		if !ok {
			continue
		}
		for _, line := range strings.Split(string(text), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				suggestions = append(suggestions, line)
			}
		}
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("%s: %w", op, errors.New("no suggestions in response"))
	}
	return suggestions, nil
}

// Close освобождает ресурсы клиента.
func (c *Client) Close() error {
	return c.client.Close()
}
