package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ThisisBizness/Study-Buddy/pkg/domain"
	"github.com/ThisisBizness/Study-Buddy/pkg/solver"
)

type Config struct {
	Token       string
	Model       string
	Temperature float32
	MaxTokens   int
}

type client struct {
	api *openai.Client
	cfg Config
}

// NewClient builds a solver backed by an OpenAI-compatible chat completions
// API. Images travel as base64 data URLs in a multi-part user message.
func NewClient(cfg Config) (*client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("token is empty")
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4o
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2048
	}
	return &client{
		api: openai.NewClient(cfg.Token),
		cfg: cfg,
	}, nil
}

func (c *client) Solve(ctx context.Context, problem domain.Problem) (domain.Answer, error) {
	var parts []openai.ChatMessagePart

	if problem.ImageData != "" {
		mimeType := problem.MimeType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: "data:" + mimeType + ";base64," + problem.ImageData,
			},
		})
	}
	if problem.Text != "" {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: "Problem: " + problem.Text,
		})
	}
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: solver.Instructions,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role:         openai.ChatMessageRoleUser,
			MultiContent: parts,
		}},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return domain.Answer{}, domain.AppError{Message: "OpenAI API error", Details: apiErr.Message}
		}
		return domain.Answer{}, fmt.Errorf("creating completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return domain.Answer{}, fmt.Errorf("no completion response")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return domain.Answer{}, fmt.Errorf("no completion response")
	}

	return solver.SplitSections(text), nil
}

func (c *client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("listing models: %w", err)
	}
	return nil
}
