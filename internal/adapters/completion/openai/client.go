// Package openai implements the completion service on the official
// openai-go SDK (chat completions).
package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/ports"
)

const (
	ProviderName = "openai"
	DefaultModel = "gpt-4o"
)

var ErrMissingAPIKey = errors.New("openai api key missing")

type Settings struct {
	APIKey  string
	BaseURL string
	Model   string
}

type Client struct {
	model string
	opts  []option.RequestOption
}

var _ ports.CompletionService = (*Client)(nil)

func New(settings Settings) (*Client, error) {
	if settings.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := settings.Model
	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(settings.APIKey),
		option.WithMaxRetries(0),
	}
	if settings.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(settings.BaseURL))
	}

	return &Client{model: model, opts: opts}, nil
}

func (c *Client) Provider() string { return ProviderName }

func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	client := openai.NewClient(c.opts...)

	model := req.Model
	if model == "" {
		model = c.model
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}

	return resp.Choices[0].Message.Content, nil
}
