// Package gemini implements the completion service on Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/ports"
)

const (
	ProviderName = "gemini"
	DefaultModel = "gemini-1.5-flash"
)

var (
	ErrMissingAPIKey = errors.New("gemini api key missing")
	errNoCandidates  = errors.New("gemini: no candidates")
)

type Client struct {
	client *genai.Client
	model  string
}

var _ ports.CompletionService = (*Client)(nil)

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

func (c *Client) Provider() string { return ProviderName }

func (c *Client) Close() error { return c.client.Close() }

// Complete ignores req.Model when it names an OpenAI model, since the configured
// default is shared between providers.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	name := c.model
	if req.Model != "" && strings.HasPrefix(req.Model, "gemini") {
		name = req.Model
	}

	model := c.client.GenerativeModel(name)
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}
	model.SetTemperature(float32(req.Temperature))
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errNoCandidates
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String(), nil
}
