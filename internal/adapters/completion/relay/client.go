// Package relay forwards completion requests to a fanthom-compatible HTTP
// endpoint (POST /api/generate-email) that holds the provider key server side.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/drafts"
	"github.com/bnema/fanthom/internal/ports"
)

const (
	ProviderName   = "relay"
	defaultTimeout = 2 * time.Minute
	maxErrorBody   = 4 << 10
)

var ErrMissingURL = errors.New("relay url missing")

// Request is the JSON body of the relay endpoint.
type Request struct {
	RecipientName  string        `json:"recipientName"`
	RecipientEmail string        `json:"recipientEmail"`
	Context        string        `json:"context"`
	Goal           string        `json:"goal"`
	Tone           string        `json:"tone"`
	Config         RequestConfig `json:"config"`
	Model          string        `json:"model,omitempty"`
}

type RequestConfig struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

// Response carries either drafts or an error message.
type Response struct {
	Drafts []string `json:"drafts,omitempty"`
	Error  string   `json:"error,omitempty"`
}

type Client struct {
	url        string
	httpClient *http.Client
}

var _ ports.CompletionService = (*Client)(nil)

// New returns a relay client posting to url. A nil httpClient gets a
// two-minute timeout.
func New(url string, httpClient *http.Client) (*Client, error) {
	if url == "" {
		return nil, ErrMissingURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{url: url, httpClient: httpClient}, nil
}

func (c *Client) Provider() string { return ProviderName }

// Complete returns the relayed drafts joined with the draft delimiter so the
// caller parses them like any other completion.
func (c *Client) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	body, err := json.Marshal(NewRequest(req))
	if err != nil {
		return "", fmt.Errorf("encode relay request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build relay request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call relay: %w", err)
	}
	defer resp.Body.Close()

	var decoded Response
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &decoded) == nil && decoded.Error != "" {
			return "", fmt.Errorf("relay returned %d: %s", resp.StatusCode, decoded.Error)
		}
		return "", fmt.Errorf("relay returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode relay response: %w", err)
	}
	if decoded.Error != "" {
		return "", fmt.Errorf("relay error: %s", decoded.Error)
	}

	return drafts.Join(decoded.Drafts), nil
}

// NewRequest maps a completion request onto the relay body. The wrapped prompt
// travels as the context.
func NewRequest(req domain.CompletionRequest) Request {
	return Request{
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		Context:        req.Prompt,
		Goal:           req.Goal,
		Tone:           req.Tone,
		Config: RequestConfig{
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
		},
		Model: req.Model,
	}
}
