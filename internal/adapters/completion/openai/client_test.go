package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/fanthom/internal/domain"
)

type capturedRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newTestServer(t *testing.T, body string, status int, captured *capturedRequest) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := New(Settings{})
	require.ErrorIs(t, err, ErrMissingAPIKey)

	client, err := New(Settings{APIKey: "sk"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, client.model)
	assert.Equal(t, "openai", client.Provider())
}

func TestCompleteSendsSystemAndUserMessages(t *testing.T) {
	t.Parallel()

	var captured capturedRequest
	server := newTestServer(t, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1,
		"model": "gpt-4o",
		"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Hi Alex\n<<<DRAFT_SPLIT>>>\nHello Alex"}}]
	}`, http.StatusOK, &captured)

	client, err := New(Settings{APIKey: "sk-test", BaseURL: server.URL + "/"})
	require.NoError(t, err)

	text, err := client.Complete(context.Background(), domain.CompletionRequest{
		System:      "system text",
		Prompt:      "user text",
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   6000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi Alex\n<<<DRAFT_SPLIT>>>\nHello Alex", text)

	assert.Equal(t, "gpt-4o-mini", captured.Model)
	assert.InDelta(t, 0.7, captured.Temperature, 1e-9)
	assert.Equal(t, 6000, captured.MaxTokens)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "system text", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "user text", captured.Messages[1].Content)
}

func TestCompleteEmptyChoices(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, `{"id":"x","object":"chat.completion","created":1,"model":"gpt-4o","choices":[]}`, http.StatusOK, nil)
	client, err := New(Settings{APIKey: "sk-test", BaseURL: server.URL + "/"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), domain.CompletionRequest{Prompt: "p"})
	require.ErrorContains(t, err, "empty choices")
}

func TestCompleteSurfacesAPIErrors(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`, http.StatusUnauthorized, nil)
	client, err := New(Settings{APIKey: "sk-test", BaseURL: server.URL + "/"})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), domain.CompletionRequest{Prompt: "p"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "create chat completion")
}
