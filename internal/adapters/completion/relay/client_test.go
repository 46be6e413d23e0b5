package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/drafts"
)

func TestCompleteForwardsRequestAndJoinsDrafts(t *testing.T) {
	t.Parallel()

	var got Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(Response{Drafts: []string{"Hi Alex", "Hello Alex"}})
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL, nil)
	require.NoError(t, err)

	text, err := client.Complete(context.Background(), domain.CompletionRequest{
		System:         "ignored",
		Prompt:         "wrapped prompt",
		Model:          "gpt-4o",
		Temperature:    0.7,
		MaxTokens:      6000,
		RecipientName:  "Alex",
		RecipientEmail: "alex@northwind.com",
		Goal:           "Follow-Up",
		Tone:           "Confident but conversational",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hi Alex", "Hello Alex"}, drafts.Parse(text))

	assert.Equal(t, Request{
		RecipientName:  "Alex",
		RecipientEmail: "alex@northwind.com",
		Context:        "wrapped prompt",
		Goal:           "Follow-Up",
		Tone:           "Confident but conversational",
		Config:         RequestConfig{Temperature: 0.7, MaxTokens: 6000},
		Model:          "gpt-4o",
	}, got)
}

func TestCompleteSurfacesRelayError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(Response{Error: "upstream down"})
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL, nil)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), domain.CompletionRequest{Prompt: "p"})
	require.Error(t, err)
	assert.Equal(t, "relay returned 500: upstream down", err.Error())
}

func TestCompleteNonJSONFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL, nil)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), domain.CompletionRequest{Prompt: "p"})
	assert.EqualError(t, err, "relay returned 502")
}

func TestNewRequiresURL(t *testing.T) {
	t.Parallel()

	_, err := New("", nil)
	require.ErrorIs(t, err, ErrMissingURL)
}
