package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseTextConcatenatesTextParts(t *testing.T) {
	t.Parallel()

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text("Hi Alex\n"),
				genai.Blob{MIMEType: "image/png"},
				genai.Text("<<<DRAFT_SPLIT>>>\nHello Alex"),
			}},
		}},
	}

	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, "Hi Alex\n<<<DRAFT_SPLIT>>>\nHello Alex", text)
}

func TestResponseTextWithoutCandidates(t *testing.T) {
	t.Parallel()

	_, err := responseText(&genai.GenerateContentResponse{})
	require.ErrorIs(t, err, errNoCandidates)

	_, err = responseText(nil)
	require.ErrorIs(t, err, errNoCandidates)
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), "", "")
	require.ErrorIs(t, err, ErrMissingAPIKey)
}
