package mock

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/drafts"
)

func TestCompleteProducesTwoParsableDrafts(t *testing.T) {
	t.Parallel()

	text, err := New(0).Complete(context.Background(), domain.CompletionRequest{
		RecipientName: "Alex",
		Goal:          "Demo Request",
	})
	require.NoError(t, err)
	assert.Contains(t, text, domain.DraftDelimiter)

	parsed := drafts.Parse(text)
	require.Len(t, parsed, 2)
	for _, d := range parsed {
		assert.NotContains(t, d, "Subject:")
		assert.Contains(t, d, "Alex")
	}
	assert.True(t, strings.HasPrefix(parsed[0], "Hi Alex,"))
	assert.Contains(t, parsed[0], "demo request")
}

func TestCompleteHonorsCancellationDuringDelay(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := New(time.Minute).Complete(ctx, domain.CompletionRequest{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProvider(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mock", New(0).Provider())
}
