package firestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bnema/fanthom/internal/domain"
)

func TestHistoryDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	local := time.FixedZone("CET", 3600)
	entry := domain.HistoryEntry{
		ID:           "h1",
		UserID:       "u1",
		Type:         domain.EntryTypeGeneration,
		Change:       -2,
		BalanceAfter: 48,
		Timestamp:    time.Date(2026, 3, 2, 10, 30, 0, 0, local),
	}

	doc := toHistoryDocument(entry)
	assert.Equal(t, "email_generation", doc.Type)
	assert.Equal(t, time.UTC, doc.Timestamp.Location())

	got := fromHistoryDocument("u1", "h1", doc)
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, entry.Type, got.Type)
	assert.Equal(t, entry.Change, got.Change)
	assert.Equal(t, entry.BalanceAfter, got.BalanceAfter)
	assert.True(t, entry.Timestamp.Equal(got.Timestamp))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, isNotFound(status.Error(codes.NotFound, "missing")))
	assert.False(t, isNotFound(status.Error(codes.Unavailable, "down")))
	assert.False(t, isNotFound(errors.New("plain")))
	assert.False(t, isNotFound(nil))
}

func TestEmptyUserIDRejectedBeforeNetwork(t *testing.T) {
	t.Parallel()

	ledger := NewLedgerStore(nil, nil)
	_, err := ledger.GetOrCreateBalance(context.Background(), "", 50)
	require.ErrorIs(t, err, domain.ErrInvalidUserID)

	err = ledger.AppendHistory(context.Background(), domain.HistoryEntry{ID: "h1"})
	require.ErrorIs(t, err, domain.ErrInvalidUserID)

	drafts := NewDraftStore(nil)
	err = drafts.Append(context.Background(), domain.SavedDraft{ID: "d1"})
	require.ErrorIs(t, err, domain.ErrInvalidUserID)
}

func TestCanceledContextSkipsStore(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLedgerStore(nil, nil).ListHistory(ctx, "u1", 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDraftDocumentKeepsFields(t *testing.T) {
	t.Parallel()

	draft := domain.SavedDraft{
		ID:            "d1",
		UserID:        "u1",
		Fields:        domain.EmailFields{CompanyName: "Acme", CTAType: domain.CTADemoRequest},
		Tone:          "Confident and professional",
		GeneratedText: "Hi",
		Timestamp:     time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
	}

	doc := toDraftDocument(draft)
	assert.Equal(t, draft.Fields, doc.Fields)
	assert.Equal(t, "Hi", doc.GeneratedText)
	assert.Equal(t, draft.Timestamp, doc.Timestamp)
}
