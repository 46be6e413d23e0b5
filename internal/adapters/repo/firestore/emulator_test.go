package firestore

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/fanthom/internal/domain"
)

// These tests need the Firestore emulator:
// gcloud emulators firestore start --host-port=localhost:8681
// FIRESTORE_EMULATOR_HOST=localhost:8681
func newEmulatorStore(t *testing.T) (*LedgerStore, *firestore.Client, domain.UserID) {
	t.Helper()

	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := NewClient(context.Background(), "fanthom-test", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewLedgerStore(client, nil), client, domain.UserID("test-" + uuid.NewString())
}

func storedCredits(t *testing.T, store *LedgerStore, userID domain.UserID) int64 {
	t.Helper()

	ref, err := store.balanceRef(userID)
	require.NoError(t, err)
	snap, err := ref.Get(context.Background())
	require.NoError(t, err)

	var doc balanceDocument
	require.NoError(t, snap.DataTo(&doc))
	return doc.Credits
}

func TestLedgerStoreCreatesMissingBalanceEmulator(t *testing.T) {
	store, _, userID := newEmulatorStore(t)
	ctx := context.Background()

	balance, err := store.GetOrCreateBalance(ctx, userID, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance.Credits)
	assert.Equal(t, int64(50), storedCredits(t, store, userID))

	balance, err = store.GetOrCreateBalance(ctx, userID, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance.Credits)
}

func TestLedgerStoreAbortLeavesBalanceEmulator(t *testing.T) {
	store, _, userID := newEmulatorStore(t)
	ctx := context.Background()

	previous, err := store.SetBalance(ctx, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), previous)

	_, err = store.UpdateBalance(ctx, userID, 50, func(current int64) (int64, error) {
		return current, &domain.InsufficientCreditsError{UserID: userID, Balance: current, Required: 2}
	})
	var insufficient *domain.InsufficientCreditsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(1), storedCredits(t, store, userID))

	_, err = store.UpdateBalance(ctx, userID, 50, func(int64) (int64, error) { return -1, nil })
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Equal(t, int64(1), storedCredits(t, store, userID))
}

func TestLedgerStoreConcurrentChargesEmulator(t *testing.T) {
	store, _, userID := newEmulatorStore(t)
	ctx := context.Background()

	_, err := store.SetBalance(ctx, userID, 9)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var succeeded, refused atomic.Int32
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.UpdateBalance(ctx, userID, 50, func(current int64) (int64, error) {
				if current < 2 {
					return current, domain.ErrInsufficientCredits
				}
				return current - 2, nil
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, domain.ErrInsufficientCredits):
				refused.Add(1)
			}
		}()
	}
	wg.Wait()

	credits := storedCredits(t, store, userID)
	assert.GreaterOrEqual(t, credits, int64(0))
	assert.Equal(t, int64(9)-2*int64(succeeded.Load()), credits)
	assert.LessOrEqual(t, succeeded.Load(), int32(4))
	if succeeded.Load() < 4 {
		assert.Zero(t, refused.Load(), "charges were refused while credits remained")
	}
}

func TestLedgerStoreHistoryAndDraftsEmulator(t *testing.T) {
	store, client, userID := newEmulatorStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	for i := range 3 {
		require.NoError(t, store.AppendHistory(ctx, domain.HistoryEntry{
			ID: uuid.NewString(), UserID: userID, Type: domain.EntryTypeGeneration, Change: -2,
			BalanceAfter: int64(48 - 2*i), Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := store.ListHistory(ctx, userID, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(44), entries[0].BalanceAfter)
	assert.Equal(t, int64(46), entries[1].BalanceAfter)

	require.NoError(t, NewDraftStore(client).Append(ctx, domain.SavedDraft{
		ID: uuid.NewString(), UserID: userID, GeneratedText: "Hi Alex", Timestamp: base,
	}))
	snaps, err := client.Collection(usersCollection).Doc(string(userID)).Collection(draftsCollection).Documents(ctx).GetAll()
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}
