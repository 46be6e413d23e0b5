package redis

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/fanthom/internal/domain"
)

func TestDecodeBalance(t *testing.T) {
	t.Parallel()

	credits, updatedAt, exists, err := decodeBalance(map[string]string{})
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Zero(t, credits)
	assert.True(t, updatedAt.IsZero())

	credits, updatedAt, exists, err = decodeBalance(map[string]string{
		fieldCredits:   "48",
		fieldUpdatedAt: "2026-03-02T09:30:00Z",
	})
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(48), credits)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC), updatedAt)

	_, _, _, err = decodeBalance(map[string]string{fieldCredits: "lots"})
	require.Error(t, err)
}

func TestKeysAreScopedPerUser(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fanthom:credits:u1", balanceKey("u1"))
	assert.Equal(t, "fanthom:creditHistory:u1", historyKey("u1"))
	assert.Equal(t, "fanthom:drafts:u1", draftsKey("u1"))
	assert.NotEqual(t, balanceKey("u1"), balanceKey("u2"))
}

func TestConnectRejectsBadURLs(t *testing.T) {
	t.Parallel()

	_, err := Connect(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyConnectionURL)

	_, err = Connect(context.Background(), "mysql://nope")
	require.ErrorContains(t, err, "parse redis url")
}

func TestEmptyUserIDRejectedBeforeCommand(t *testing.T) {
	t.Parallel()

	_, err := NewLedgerStore(nil, nil).GetOrCreateBalance(context.Background(), "", 50)
	require.ErrorIs(t, err, domain.ErrInvalidUserID)

	err = NewDraftStore(nil).Append(context.Background(), domain.SavedDraft{})
	require.ErrorIs(t, err, domain.ErrInvalidUserID)
}

// newTestStore runs against an in-process miniredis unless
// FANTHOM_TEST_REDIS_URL points at a live server (e.g. redis://localhost:6379/15).
func newTestStore(t *testing.T) (*LedgerStore, *goredis.Client, domain.UserID) {
	t.Helper()

	url := os.Getenv("FANTHOM_TEST_REDIS_URL")
	if url == "" {
		url = "redis://" + miniredis.RunT(t).Addr()
	}

	client, err := Connect(context.Background(), url)
	require.NoError(t, err)

	userID := domain.UserID("test-" + uuid.NewString())
	t.Cleanup(func() {
		_ = client.Del(context.Background(), balanceKey(userID), historyKey(userID), draftsKey(userID)).Err()
		_ = client.Close()
	})

	return NewLedgerStore(client, nil), client, userID
}

func TestLedgerStoreCreatesMissingBalance(t *testing.T) {
	store, client, userID := newTestStore(t)
	ctx := context.Background()

	balance, err := store.GetOrCreateBalance(ctx, userID, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance.Credits)

	stored, err := client.HGet(ctx, balanceKey(userID), fieldCredits).Result()
	require.NoError(t, err)
	assert.Equal(t, "50", stored)

	_, err = store.SetBalance(ctx, userID, 12)
	require.NoError(t, err)
	balance, err = store.GetOrCreateBalance(ctx, userID, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(12), balance.Credits)
}

func TestLedgerStoreAbortLeavesBalance(t *testing.T) {
	store, client, userID := newTestStore(t)
	ctx := context.Background()

	_, err := store.SetBalance(ctx, userID, 1)
	require.NoError(t, err)

	_, err = store.UpdateBalance(ctx, userID, 50, func(current int64) (int64, error) {
		return current, &domain.InsufficientCreditsError{UserID: userID, Balance: current, Required: 2}
	})
	var insufficient *domain.InsufficientCreditsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(1), insufficient.Balance)

	stored, err := client.HGet(ctx, balanceKey(userID), fieldCredits).Result()
	require.NoError(t, err)
	assert.Equal(t, "1", stored)

	_, err = store.UpdateBalance(ctx, userID, 50, func(int64) (int64, error) { return -1, nil })
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestLedgerStoreSetBalanceAndHistory(t *testing.T) {
	store, _, userID := newTestStore(t)
	ctx := context.Background()

	previous, err := store.SetBalance(ctx, userID, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(0), previous)

	previous, err = store.SetBalance(ctx, userID, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(9), previous)

	for i, id := range []string{"h1", "h2"} {
		require.NoError(t, store.AppendHistory(ctx, domain.HistoryEntry{
			ID: id, UserID: userID, Type: domain.EntryTypeGeneration, Change: -2,
			BalanceAfter: int64(7 - 2*i), Timestamp: time.Now(),
		}))
	}
	entries, err := store.ListHistory(ctx, userID, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "h2", entries[0].ID)

	entries, err = store.ListHistory(ctx, userID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLedgerStoreRetriesAfterConcurrentWrite(t *testing.T) {
	store, client, userID := newTestStore(t)
	ctx := context.Background()

	_, err := store.SetBalance(ctx, userID, 10)
	require.NoError(t, err)

	var calls atomic.Int32
	balance, err := store.UpdateBalance(ctx, userID, 50, func(current int64) (int64, error) {
		if calls.Add(1) == 1 {
			require.NoError(t, client.HSet(ctx, balanceKey(userID), fieldCredits, 4).Err())
		}
		return current - 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, int64(2), balance.Credits)
}

func TestLedgerStoreGivesUpUnderConstantContention(t *testing.T) {
	store, client, userID := newTestStore(t)
	ctx := context.Background()

	_, err := store.SetBalance(ctx, userID, 10)
	require.NoError(t, err)

	var calls atomic.Int32
	_, err = store.UpdateBalance(ctx, userID, 50, func(current int64) (int64, error) {
		calls.Add(1)
		require.NoError(t, client.HSet(ctx, balanceKey(userID), fieldCredits, current).Err())
		return current - 2, nil
	})
	require.ErrorIs(t, err, ErrContention)
	assert.Equal(t, int32(maxTxRetries), calls.Load())
}

func TestLedgerStoreConcurrentChargesNeverOverdraw(t *testing.T) {
	store, _, userID := newTestStore(t)
	ctx := context.Background()

	_, err := store.SetBalance(ctx, userID, 9)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var succeeded atomic.Int32
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
			if err == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(4), succeeded.Load())
	balance, err := store.GetOrCreateBalance(ctx, userID, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), balance.Credits)
}

func TestDraftStoreAppendsJSONRecords(t *testing.T) {
	_, client, userID := newTestStore(t)
	ctx := context.Background()
	drafts := NewDraftStore(client)

	require.NoError(t, drafts.Append(ctx, domain.SavedDraft{
		ID: "d1", UserID: userID, GeneratedText: "Hi Alex", Tone: "Confident but conversational", Timestamp: time.Now(),
	}))

	items, err := client.LRange(ctx, draftsKey(userID), 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Contains(t, items[0], "Hi Alex")
}
