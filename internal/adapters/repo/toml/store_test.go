package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newTestLedgerStore(t *testing.T, root string) *LedgerStore {
	t.Helper()

	cfg := viper.New()
	cfg.Set(PathKey, root)
	store, err := NewLedgerStore(cfg, fixedClock{now: testNow})
	require.NoError(t, err)
	return store
}

func TestLedgerStoreGetOrCreateBalance(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := newTestLedgerStore(t, root)
	ctx := context.Background()

	balance, err := store.GetOrCreateBalance(ctx, "u1", 50)
	require.NoError(t, err)
	assert.Equal(t, domain.Balance{UserID: "u1", Credits: 50, UpdatedAt: testNow}, balance)

	balance, err = store.GetOrCreateBalance(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(50), balance.Credits)

	path := filepath.Join(root, "ledger", "u1.toml")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "credits = 50")
}

func TestLedgerStoreUpdateBalanceAbortsOnError(t *testing.T) {
	t.Parallel()

	store := newTestLedgerStore(t, t.TempDir())
	ctx := context.Background()
	abort := errors.New("not enough")

	_, err := store.UpdateBalance(ctx, "u1", 3, func(current int64) (int64, error) {
		assert.Equal(t, int64(3), current)
		return 0, abort
	})
	require.ErrorIs(t, err, abort)

	// Nothing was written, so the next read creates the record fresh.
	balance, err := store.GetOrCreateBalance(ctx, "u1", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), balance.Credits)
}

func TestLedgerStoreRejectsNegativeBalance(t *testing.T) {
	t.Parallel()

	store := newTestLedgerStore(t, t.TempDir())

	_, err := store.UpdateBalance(context.Background(), "u1", 1, func(current int64) (int64, error) {
		return current - 2, nil
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestLedgerStoreSetBalanceReturnsPrevious(t *testing.T) {
	t.Parallel()

	store := newTestLedgerStore(t, t.TempDir())
	ctx := context.Background()

	previous, err := store.SetBalance(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), previous)

	previous, err = store.SetBalance(ctx, "u1", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(10), previous)
}

func TestLedgerStoreHistoryNewestFirst(t *testing.T) {
	t.Parallel()

	store := newTestLedgerStore(t, t.TempDir())
	ctx := context.Background()

	_, err := store.GetOrCreateBalance(ctx, "u1", 50)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		require.NoError(t, store.AppendHistory(ctx, domain.HistoryEntry{
			ID:           fmt.Sprintf("h%d", i),
			UserID:       "u1",
			Type:         domain.EntryTypeGeneration,
			Change:       -2,
			BalanceAfter: 50 - int64(2*i),
			Timestamp:    testNow.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := store.ListHistory(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "h3", entries[0].ID)
	assert.Equal(t, "h2", entries[1].ID)
	assert.Equal(t, testNow.Add(3*time.Minute), entries[0].Timestamp)
	assert.Equal(t, domain.UserID("u1"), entries[0].UserID)

	all, err := store.ListHistory(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := store.ListHistory(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLedgerStoreAppendHistoryRequiresLedger(t *testing.T) {
	t.Parallel()

	store := newTestLedgerStore(t, t.TempDir())

	err := store.AppendHistory(context.Background(), domain.HistoryEntry{ID: "h1", UserID: "ghost"})
	require.Error(t, err)
}

func TestLedgerStoreRejectsUnsafeUserIDs(t *testing.T) {
	t.Parallel()

	store := newTestLedgerStore(t, t.TempDir())

	for _, id := range []domain.UserID{"", "../escape", "a/b", ".hidden", domain.UserID(strings.Repeat("x", 129))} {
		_, err := store.GetOrCreateBalance(context.Background(), id, 50)
		assert.ErrorIs(t, err, domain.ErrInvalidUserID, string(id))
	}
}

func TestLedgerStoreCanceledContext(t *testing.T) {
	t.Parallel()

	store := newTestLedgerStore(t, t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.GetOrCreateBalance(ctx, "u1", 50)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLedgerStoreFutureSchemaVersion(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ledger"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ledger", "u1.toml"), []byte("version = 999\ncredits = 5\n"), 0o600))

	store := newTestLedgerStore(t, root)
	_, err := store.GetOrCreateBalance(context.Background(), "u1", 50)
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported ledger schema version")
}

func TestLedgerStoreMalformedFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ledger"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ledger", "u1.toml"), []byte("credits = ["), 0o600))

	store := newTestLedgerStore(t, root)
	_, err := store.GetOrCreateBalance(context.Background(), "u1", 50)
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode u1.toml")
}

func TestLedgerStoreConcurrentUpdatesAcrossInstances(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	storeA := newTestLedgerStore(t, root)
	storeB := newTestLedgerStore(t, root)

	const perStore = 50
	charge := func(current int64) (int64, error) {
		if current < 1 {
			return current, errors.New("insufficient")
		}
		return current - 1, nil
	}

	start := make(chan struct{})
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for _, store := range []*LedgerStore{storeA, storeB} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for range perStore {
				if _, err := store.UpdateBalance(context.Background(), "u1", 60, charge); err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, 60, succeeded)
	balance, err := storeA.GetOrCreateBalance(context.Background(), "u1", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance.Credits)
}

func TestDraftStoreAppend(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfg := viper.New()
	cfg.Set(PathKey, root)
	store, err := NewDraftStore(cfg)
	require.NoError(t, err)

	draft := domain.SavedDraft{
		ID:     "d1",
		UserID: "u1",
		Fields: domain.EmailFields{
			CompanyName:       "Acme",
			ProspectFirstName: "Alex",
			CTAType:           domain.CTAFollowUp,
		},
		Tone:          "Confident and professional",
		GeneratedText: "Hi Alex,\nline two",
		Timestamp:     testNow,
	}
	require.NoError(t, store.Append(context.Background(), draft))
	second := draft
	second.ID = "d2"
	require.NoError(t, store.Append(context.Background(), second))

	var file draftsFileSchema
	exists, err := readTOML(filepath.Join(root, "drafts", "u1.toml"), &file)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, currentSchemaVersion, file.Version)
	assert.Equal(t, "u1", file.UserID)
	require.Len(t, file.Drafts, 2)
	assert.Equal(t, "d1", file.Drafts[0].ID)
	assert.Equal(t, "Follow-Up", file.Drafts[0].Fields.CTAType)
	assert.Equal(t, "Hi Alex,\nline two", file.Drafts[0].GeneratedText)
	assert.Equal(t, testNow, parseTime(file.Drafts[0].Timestamp))
}

func TestResolveRootDefaultsUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	root, err := ResolveRoot(viper.New())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".fanthom", "data"), root)
}
