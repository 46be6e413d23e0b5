package toml

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/ports"
	"github.com/spf13/viper"
)

const ledgerCollection = "ledger"

type LedgerStore struct {
	root  string
	clock ports.Clock
}

var _ ports.LedgerStore = (*LedgerStore)(nil)

func NewLedgerStore(cfg *viper.Viper, clock ports.Clock) (*LedgerStore, error) {
	root, err := ResolveRoot(cfg)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &LedgerStore{root: root, clock: clock}, nil
}

func (s *LedgerStore) GetOrCreateBalance(ctx context.Context, userID domain.UserID, initial int64) (domain.Balance, error) {
	if err := ctx.Err(); err != nil {
		return domain.Balance{}, err
	}

	path, err := userFilePath(s.root, ledgerCollection, userID)
	if err != nil {
		return domain.Balance{}, err
	}

	mu := lockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	file, exists, err := s.read(path)
	if err != nil {
		return domain.Balance{}, err
	}
	if exists {
		return toBalance(file), nil
	}

	file = ledgerFileSchema{
		Version:   currentSchemaVersion,
		UserID:    string(userID),
		Credits:   initial,
		UpdatedAt: formatTime(s.clock.Now()),
	}
	if err := writeTOML(path, file); err != nil {
		return domain.Balance{}, err
	}

	return toBalance(file), nil
}

func (s *LedgerStore) UpdateBalance(ctx context.Context, userID domain.UserID, initial int64, fn ports.BalanceUpdate) (domain.Balance, error) {
	if err := ctx.Err(); err != nil {
		return domain.Balance{}, err
	}

	path, err := userFilePath(s.root, ledgerCollection, userID)
	if err != nil {
		return domain.Balance{}, err
	}

	mu := lockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	file, exists, err := s.read(path)
	if err != nil {
		return domain.Balance{}, err
	}
	if !exists {
		file = ledgerFileSchema{Version: currentSchemaVersion, UserID: string(userID), Credits: initial}
	}

	next, err := fn(file.Credits)
	if err != nil {
		return domain.Balance{}, err
	}
	if next < 0 {
		return domain.Balance{}, fmt.Errorf("update balance to %d: %w", next, domain.ErrInvalidAmount)
	}

	if err := ctx.Err(); err != nil {
		return domain.Balance{}, err
	}

	file.Credits = next
	file.UpdatedAt = formatTime(s.clock.Now())
	if err := writeTOML(path, file); err != nil {
		return domain.Balance{}, err
	}

	return toBalance(file), nil
}

func (s *LedgerStore) SetBalance(ctx context.Context, userID domain.UserID, credits int64) (int64, error) {
	var previous int64
	_, err := s.UpdateBalance(ctx, userID, 0, func(current int64) (int64, error) {
		previous = current
		return credits, nil
	})
	if err != nil {
		return 0, err
	}
	return previous, nil
}

func (s *LedgerStore) AppendHistory(ctx context.Context, entry domain.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := userFilePath(s.root, ledgerCollection, entry.UserID)
	if err != nil {
		return err
	}

	mu := lockForPath(path)
	mu.Lock()
	defer mu.Unlock()

	file, exists, err := s.read(path)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("append history for %q: ledger file missing", entry.UserID)
	}

	file.History = append(file.History, historySchema{
		ID:           entry.ID,
		Type:         string(entry.Type),
		Change:       entry.Change,
		BalanceAfter: entry.BalanceAfter,
		Timestamp:    formatTime(entry.Timestamp),
	})

	return writeTOML(path, file)
}

// ListHistory returns entries newest first; limit <= 0 returns all of them.
func (s *LedgerStore) ListHistory(ctx context.Context, userID domain.UserID, limit int) ([]domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := userFilePath(s.root, ledgerCollection, userID)
	if err != nil {
		return nil, err
	}

	mu := lockForPath(path)
	mu.RLock()
	defer mu.RUnlock()

	file, _, err := s.read(path)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.HistoryEntry, 0, len(file.History))
	for _, h := range file.History {
		entries = append(entries, domain.HistoryEntry{
			ID:           h.ID,
			UserID:       userID,
			Type:         domain.EntryType(h.Type),
			Change:       h.Change,
			BalanceAfter: h.BalanceAfter,
			Timestamp:    parseTime(h.Timestamp),
		})
	}
	slices.Reverse(entries)

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

func (s *LedgerStore) read(path string) (ledgerFileSchema, bool, error) {
	var file ledgerFileSchema
	exists, err := readTOML(path, &file)
	if err != nil {
		return ledgerFileSchema{}, false, err
	}
	if err := validateVersion("ledger", file.Version); err != nil {
		return ledgerFileSchema{}, false, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	file.Version = versionOrCurrent(file.Version)

	return file, exists, nil
}

func toBalance(file ledgerFileSchema) domain.Balance {
	return domain.Balance{
		UserID:    domain.UserID(file.UserID),
		Credits:   file.Credits,
		UpdatedAt: parseTime(file.UpdatedAt),
	}
}
