package application

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/ports"
	"github.com/stretchr/testify/mock"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

// memLedgerStore serializes all writes behind one mutex, which is enough to
// exercise the ledger's read-check-write contract.
type memLedgerStore struct {
	mu       sync.Mutex
	balances map[domain.UserID]int64
	history  []domain.HistoryEntry
}

var _ ports.LedgerStore = (*memLedgerStore)(nil)

func newMemLedgerStore() *memLedgerStore {
	return &memLedgerStore{balances: map[domain.UserID]int64{}}
}

func (s *memLedgerStore) GetOrCreateBalance(_ context.Context, userID domain.UserID, initial int64) (domain.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	credits, ok := s.balances[userID]
	if !ok {
		credits = initial
		s.balances[userID] = credits
	}
	return domain.Balance{UserID: userID, Credits: credits}, nil
}

func (s *memLedgerStore) UpdateBalance(_ context.Context, userID domain.UserID, initial int64, fn ports.BalanceUpdate) (domain.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.balances[userID]
	if !ok {
		current = initial
	}
	next, err := fn(current)
	if err != nil {
		return domain.Balance{}, err
	}
	s.balances[userID] = next
	return domain.Balance{UserID: userID, Credits: next}, nil
}

func (s *memLedgerStore) SetBalance(_ context.Context, userID domain.UserID, credits int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.balances[userID]
	s.balances[userID] = credits
	return previous, nil
}

func (s *memLedgerStore) AppendHistory(_ context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, entry)
	return nil
}

func (s *memLedgerStore) ListHistory(_ context.Context, userID domain.UserID, limit int) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.HistoryEntry
	for _, entry := range s.history {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memLedgerStore) balance(userID domain.UserID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[userID]
}
