package ports

import (
	"context"

	"github.com/bnema/fanthom/internal/domain"
)

// BalanceUpdate receives the committed balance inside a store transaction and
// returns the value to write. Returning an error aborts without writing.
type BalanceUpdate func(current int64) (int64, error)

// LedgerStore persists per-user balances and their history. UpdateBalance must
// run fn atomically with respect to every other write for the same user and
// create the record with initial credits when it is missing.
type LedgerStore interface {
	GetOrCreateBalance(ctx context.Context, userID domain.UserID, initial int64) (domain.Balance, error)
	UpdateBalance(ctx context.Context, userID domain.UserID, initial int64, fn BalanceUpdate) (domain.Balance, error)
	SetBalance(ctx context.Context, userID domain.UserID, credits int64) (previous int64, err error)
	AppendHistory(ctx context.Context, entry domain.HistoryEntry) error
	ListHistory(ctx context.Context, userID domain.UserID, limit int) ([]domain.HistoryEntry, error)
}
