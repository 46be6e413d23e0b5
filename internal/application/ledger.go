package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/logging"
	"github.com/bnema/fanthom/internal/ports"
	"github.com/google/uuid"
)

// Ledger owns per-user credit balances. Every balance mutation goes through a
// single store transaction and is followed by one history entry.
type Ledger struct {
	store   ports.LedgerStore
	clock   ports.Clock
	logger  *slog.Logger
	initial int64
	newID   func() string
}

func NewLedger(store ports.LedgerStore, clock ports.Clock, logger *slog.Logger) *Ledger {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &Ledger{
		store:   store,
		clock:   clock,
		logger:  logger,
		initial: domain.DefaultStartingCredits,
		newID:   uuid.NewString,
	}
}

// Balance returns the user's credits, creating the record with the default
// starting balance on first access.
func (l *Ledger) Balance(ctx context.Context, userID domain.UserID) (int64, error) {
	if err := validateUserID(userID); err != nil {
		return 0, err
	}

	balance, err := l.store.GetOrCreateBalance(ctx, userID, l.initial)
	if err != nil {
		return 0, storeFailure("get balance", err)
	}

	return balance.Credits, nil
}

// Charge atomically deducts amount and returns the new balance. A balance
// below amount yields *domain.InsufficientCreditsError and leaves it untouched.
func (l *Ledger) Charge(ctx context.Context, userID domain.UserID, amount int64, reason domain.EntryType) (int64, error) {
	if err := validateUserID(userID); err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, fmt.Errorf("charge %d credits: %w", amount, domain.ErrInvalidAmount)
	}
	if !reason.Valid() {
		return 0, fmt.Errorf("charge credits: empty reason: %w", domain.ErrInvalidEntryType)
	}

	balance, err := l.store.UpdateBalance(ctx, userID, l.initial, func(current int64) (int64, error) {
		if current < amount {
			return current, &domain.InsufficientCreditsError{UserID: userID, Balance: current, Required: amount}
		}
		return current - amount, nil
	})
	if err != nil {
		var insufficient *domain.InsufficientCreditsError
		if errors.As(err, &insufficient) {
			return insufficient.Balance, insufficient
		}
		return 0, storeFailure("charge", err)
	}

	l.appendHistory(ctx, userID, reason, -amount, balance.Credits)

	return balance.Credits, nil
}

// Initialize overwrites the balance with amount. The history entry records the
// difference from the previous value.
func (l *Ledger) Initialize(ctx context.Context, userID domain.UserID, amount int64) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	if amount < 0 {
		return fmt.Errorf("initialize %d credits: %w", amount, domain.ErrInvalidAmount)
	}

	previous, err := l.store.SetBalance(ctx, userID, amount)
	if err != nil {
		return storeFailure("initialize", err)
	}

	l.appendHistory(ctx, userID, domain.EntryTypeInitial, amount-previous, amount)

	return nil
}

// Grant adds credits as a manual top-up or a refund.
func (l *Ledger) Grant(ctx context.Context, userID domain.UserID, amount int64, entryType domain.EntryType) (int64, error) {
	if err := validateUserID(userID); err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, fmt.Errorf("grant %d credits: %w", amount, domain.ErrInvalidAmount)
	}
	if !entryType.IsGrant() {
		return 0, fmt.Errorf("grant credits as %q: %w", entryType, domain.ErrInvalidEntryType)
	}

	balance, err := l.store.UpdateBalance(ctx, userID, l.initial, func(current int64) (int64, error) {
		return current + amount, nil
	})
	if err != nil {
		return 0, storeFailure("grant", err)
	}

	l.appendHistory(ctx, userID, entryType, amount, balance.Credits)

	return balance.Credits, nil
}

// History returns up to limit entries, newest first. A limit <= 0 returns all.
func (l *Ledger) History(ctx context.Context, userID domain.UserID, limit int) ([]domain.HistoryEntry, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	entries, err := l.store.ListHistory(ctx, userID, limit)
	if err != nil {
		return nil, storeFailure("list history", err)
	}

	return entries, nil
}

// appendHistory runs after the balance commit. A failure leaves the committed
// balance in place and is only logged.
func (l *Ledger) appendHistory(ctx context.Context, userID domain.UserID, entryType domain.EntryType, change, balanceAfter int64) {
	entry := domain.HistoryEntry{
		ID:           l.newID(),
		UserID:       userID,
		Type:         entryType,
		Change:       change,
		BalanceAfter: balanceAfter,
		Timestamp:    l.clock.Now(),
	}

	if err := l.store.AppendHistory(ctx, entry); err != nil {
		l.logger.WarnContext(ctx, "append credit history",
			logging.UserID(string(userID)),
			slog.String("type", string(entryType)),
			slog.Int64("change", change),
			logging.Error(err),
		)
	}
}

// storeFailure wraps err as a *domain.StorageError unless the store rejected
// the user id itself, which no retry can fix.
func storeFailure(op string, err error) error {
	if errors.Is(err, domain.ErrInvalidUserID) {
		return err
	}
	return &domain.StorageError{Op: op, Err: err}
}

func validateUserID(userID domain.UserID) error {
	if userID == "" {
		return fmt.Errorf("empty user id: %w", domain.ErrInvalidUserID)
	}
	return nil
}
