package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/ports"
)

// maxTxAttempts bounds how often a contended balance transaction is rerun.
const maxTxAttempts = 16

type balanceDocument struct {
	Credits   int64     `firestore:"credits"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

type historyDocument struct {
	Type         string    `firestore:"type"`
	Change       int64     `firestore:"change"`
	BalanceAfter int64     `firestore:"balanceAfter"`
	Timestamp    time.Time `firestore:"timestamp"`
}

// LedgerStore serializes balance updates with Firestore transactions, which
// retry on contention.
type LedgerStore struct {
	client *firestore.Client
	clock  ports.Clock
}

var _ ports.LedgerStore = (*LedgerStore)(nil)

func NewLedgerStore(client *firestore.Client, clock ports.Clock) *LedgerStore {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &LedgerStore{client: client, clock: clock}
}

func (s *LedgerStore) balanceRef(userID domain.UserID) (*firestore.DocumentRef, error) {
	user, err := userDoc(s.client, userID)
	if err != nil {
		return nil, err
	}
	return user.Collection(creditsCollection).Doc(balanceDoc), nil
}

func (s *LedgerStore) GetOrCreateBalance(ctx context.Context, userID domain.UserID, initial int64) (domain.Balance, error) {
	return s.UpdateBalance(ctx, userID, initial, nil)
}

// UpdateBalance runs fn inside a transaction. A nil fn only materializes the
// record.
func (s *LedgerStore) UpdateBalance(ctx context.Context, userID domain.UserID, initial int64, fn ports.BalanceUpdate) (domain.Balance, error) {
	if err := ctx.Err(); err != nil {
		return domain.Balance{}, err
	}

	ref, err := s.balanceRef(userID)
	if err != nil {
		return domain.Balance{}, err
	}

	var result balanceDocument
	err = s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		doc := balanceDocument{Credits: initial}
		exists := true
		switch {
		case isNotFound(err):
			exists = false
		case err != nil:
			return fmt.Errorf("read balance: %w", err)
		default:
			if err := snap.DataTo(&doc); err != nil {
				return fmt.Errorf("decode balance: %w", err)
			}
		}

		if fn == nil {
			result = doc
			if exists {
				return nil
			}
			result.UpdatedAt = s.clock.Now()
			return tx.Set(ref, result)
		}

		next, err := fn(doc.Credits)
		if err != nil {
			return err
		}
		if next < 0 {
			return fmt.Errorf("update balance to %d: %w", next, domain.ErrInvalidAmount)
		}

		result = balanceDocument{Credits: next, UpdatedAt: s.clock.Now()}
		return tx.Set(ref, result)
	}, firestore.MaxAttempts(maxTxAttempts))
	if err != nil {
		return domain.Balance{}, err
	}

	return domain.Balance{UserID: userID, Credits: result.Credits, UpdatedAt: result.UpdatedAt.UTC()}, nil
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

	user, err := userDoc(s.client, entry.UserID)
	if err != nil {
		return err
	}

	_, err = user.Collection(historyCollection).Doc(entry.ID).Create(ctx, toHistoryDocument(entry))
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (s *LedgerStore) ListHistory(ctx context.Context, userID domain.UserID, limit int) ([]domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := userDoc(s.client, userID)
	if err != nil {
		return nil, err
	}

	query := user.Collection(historyCollection).OrderBy("timestamp", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	entries := make([]domain.HistoryEntry, 0, len(snaps))
	for _, snap := range snaps {
		var doc historyDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode history %s: %w", snap.Ref.ID, err)
		}
		entries = append(entries, fromHistoryDocument(userID, snap.Ref.ID, doc))
	}

	return entries, nil
}

func toHistoryDocument(entry domain.HistoryEntry) historyDocument {
	return historyDocument{
		Type:         string(entry.Type),
		Change:       entry.Change,
		BalanceAfter: entry.BalanceAfter,
		Timestamp:    entry.Timestamp.UTC(),
	}
}

func fromHistoryDocument(userID domain.UserID, id string, doc historyDocument) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:           id,
		UserID:       userID,
		Type:         domain.EntryType(doc.Type),
		Change:       doc.Change,
		BalanceAfter: doc.BalanceAfter,
		Timestamp:    doc.Timestamp.UTC(),
	}
}
