package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/ports"
)

const (
	fieldCredits   = "credits"
	fieldUpdatedAt = "updated_at"
)

type historyRecord struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Change       int64     `json:"change"`
	BalanceAfter int64     `json:"balanceAfter"`
	Timestamp    time.Time `json:"timestamp"`
}

// LedgerStore uses optimistic transactions: a write that races another
// client's write on the same key is retried from a fresh read.
type LedgerStore struct {
	client redis.UniversalClient
	clock  ports.Clock
}

var _ ports.LedgerStore = (*LedgerStore)(nil)

func NewLedgerStore(client redis.UniversalClient, clock ports.Clock) *LedgerStore {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &LedgerStore{client: client, clock: clock}
}

func (s *LedgerStore) GetOrCreateBalance(ctx context.Context, userID domain.UserID, initial int64) (domain.Balance, error) {
	return s.UpdateBalance(ctx, userID, initial, nil)
}

func (s *LedgerStore) UpdateBalance(ctx context.Context, userID domain.UserID, initial int64, fn ports.BalanceUpdate) (domain.Balance, error) {
	if err := ctx.Err(); err != nil {
		return domain.Balance{}, err
	}
	if err := checkUserID(userID); err != nil {
		return domain.Balance{}, err
	}

	key := balanceKey(userID)
	for range maxTxRetries {
		var result domain.Balance
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			values, err := tx.HGetAll(ctx, key).Result()
			if err != nil {
				return fmt.Errorf("read balance: %w", err)
			}

			current, updatedAt, exists, err := decodeBalance(values)
			if err != nil {
				return err
			}
			if !exists {
				current = initial
			}

			next := current
			if fn != nil {
				if next, err = fn(current); err != nil {
					return err
				}
				if next < 0 {
					return fmt.Errorf("update balance to %d: %w", next, domain.ErrInvalidAmount)
				}
			} else if exists {
				result = domain.Balance{UserID: userID, Credits: current, UpdatedAt: updatedAt}
				return nil
			}

			now := s.clock.Now().UTC()
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.HSet(ctx, key, fieldCredits, next, fieldUpdatedAt, now.Format(time.RFC3339Nano))
				return nil
			})
			if err != nil {
				return err
			}

			result = domain.Balance{UserID: userID, Credits: next, UpdatedAt: now}
			return nil
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return domain.Balance{}, err
		}
		return result, nil
	}

	return domain.Balance{}, fmt.Errorf("update balance for %q: %w", userID, ErrContention)
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

// AppendHistory pushes to the head of the list so LRANGE reads newest first.
func (s *LedgerStore) AppendHistory(ctx context.Context, entry domain.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkUserID(entry.UserID); err != nil {
		return err
	}

	payload, err := json.Marshal(historyRecord{
		ID:           entry.ID,
		Type:         string(entry.Type),
		Change:       entry.Change,
		BalanceAfter: entry.BalanceAfter,
		Timestamp:    entry.Timestamp.UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	if err := s.client.LPush(ctx, historyKey(entry.UserID), payload).Err(); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (s *LedgerStore) ListHistory(ctx context.Context, userID domain.UserID, limit int) ([]domain.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkUserID(userID); err != nil {
		return nil, err
	}

	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	raw, err := s.client.LRange(ctx, historyKey(userID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	entries := make([]domain.HistoryEntry, 0, len(raw))
	for _, item := range raw {
		var rec historyRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("decode history: %w", err)
		}
		entries = append(entries, domain.HistoryEntry{
			ID:           rec.ID,
			UserID:       userID,
			Type:         domain.EntryType(rec.Type),
			Change:       rec.Change,
			BalanceAfter: rec.BalanceAfter,
			Timestamp:    rec.Timestamp.UTC(),
		})
	}

	return entries, nil
}

func decodeBalance(values map[string]string) (credits int64, updatedAt time.Time, exists bool, err error) {
	raw, ok := values[fieldCredits]
	if !ok {
		return 0, time.Time{}, false, nil
	}

	credits, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, time.Time{}, false, fmt.Errorf("decode balance %q: %w", raw, err)
	}

	if ts := values[fieldUpdatedAt]; ts != "" {
		if parsed, perr := time.Parse(time.RFC3339Nano, ts); perr == nil {
			updatedAt = parsed
		}
	}

	return credits, updatedAt, true, nil
}
