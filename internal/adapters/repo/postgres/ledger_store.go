package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/ports"
)

type LedgerStore struct {
	db    *gorm.DB
	clock ports.Clock
}

var _ ports.LedgerStore = (*LedgerStore)(nil)

func NewLedgerStore(db *gorm.DB, clock ports.Clock) *LedgerStore {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &LedgerStore{db: db, clock: clock}
}

func (s *LedgerStore) GetOrCreateBalance(ctx context.Context, userID domain.UserID, initial int64) (domain.Balance, error) {
	return s.UpdateBalance(ctx, userID, initial, nil)
}

// UpdateBalance inserts the row if missing, locks it and applies fn. A nil fn
// leaves the stored value untouched.
func (s *LedgerStore) UpdateBalance(ctx context.Context, userID domain.UserID, initial int64, fn ports.BalanceUpdate) (domain.Balance, error) {
	if err := ctx.Err(); err != nil {
		return domain.Balance{}, err
	}
	if err := checkUserID(userID); err != nil {
		return domain.Balance{}, err
	}

	var row creditBalance
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := creditBalance{UserID: string(userID), Credits: initial, UpdatedAt: s.clock.Now()}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return fmt.Errorf("seed balance: %w", err)
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", string(userID)).
			First(&row).Error; err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		if fn == nil {
			return nil
		}

		next, err := fn(row.Credits)
		if err != nil {
			return err
		}
		if next < 0 {
			return fmt.Errorf("update balance to %d: %w", next, domain.ErrInvalidAmount)
		}

		row.Credits = next
		row.UpdatedAt = s.clock.Now()
		if err := tx.Model(&creditBalance{}).
			Where("user_id = ?", string(userID)).
			Updates(map[string]any{"credits": row.Credits, "updated_at": row.UpdatedAt}).Error; err != nil {
			return fmt.Errorf("write balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Balance{}, err
	}

	return domain.Balance{UserID: userID, Credits: row.Credits, UpdatedAt: row.UpdatedAt.UTC()}, nil
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
	if err := checkUserID(entry.UserID); err != nil {
		return err
	}

	row := toHistoryRow(entry)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
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

	query := s.db.WithContext(ctx).
		Where("user_id = ?", string(userID)).
		Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []creditHistory
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	entries := make([]domain.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, fromHistoryRow(row))
	}
	return entries, nil
}
