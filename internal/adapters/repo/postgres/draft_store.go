package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/ports"
)

type DraftStore struct {
	db *gorm.DB
}

var _ ports.DraftStore = (*DraftStore)(nil)

func NewDraftStore(db *gorm.DB) *DraftStore {
	return &DraftStore{db: db}
}

func (s *DraftStore) Append(ctx context.Context, draft domain.SavedDraft) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkUserID(draft.UserID); err != nil {
		return err
	}

	row := toDraftRow(draft)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("append draft: %w", err)
	}
	return nil
}
