package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/ports"
)

type draftRecord struct {
	ID            string             `json:"id"`
	Fields        domain.EmailFields `json:"fields"`
	Tone          string             `json:"tone"`
	GeneratedText string             `json:"generatedText"`
	Timestamp     time.Time          `json:"timestamp"`
}

type DraftStore struct {
	client redis.UniversalClient
}

var _ ports.DraftStore = (*DraftStore)(nil)

func NewDraftStore(client redis.UniversalClient) *DraftStore {
	return &DraftStore{client: client}
}

func (s *DraftStore) Append(ctx context.Context, draft domain.SavedDraft) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkUserID(draft.UserID); err != nil {
		return err
	}

	payload, err := json.Marshal(draftRecord{
		ID:            draft.ID,
		Fields:        draft.Fields,
		Tone:          draft.Tone,
		GeneratedText: draft.GeneratedText,
		Timestamp:     draft.Timestamp.UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	if err := s.client.RPush(ctx, draftsKey(draft.UserID), payload).Err(); err != nil {
		return fmt.Errorf("append draft: %w", err)
	}
	return nil
}
