package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/bnema/fanthom/internal/domain"
	"github.com/bnema/fanthom/internal/ports"
)

type draftDocument struct {
	Fields        domain.EmailFields `firestore:"fields"`
	Tone          string             `firestore:"tone"`
	GeneratedText string             `firestore:"generatedText"`
	Timestamp     time.Time          `firestore:"timestamp"`
}

type DraftStore struct {
	client *firestore.Client
}

var _ ports.DraftStore = (*DraftStore)(nil)

func NewDraftStore(client *firestore.Client) *DraftStore {
	return &DraftStore{client: client}
}

func (s *DraftStore) Append(ctx context.Context, draft domain.SavedDraft) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	user, err := userDoc(s.client, draft.UserID)
	if err != nil {
		return err
	}

	if _, err := user.Collection(draftsCollection).Doc(draft.ID).Create(ctx, toDraftDocument(draft)); err != nil {
		return fmt.Errorf("append draft: %w", err)
	}
	return nil
}

func toDraftDocument(draft domain.SavedDraft) draftDocument {
	return draftDocument{
		Fields:        draft.Fields,
		Tone:          draft.Tone,
		GeneratedText: draft.GeneratedText,
		Timestamp:     draft.Timestamp.UTC(),
	}
}
