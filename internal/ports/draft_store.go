package ports

import (
	"context"

	"github.com/bnema/fanthom/internal/domain"
)

type DraftStore interface {
	Append(ctx context.Context, draft domain.SavedDraft) error
}
