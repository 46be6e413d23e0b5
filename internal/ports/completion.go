package ports

import (
	"context"

	"github.com/bnema/fanthom/internal/domain"
)

type CompletionService interface {
	Provider() string
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}
