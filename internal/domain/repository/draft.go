package repository

import (
	"context"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
)

// DraftRepository persists in-progress orders under their recovery key.
type DraftRepository interface {
	Save(ctx context.Context, draft *model.Draft) error
	GetByKey(ctx context.Context, key string) (*model.Draft, error)
	Delete(ctx context.Context, key string) error
}
