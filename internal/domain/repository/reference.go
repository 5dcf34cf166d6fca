package repository

import (
	"context"
	"time"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
)

// ReferenceCache keeps a loaded reference bundle between requests.
// Get reports a miss with domain ErrNotFound.
type ReferenceCache interface {
	Get(ctx context.Context) (*model.ReferenceData, error)
	Set(ctx context.Context, data *model.ReferenceData, ttl time.Duration) error
}
