package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/repository"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type draftRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Drafts returns the draft repository.
func (s *Storage) Drafts() repository.DraftRepository {
	return &draftRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS order_drafts (
            key TEXT PRIMARY KEY,
            id UUID NOT NULL,
            payload JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_order_drafts_updated ON order_drafts(updated_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- DraftRepository implementation ---

// Save upserts the snapshot. An older snapshot never overwrites a newer one.
func (r *draftRepository) Save(ctx context.Context, draft *model.Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	const query = `INSERT INTO order_drafts (key, id, payload, updated_at)
                   VALUES ($1, $2, $3, $4)
                   ON CONFLICT (key) DO UPDATE
                   SET id = EXCLUDED.id, payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
                   WHERE order_drafts.updated_at <= EXCLUDED.updated_at`
	updated := draft.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	tag, err := r.storage.pool.Exec(ctx, query, draft.Key, draft.ID, payload, updated)
	if err != nil {
		return fmt.Errorf("save draft %q: %w", draft.Key, err)
	}
	if tag.RowsAffected() == 0 {
		r.storage.logger.Debug("stale draft snapshot skipped", slog.String("key", draft.Key))
	}
	return nil
}

func (r *draftRepository) GetByKey(ctx context.Context, key string) (*model.Draft, error) {
	const query = `SELECT payload FROM order_drafts WHERE key=$1`
	var payload []byte
	if err := r.storage.pool.QueryRow(ctx, query, key).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("draft %q: %w", key, domainErrors.ErrNotFound)
		}
		return nil, err
	}
	var draft model.Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("decode draft %q: %w", key, err)
	}
	return &draft, nil
}

// Delete removes the saved draft. Deleting a missing key is not an error.
func (r *draftRepository) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM order_drafts WHERE key=$1`
	_, err := r.storage.pool.Exec(ctx, query, key)
	return err
}

// PurgeOlderThan removes drafts untouched since cutoff and reports how many went.
func (s *Storage) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	err := s.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM order_drafts WHERE updated_at < $1`, cutoff)
		if err != nil {
			return err
		}
		removed = tag.RowsAffected()
		return nil
	})
	return removed, err
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
