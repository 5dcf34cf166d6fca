package postgres

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/config"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.Factory { return s },
		func(s *Storage) repository.DraftRepository { return s.Drafts() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Storage   *Storage
	Config    *config.Config
	Logger    *slog.Logger
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.Config.DraftRetention <= 0 {
				return nil
			}
			removed, err := p.Storage.PurgeOlderThan(ctx, time.Now().Add(-p.Config.DraftRetention))
			if err != nil {
				p.Logger.Warn("draft purge failed", slog.String("error", err.Error()))
				return nil
			}
			if removed > 0 {
				p.Logger.Info("purged stale drafts", slog.Int64("count", removed))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Storage.Close()
			return nil
		},
	})
}
