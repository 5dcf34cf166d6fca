package cache

import (
	"context"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/config"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/repository"
)

// Module provides the reference cache. Without a redis address every lookup misses.
var Module = fx.Provide(newReferenceCache)

type cacheParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newReferenceCache(p cacheParams) repository.ReferenceCache {
	if p.Config.RedisAddress == "" {
		p.Logger.Info("reference cache disabled")
		return Noop{}
	}

	rdb := redis.NewClient(&redis.Options{Addr: p.Config.RedisAddress})
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				p.Logger.Warn("redis unavailable, reference cache degrades to direct fetch", slog.Any("error", err))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return rdb.Close()
		},
	})
	return NewRedis(rdb)
}
