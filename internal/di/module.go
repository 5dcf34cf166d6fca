package di

import (
	"go.uber.org/fx"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/adapter/cache"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/adapter/resource"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/app"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/config"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/logger"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/metrics"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/server/http/router"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/storage/postgres"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		postgres.Module,
		fx.Provide(func(s *postgres.Storage) router.HealthChecker { return s }),
		resource.Module,
		cache.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
