package usecase

import (
	"context"
	"log/slog"
	"sync"

	"go.uber.org/fx"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/adapter/resource"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/config"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/repository"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/metrics"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/search"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		newReferenceUseCase,
		newDraftUseCase,
		newProductSearch,
	),
	fx.Invoke(registerEviction),
)

type referenceParams struct {
	fx.In

	Client  resource.Client
	Cache   repository.ReferenceCache
	Config  *config.Config
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

func newReferenceUseCase(p referenceParams) *ReferenceUseCase {
	return NewReferenceUseCase(p.Client, p.Cache, p.Config.ReferenceCacheTTL, p.Metrics, p.Logger)
}

type draftParams struct {
	fx.In

	Reference *ReferenceUseCase
	Drafts    repository.DraftRepository
	Saver     Autosaver
	Client    resource.Client
	Config    *config.Config
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

func newDraftUseCase(p draftParams) *DraftUseCase {
	return NewDraftUseCase(DraftDeps{
		Reference:         p.Reference,
		Drafts:            p.Drafts,
		Saver:             p.Saver,
		API:               p.Client,
		Observer:          p.Metrics,
		FallbackPriceType: model.ID(p.Config.DefaultPriceType),
		Logger:            p.Logger,
	})
}

type searchParams struct {
	fx.In

	Client  resource.Client
	Config  *config.Config
	Metrics *metrics.Metrics
}

func newProductSearch(p searchParams) *search.Searcher {
	return NewProductSearch(p.Client, p.Config.SearchDebounce, p.Metrics)
}

type evictionParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Drafts    *DraftUseCase
	Config    *config.Config
}

func registerEviction(p evictionParams) {
	var (
		cancel context.CancelFunc
		wg     sync.WaitGroup
	)
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var runCtx context.Context
			runCtx, cancel = context.WithCancel(context.WithoutCancel(ctx))
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.Drafts.RunEviction(runCtx, p.Config.SessionIdleTimeout)
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			if cancel != nil {
				cancel()
			}
			wg.Wait()
			return nil
		},
	})
}
