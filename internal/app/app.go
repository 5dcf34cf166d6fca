package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/config"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/repository"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/metrics"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/server/http/handlers"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/usecase"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewOrderDeskFacade,
		newHTTPServer,
		newDraftSaver,
		fx.Annotate(func(f *OrderDeskFacade) handlers.OrderDeskFacade { return f }),
		fx.Annotate(func(s *worker.DraftSaver) usecase.Autosaver { return s }),
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: p.Config.RequestTimeout,
	}
}

type workerParams struct {
	fx.In

	Drafts  repository.DraftRepository
	Metrics *metrics.Metrics
	Config  *config.Config
	Logger  *slog.Logger
}

func newDraftSaver(p workerParams) *worker.DraftSaver {
	return worker.NewDraftSaver(
		p.Drafts,
		p.Metrics,
		p.Config.AutosaveWorkers,
		p.Config.AutosaveQueue,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.DraftSaver
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting orderdesk", slog.String("addr", p.Server.Addr))
			p.Worker.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			p.Worker.Stop()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("orderdesk stopped")
			return nil
		},
	})
}
