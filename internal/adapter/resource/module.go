package resource

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/config"
)

// Module exposes resource API client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.ResourceAPIAddress, p.Config.APIToken, p.Config.RequestTimeout, p.Logger)
}
