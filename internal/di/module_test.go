package di

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/adapter/resource"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/app"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/config"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/repository"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/storage/postgres"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/test"
)

type resourceClientStub struct {
	*test.ResourceAPIStub
}

func (resourceClientStub) Create(context.Context, string, any) (json.RawMessage, error) {
	return nil, nil
}

func (resourceClientStub) Update(context.Context, string, model.ID, any) (json.RawMessage, error) {
	return nil, nil
}

func (resourceClientStub) Delete(context.Context, string, model.ID) error {
	return nil
}

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:         ":0",
		DatabaseURI:        "postgres://stub",
		ResourceAPIAddress: "http://localhost",
		ReferenceCacheTTL:  time.Minute,
		RequestTimeout:     time.Second,
		AutosaveWorkers:    1,
		AutosaveQueue:      1,
		ShutdownTimeout:    time.Millisecond,
		DefaultPriceType:   "retail",
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	drafts := test.NewDraftRepositoryStub()
	client := resourceClientStub{ResourceAPIStub: &test.ResourceAPIStub{}}

	var facade *app.OrderDeskFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.DraftRepository(drafts)),
			fx.Replace(resource.Client(client)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected order desk facade instance")
	}
}
