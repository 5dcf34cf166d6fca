package usecase_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	testhelpers "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/test"
	usecase "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func referenceLists() map[string][]json.RawMessage {
	return map[string][]json.RawMessage{
		"products": {
			json.RawMessage(`{"id":10,"name":"Door A","price":"1200"}`),
			json.RawMessage(`{"id":20,"name":"Casing B","price":"50"}`),
		},
		"attribute-settings": {
			json.RawMessage(`{"id":1,"casing_size":"7","crown_size":"10","casing_formula":false}`),
			json.RawMessage(`{"id":2,"casing_size":"99","crown_size":"99","casing_formula":true}`),
		},
		"casing-ranges": {
			json.RawMessage(`{"id":1,"min_size":"0","max_size":"2100","casing_size":"2150"}`),
			json.RawMessage(`{"id":2,"min_size":"2101","max_size":"3000","casing_size":"2500"}`),
		},
		"beadings": {
			json.RawMessage(`{"id":1,"name":"Main","type":"main"}`),
			json.RawMessage(`{"id":2,"name":"Extra","type":"additional"}`),
			json.RawMessage(`{"id":3,"name":"Other","type":"unknown"}`),
		},
		"colors": {json.RawMessage(`{"id":3,"name":"Walnut"}`)},
		"price-settings": {
			json.RawMessage(`{"id":1,"name":"Door A","price_type":"5"}`),
		},
	}
}

type draftFixture struct {
	uc       *usecase.DraftUseCase
	api      *testhelpers.ResourceAPIStub
	drafts   *testhelpers.DraftRepositoryStub
	saver    *testhelpers.AutosaverStub
	observer *testhelpers.ObserverStub
}

func newDraftFixture(t *testing.T) draftFixture {
	t.Helper()
	api := &testhelpers.ResourceAPIStub{
		Lists: referenceLists(),
		CalcFn: func(context.Context, any) (model.Totals, error) {
			return model.Totals{DoorPrice: decimal.NewFromInt(1000), TotalSum: decimal.NewFromInt(1000)}, nil
		},
	}
	observer := &testhelpers.ObserverStub{}
	drafts := testhelpers.NewDraftRepositoryStub()
	saver := &testhelpers.AutosaverStub{}
	logger := discardLogger()

	reference := usecase.NewReferenceUseCase(api, &testhelpers.ReferenceCacheStub{}, time.Minute, observer, logger)
	uc := usecase.NewDraftUseCase(usecase.DraftDeps{
		Reference:         reference,
		Drafts:            drafts,
		Saver:             saver,
		API:               api,
		Observer:          observer,
		FallbackPriceType: "1",
		Logger:            logger,
	})
	return draftFixture{uc: uc, api: api, drafts: drafts, saver: saver, observer: observer}
}

// create starts a wooden draft and returns it together with its first table and door ids.
func (f draftFixture) create(t *testing.T) (*model.Draft, uuid.UUID, uuid.UUID) {
	t.Helper()
	draft, err := f.uc.Create(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, draft.Tables, 1)
	require.Len(t, draft.Tables[0].Doors, 1)
	return draft, draft.Tables[0].ID, draft.Tables[0].Doors[0].ID
}

func completeForm() model.OrderForm {
	return model.OrderForm{
		Store:        "1",
		Organization: "2",
		Branch:       "3",
		SalesChannel: "4",
		Agent:        "5",
		Seller:       "6",
		OrderDate:    "2026-10-17",
		DoorType:     model.DoorTypeWood,
	}
}
