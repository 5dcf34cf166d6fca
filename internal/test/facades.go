package test

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/engine/discount"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/usecase"
)

// SampleDraft returns a draft with one wooden table and one door.
func SampleDraft() *model.Draft {
	return &model.Draft{
		ID:   uuid.New(),
		Key:  usecase.DefaultDraftKey,
		Form: model.OrderForm{DoorType: model.DoorTypeWood},
		Tables: []model.Table{{
			ID:       uuid.New(),
			Selected: map[model.ComponentKind]model.ID{},
			Doors: []model.Door{{
				ID:       uuid.New(),
				Type:     model.DoorTypeWood,
				Quantity: 1,
				Wood:     &model.WoodDoor{},
			}},
		}},
	}
}

// ReferenceFacadeStub serves reference data and search results.
type ReferenceFacadeStub struct {
	ReferenceFn func(context.Context) (*model.ReferenceData, error)
	SearchFn    func(context.Context, string, string) ([]model.Product, error)
}

// Reference returns configured data or an empty bundle.
func (s ReferenceFacadeStub) Reference(ctx context.Context) (*model.ReferenceData, error) {
	if s.ReferenceFn != nil {
		return s.ReferenceFn(ctx)
	}
	return &model.ReferenceData{}, nil
}

// SearchProducts returns configured results or a single match.
func (s ReferenceFacadeStub) SearchProducts(ctx context.Context, session, query string) ([]model.Product, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, session, query)
	}
	return []model.Product{{ID: "1", Name: query}}, nil
}

// DraftFacadeStub simulates editing session operations. Every mutating call goes
// through MutateFn when set, so a test can observe the operation name.
type DraftFacadeStub struct {
	CreateFn    func(context.Context, string, model.DoorType) (*model.Draft, error)
	DraftFn     func(context.Context, uuid.UUID) (*model.Draft, error)
	DiscardFn   func(context.Context, uuid.UUID) error
	RecoverFn   func(context.Context, string) (*model.Draft, error)
	FormFn      func(context.Context, uuid.UUID, model.OrderForm) (*model.Draft, error)
	DoorFn      func(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, usecase.DoorPatch) (*model.Draft, error)
	SelectFn    func(context.Context, uuid.UUID, uuid.UUID, string, model.ID) (*model.Draft, error)
	ComponentFn func(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, model.ComponentKind, int, usecase.ComponentPatch) (*model.Draft, error)
	DiscountFn  func(context.Context, uuid.UUID, discount.Field, decimal.Decimal) (*model.Draft, error)
	MutateFn    func(op string) (*model.Draft, error)
}

func (s DraftFacadeStub) mutate(op string) (*model.Draft, error) {
	if s.MutateFn != nil {
		return s.MutateFn(op)
	}
	return SampleDraft(), nil
}

// CreateDraft returns a fresh sample draft keyed by key.
func (s DraftFacadeStub) CreateDraft(ctx context.Context, key string, doorType model.DoorType) (*model.Draft, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, key, doorType)
	}
	d := SampleDraft()
	if key != "" {
		d.Key = key
	}
	return d, nil
}

// Draft returns the draft with given id.
func (s DraftFacadeStub) Draft(ctx context.Context, id uuid.UUID) (*model.Draft, error) {
	if s.DraftFn != nil {
		return s.DraftFn(ctx, id)
	}
	d := SampleDraft()
	d.ID = id
	return d, nil
}

// DiscardDraft ends the session.
func (s DraftFacadeStub) DiscardDraft(ctx context.Context, id uuid.UUID) error {
	if s.DiscardFn != nil {
		return s.DiscardFn(ctx, id)
	}
	return nil
}

// RecoverDraft returns the draft saved under key.
func (s DraftFacadeStub) RecoverDraft(ctx context.Context, key string) (*model.Draft, error) {
	if s.RecoverFn != nil {
		return s.RecoverFn(ctx, key)
	}
	d := SampleDraft()
	d.Key = key
	return d, nil
}

// UpdateForm applies order-level fields.
func (s DraftFacadeStub) UpdateForm(ctx context.Context, id uuid.UUID, form model.OrderForm) (*model.Draft, error) {
	if s.FormFn != nil {
		return s.FormFn(ctx, id, form)
	}
	return s.mutate("form")
}

// AddTable appends a table.
func (s DraftFacadeStub) AddTable(context.Context, uuid.UUID) (*model.Draft, error) {
	return s.mutate("add-table")
}

// RemoveTable deletes a table.
func (s DraftFacadeStub) RemoveTable(context.Context, uuid.UUID, uuid.UUID) (*model.Draft, error) {
	return s.mutate("remove-table")
}

// SelectProduct records a table-level selection.
func (s DraftFacadeStub) SelectProduct(ctx context.Context, id, tableID uuid.UUID, kind string, product model.ID) (*model.Draft, error) {
	if s.SelectFn != nil {
		return s.SelectFn(ctx, id, tableID, kind, product)
	}
	return s.mutate("select")
}

// AddDoor appends a door.
func (s DraftFacadeStub) AddDoor(context.Context, uuid.UUID, uuid.UUID) (*model.Draft, error) {
	return s.mutate("add-door")
}

// UpdateDoor applies a door patch.
func (s DraftFacadeStub) UpdateDoor(ctx context.Context, id, tableID, doorID uuid.UUID, patch usecase.DoorPatch) (*model.Draft, error) {
	if s.DoorFn != nil {
		return s.DoorFn(ctx, id, tableID, doorID, patch)
	}
	return s.mutate("update-door")
}

// RemoveDoor deletes a door.
func (s DraftFacadeStub) RemoveDoor(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) (*model.Draft, error) {
	return s.mutate("remove-door")
}

// AddComponent appends a component row.
func (s DraftFacadeStub) AddComponent(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, model.ComponentKind) (*model.Draft, error) {
	return s.mutate("add-component")
}

// UpdateComponent applies a component patch.
func (s DraftFacadeStub) UpdateComponent(ctx context.Context, id, tableID, doorID uuid.UUID, kind model.ComponentKind, index int, patch usecase.ComponentPatch) (*model.Draft, error) {
	if s.ComponentFn != nil {
		return s.ComponentFn(ctx, id, tableID, doorID, kind, index, patch)
	}
	return s.mutate("update-component")
}

// EditDiscount applies a discount edit.
func (s DraftFacadeStub) EditDiscount(ctx context.Context, id uuid.UUID, field discount.Field, value decimal.Decimal) (*model.Draft, error) {
	if s.DiscountFn != nil {
		return s.DiscountFn(ctx, id, field, value)
	}
	return s.mutate("discount")
}

// OrderFacadeStub controls calculation and submission outcomes.
type OrderFacadeStub struct {
	CalculateFn func(context.Context, uuid.UUID) (*model.Draft, error)
	SubmitFn    func(context.Context, uuid.UUID) (json.RawMessage, error)
}

// Calculate returns the draft with a fixed total.
func (s OrderFacadeStub) Calculate(ctx context.Context, id uuid.UUID) (*model.Draft, error) {
	if s.CalculateFn != nil {
		return s.CalculateFn(ctx, id)
	}
	d := SampleDraft()
	d.ID = id
	d.Totals.TotalSum = decimal.NewFromInt(1000)
	return d, nil
}

// Submit returns a created order body.
func (s OrderFacadeStub) Submit(ctx context.Context, id uuid.UUID) (json.RawMessage, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, id)
	}
	return json.RawMessage(`{"id":1}`), nil
}

// OrderDeskFacadeStub aggregates facade dependencies for HTTP layer tests.
type OrderDeskFacadeStub struct {
	ReferenceFacadeStub
	DraftFacadeStub
	OrderFacadeStub
}
