package app

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/engine/discount"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/search"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/usecase"
)

// OrderDeskFacade exposes reference, draft and order use cases behind a single API.
type OrderDeskFacade struct {
	reference *usecase.ReferenceUseCase
	drafts    *usecase.DraftUseCase
	search    *search.Searcher
}

// NewOrderDeskFacade constructs OrderDeskFacade.
func NewOrderDeskFacade(reference *usecase.ReferenceUseCase, drafts *usecase.DraftUseCase, searcher *search.Searcher) *OrderDeskFacade {
	return &OrderDeskFacade{reference: reference, drafts: drafts, search: searcher}
}

func (f *OrderDeskFacade) Reference(ctx context.Context) (*model.ReferenceData, error) {
	return f.reference.Load(ctx)
}

func (f *OrderDeskFacade) SearchProducts(ctx context.Context, session, query string) ([]model.Product, error) {
	return f.search.Search(ctx, session, query)
}

func (f *OrderDeskFacade) CreateDraft(ctx context.Context, key string, doorType model.DoorType) (*model.Draft, error) {
	return f.drafts.Create(ctx, key, doorType)
}

func (f *OrderDeskFacade) Draft(ctx context.Context, id uuid.UUID) (*model.Draft, error) {
	return f.drafts.Get(ctx, id)
}

func (f *OrderDeskFacade) DiscardDraft(ctx context.Context, id uuid.UUID) error {
	return f.drafts.Discard(ctx, id)
}

func (f *OrderDeskFacade) RecoverDraft(ctx context.Context, key string) (*model.Draft, error) {
	return f.drafts.Recover(ctx, key)
}

func (f *OrderDeskFacade) UpdateForm(ctx context.Context, id uuid.UUID, form model.OrderForm) (*model.Draft, error) {
	return f.drafts.UpdateForm(ctx, id, form)
}

func (f *OrderDeskFacade) AddTable(ctx context.Context, id uuid.UUID) (*model.Draft, error) {
	return f.drafts.AddTable(ctx, id)
}

func (f *OrderDeskFacade) RemoveTable(ctx context.Context, id, tableID uuid.UUID) (*model.Draft, error) {
	return f.drafts.RemoveTable(ctx, id, tableID)
}

func (f *OrderDeskFacade) SelectProduct(ctx context.Context, id, tableID uuid.UUID, kind string, product model.ID) (*model.Draft, error) {
	return f.drafts.Select(ctx, id, tableID, kind, product)
}

func (f *OrderDeskFacade) AddDoor(ctx context.Context, id, tableID uuid.UUID) (*model.Draft, error) {
	return f.drafts.AddDoor(ctx, id, tableID)
}

func (f *OrderDeskFacade) UpdateDoor(ctx context.Context, id, tableID, doorID uuid.UUID, patch usecase.DoorPatch) (*model.Draft, error) {
	return f.drafts.UpdateDoor(ctx, id, tableID, doorID, patch)
}

func (f *OrderDeskFacade) RemoveDoor(ctx context.Context, id, tableID, doorID uuid.UUID) (*model.Draft, error) {
	return f.drafts.RemoveDoor(ctx, id, tableID, doorID)
}

func (f *OrderDeskFacade) AddComponent(ctx context.Context, id, tableID, doorID uuid.UUID, kind model.ComponentKind) (*model.Draft, error) {
	return f.drafts.AddComponent(ctx, id, tableID, doorID, kind)
}

func (f *OrderDeskFacade) UpdateComponent(ctx context.Context, id, tableID, doorID uuid.UUID, kind model.ComponentKind, index int, patch usecase.ComponentPatch) (*model.Draft, error) {
	return f.drafts.UpdateComponent(ctx, id, tableID, doorID, kind, index, patch)
}

func (f *OrderDeskFacade) EditDiscount(ctx context.Context, id uuid.UUID, field discount.Field, value decimal.Decimal) (*model.Draft, error) {
	return f.drafts.EditDiscount(ctx, id, field, value)
}

func (f *OrderDeskFacade) Calculate(ctx context.Context, id uuid.UUID) (*model.Draft, error) {
	return f.drafts.Calculate(ctx, id)
}

func (f *OrderDeskFacade) Submit(ctx context.Context, id uuid.UUID) (json.RawMessage, error) {
	return f.drafts.Submit(ctx, id)
}
