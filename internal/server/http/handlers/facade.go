package handlers

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/engine/discount"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/usecase"
)

// ReferenceFacade serves reference data and product search.
type ReferenceFacade interface {
	Reference(ctx context.Context) (*model.ReferenceData, error)
	SearchProducts(ctx context.Context, session, query string) ([]model.Product, error)
}

// DraftFacade describes the editing session operations exposed via HTTP.
type DraftFacade interface {
	CreateDraft(ctx context.Context, key string, doorType model.DoorType) (*model.Draft, error)
	Draft(ctx context.Context, id uuid.UUID) (*model.Draft, error)
	DiscardDraft(ctx context.Context, id uuid.UUID) error
	RecoverDraft(ctx context.Context, key string) (*model.Draft, error)
	UpdateForm(ctx context.Context, id uuid.UUID, form model.OrderForm) (*model.Draft, error)
	AddTable(ctx context.Context, id uuid.UUID) (*model.Draft, error)
	RemoveTable(ctx context.Context, id, tableID uuid.UUID) (*model.Draft, error)
	SelectProduct(ctx context.Context, id, tableID uuid.UUID, kind string, product model.ID) (*model.Draft, error)
	AddDoor(ctx context.Context, id, tableID uuid.UUID) (*model.Draft, error)
	UpdateDoor(ctx context.Context, id, tableID, doorID uuid.UUID, patch usecase.DoorPatch) (*model.Draft, error)
	RemoveDoor(ctx context.Context, id, tableID, doorID uuid.UUID) (*model.Draft, error)
	AddComponent(ctx context.Context, id, tableID, doorID uuid.UUID, kind model.ComponentKind) (*model.Draft, error)
	UpdateComponent(ctx context.Context, id, tableID, doorID uuid.UUID, kind model.ComponentKind, index int, patch usecase.ComponentPatch) (*model.Draft, error)
	EditDiscount(ctx context.Context, id uuid.UUID, field discount.Field, value decimal.Decimal) (*model.Draft, error)
}

// OrderFacade covers the network-bound order operations.
type OrderFacade interface {
	Calculate(ctx context.Context, id uuid.UUID) (*model.Draft, error)
	Submit(ctx context.Context, id uuid.UUID) (json.RawMessage, error)
}

// OrderDeskFacade aggregates the full set of operations used across handlers.
type OrderDeskFacade interface {
	ReferenceFacade
	DraftFacade
	OrderFacade
}
