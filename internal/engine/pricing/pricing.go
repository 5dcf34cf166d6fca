// Package pricing prepares orders for the external calculation and submission endpoints.
//
// Aggregation itself is done by the calculation service; this package resolves products
// and price types and filters out line items that must not be priced.
package pricing

import (
	"encoding/json"
	"log/slog"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
)

// Hydrator resolves product references against the catalog.
type Hydrator struct {
	catalog  map[model.ID]model.Product
	settings []model.PriceSetting
	fallback model.ID
}

// NewHydrator indexes the reference data. Malformed price settings are logged and ignored.
func NewHydrator(ref *model.ReferenceData, fallback model.ID, logger *slog.Logger) *Hydrator {
	return &Hydrator{
		catalog:  ref.Catalog(),
		settings: ParsePriceSettings(ref.PriceSettings, logger),
		fallback: fallback,
	}
}

// Product returns the catalog object for id, or a stub carrying only the id.
func (h *Hydrator) Product(id model.ID) model.Product {
	if p, ok := h.catalog[id]; ok {
		return p
	}
	raw, _ := json.Marshal(struct {
		ID model.ID `json:"id"`
	}{id})
	return model.Product{ID: id, Raw: raw}
}

// PriceType resolves the price type of a product by its name.
func (h *Hydrator) PriceType(p model.Product) model.ID {
	return ResolvePriceType(p.Name, h.settings, h.fallback)
}

func (h *Hydrator) resolve(id model.ID) (model.Product, model.ID) {
	p := h.Product(id)
	return p, h.PriceType(p)
}

// HydrateDoor attaches full products and price types to the door and its priced components.
func (h *Hydrator) HydrateDoor(door model.Door) DoorLine[model.Product] {
	return buildDoorLine[model.Product](door, h.resolve)
}

// CalculationRequest is the body of the order calculation call.
type CalculationRequest struct {
	DoorType model.DoorType            `json:"door_type"`
	Doors    []DoorLine[model.Product] `json:"doors"`
}

// BuildCalculationRequest hydrates every door of every table in order.
func (h *Hydrator) BuildCalculationRequest(draft *model.Draft) CalculationRequest {
	req := CalculationRequest{
		DoorType: draft.Form.DoorType,
		Doors:    []DoorLine[model.Product]{},
	}
	for _, table := range draft.Tables {
		for _, door := range table.Doors {
			req.Doors = append(req.Doors, h.HydrateDoor(door))
		}
	}
	return req
}
