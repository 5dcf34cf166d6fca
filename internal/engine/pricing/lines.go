package pricing

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
)

// Line shapes are shared by the calculation request, where M is the full catalog
// product, and the order payload, where M is the product id.

type ExtensionLine[M any] struct {
	Model     M           `json:"model"`
	PriceType model.ID    `json:"price_type,omitempty"`
	Price     json.Number `json:"price"`
	Quantity  json.Number `json:"quantity"`
	Height    json.Number `json:"height"`
	Width     json.Number `json:"width"`
}

type CasingLine[M any] struct {
	Model         M                   `json:"model"`
	PriceType     model.ID            `json:"price_type,omitempty"`
	Price         json.Number         `json:"price"`
	Quantity      json.Number         `json:"quantity"`
	CasingType    model.CasingType    `json:"casing_type"`
	CasingFormula model.CasingFormula `json:"casing_formula"`
	CasingRange   model.ID            `json:"casing_range"`
	Height        json.Number         `json:"height"`
	Width         json.Number         `json:"width"`
}

type CrownLine[M any] struct {
	Model     M           `json:"model"`
	PriceType model.ID    `json:"price_type,omitempty"`
	Price     json.Number `json:"price"`
	Quantity  json.Number `json:"quantity"`
	Height    json.Number `json:"height"`
	Width     json.Number `json:"width"`
}

type AccessoryLine[M any] struct {
	Model         M                   `json:"model"`
	PriceType     model.ID            `json:"price_type,omitempty"`
	Price         json.Number         `json:"price"`
	Quantity      json.Number         `json:"quantity"`
	AccessoryType model.AccessoryType `json:"accessory_type"`
	Name          string              `json:"name"`
}

// WoodLines is the wooden part of a door line. Collections are never nil.
type WoodLines[M any] struct {
	model.Materials
	Extensions  []ExtensionLine[M] `json:"extensions"`
	Casings     []CasingLine[M]    `json:"casings"`
	Crowns      []CrownLine[M]     `json:"crowns"`
	Accessories []AccessoryLine[M] `json:"accessories"`
}

// DoorLine is a serialized door. Exactly one of the embedded variants is set.
type DoorLine[M any] struct {
	Model     M           `json:"model"`
	PriceType model.ID    `json:"price_type,omitempty"`
	Price     json.Number `json:"price"`
	Quantity  json.Number `json:"quantity"`
	Height    json.Number `json:"height"`
	Width     json.Number `json:"width"`
	*WoodLines[M]
	*model.SteelDoor
}

// resolver maps a product id to the model representation M and its price type.
type resolver[M any] func(id model.ID) (M, model.ID)

// Included reports whether a component line item is serialized at all.
func Included(item model.LineItem) bool {
	return item.Quantity > 0 && !item.Model.IsZero()
}

func buildDoorLine[M any](door model.Door, resolve resolver[M]) DoorLine[M] {
	m, priceType := resolve(door.Model)
	line := DoorLine[M]{
		Model:     m,
		PriceType: priceType,
		Price:     money(door.Price),
		Quantity:  number(door.Quantity),
		Height:    number(door.Height),
		Width:     number(door.Width),
	}

	switch door.Type {
	case model.DoorTypeWood:
		wood := door.Wood
		if wood == nil {
			wood = &model.WoodDoor{}
		}
		line.WoodLines = buildWoodLines(wood, resolve)
	case model.DoorTypeSteel:
		steel := model.SteelDoor{}
		if door.Steel != nil {
			steel = *door.Steel
		}
		if steel.CrownCasing == nil {
			steel.CrownCasing = []string{}
		}
		line.SteelDoor = &steel
	}
	return line
}

func buildWoodLines[M any](w *model.WoodDoor, resolve resolver[M]) *WoodLines[M] {
	out := &WoodLines[M]{
		Materials:   w.Materials,
		Extensions:  []ExtensionLine[M]{},
		Casings:     []CasingLine[M]{},
		Crowns:      []CrownLine[M]{},
		Accessories: []AccessoryLine[M]{},
	}

	for _, e := range w.Extensions {
		if !Included(e.LineItem) {
			continue
		}
		m, pt := resolve(e.Model)
		out.Extensions = append(out.Extensions, ExtensionLine[M]{
			Model: m, PriceType: pt,
			Price: money(e.Price), Quantity: number(e.Quantity),
			Height: number(e.Height), Width: number(e.Width),
		})
	}
	for _, c := range w.Casings {
		if !Included(c.LineItem) {
			continue
		}
		m, pt := resolve(c.Model)
		out.Casings = append(out.Casings, CasingLine[M]{
			Model: m, PriceType: pt,
			Price: money(c.Price), Quantity: number(c.Quantity),
			CasingType: c.CasingType, CasingFormula: c.Formula, CasingRange: c.CasingRange,
			Height: number(c.Height), Width: number(c.Width),
		})
	}
	for _, c := range w.Crowns {
		if !Included(c.LineItem) {
			continue
		}
		m, pt := resolve(c.Model)
		out.Crowns = append(out.Crowns, CrownLine[M]{
			Model: m, PriceType: pt,
			Price: money(c.Price), Quantity: number(c.Quantity),
			Height: number(c.Height), Width: number(c.Width),
		})
	}
	for _, a := range w.Accessories {
		if !Included(a.LineItem) {
			continue
		}
		m, pt := resolve(a.Model)
		out.Accessories = append(out.Accessories, AccessoryLine[M]{
			Model: m, PriceType: pt,
			Price: money(a.Price), Quantity: number(a.Quantity),
			AccessoryType: a.AccessoryType, Name: a.Name,
		})
	}
	return out
}

func number(f float64) json.Number {
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
