package model

import (
	"encoding/json"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Materials is the order-level material set shared by every wooden door.
type Materials struct {
	Material          ID `json:"material"`
	MaterialType      ID `json:"material_type"`
	Massif            ID `json:"massif"`
	Color             ID `json:"color"`
	PatinaColor       ID `json:"patina_color"`
	BeadingMain       ID `json:"beading_main"`
	BeadingAdditional ID `json:"beading_additional"`
	GlassType         ID `json:"glass_type"`
	Threshold         ID `json:"threshold"`
}

// LineItem carries the fields common to every door component.
type LineItem struct {
	Model    ID              `json:"model"`
	Price    decimal.Decimal `json:"price"`
	Quantity float64         `json:"quantity"`
}

// Extension is a frame extension sized independently of the door.
type Extension struct {
	LineItem
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
}

// Casing is a door-frame trim element.
type Casing struct {
	LineItem
	CasingType  CasingType    `json:"casing_type"`
	Formula     CasingFormula `json:"casing_formula"`
	CasingRange ID            `json:"casing_range"`
	Height      float64       `json:"height"`
	Width       float64       `json:"width"`
}

// HeightEditable reports whether the height accepts manual values. Formula1 heights
// are derived from the door.
func (c Casing) HeightEditable() bool {
	return c.Formula == CasingFormulaRange
}

// MarshalJSON adds height_editable to the casing view.
func (c Casing) MarshalJSON() ([]byte, error) {
	type casing Casing
	return json.Marshal(struct {
		casing
		HeightEditable bool `json:"height_editable"`
	}{casing(c), c.HeightEditable()})
}

// Crown is the decorative element above a door.
type Crown struct {
	LineItem
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
}

// Accessory occupies one of the fixed accessory slots.
type Accessory struct {
	LineItem
	AccessoryType AccessoryType `json:"accessory_type"`
	Name          string        `json:"name"`
}

// WoodDoor holds the wooden variant of a door.
type WoodDoor struct {
	Materials
	Extensions  []Extension `json:"extensions"`
	Casings     []Casing    `json:"casings"`
	Crowns      []Crown     `json:"crowns"`
	Accessories []Accessory `json:"accessories"`
}

// SteelDoor holds the steel variant of a door.
type SteelDoor struct {
	DoorName    string      `json:"door_name"`
	SteelColor  ID          `json:"steel_color"`
	CrownCasing []string    `json:"crown_casing"`
	Frame       ID          `json:"frame"`
	Cladding    ID          `json:"cladding"`
	Lock        ID          `json:"lock"`
	Peephole    Presence    `json:"peephole"`
	OpeningSide OpeningSide `json:"opening_side"`
	Promog      Presence    `json:"promog"`
}

// Door is a tagged union: Type selects which of Wood or Steel is populated.
type Door struct {
	ID       uuid.UUID       `json:"id"`
	Type     DoorType        `json:"type"`
	Model    ID              `json:"model"`
	Price    decimal.Decimal `json:"price"`
	Quantity float64         `json:"quantity"`
	Height   float64         `json:"height"`
	Width    float64         `json:"width"`
	Wood     *WoodDoor       `json:"wood,omitempty"`
	Steel    *SteelDoor      `json:"steel,omitempty"`
}

// Normalize makes the variant consistent with Type and replaces nil collections with empty ones.
func (d *Door) Normalize() {
	switch d.Type {
	case DoorTypeWood:
		d.Steel = nil
		if d.Wood == nil {
			d.Wood = &WoodDoor{}
		}
		if d.Wood.Extensions == nil {
			d.Wood.Extensions = []Extension{}
		}
		if d.Wood.Casings == nil {
			d.Wood.Casings = []Casing{}
		}
		if d.Wood.Crowns == nil {
			d.Wood.Crowns = []Crown{}
		}
		if d.Wood.Accessories == nil {
			d.Wood.Accessories = []Accessory{}
		}
	case DoorTypeSteel:
		d.Wood = nil
		if d.Steel == nil {
			d.Steel = &SteelDoor{}
		}
		if d.Steel.CrownCasing == nil {
			d.Steel.CrownCasing = []string{}
		}
	}
}

// Clone returns a deep copy of the door.
func (d Door) Clone() Door {
	out := d
	if d.Wood != nil {
		w := *d.Wood
		w.Extensions = slices.Clone(d.Wood.Extensions)
		w.Casings = slices.Clone(d.Wood.Casings)
		w.Crowns = slices.Clone(d.Wood.Crowns)
		w.Accessories = slices.Clone(d.Wood.Accessories)
		out.Wood = &w
	}
	if d.Steel != nil {
		s := *d.Steel
		s.CrownCasing = slices.Clone(d.Steel.CrownCasing)
		out.Steel = &s
	}
	return out
}
