package model

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/pkg/numeric"
)

// Measure is a dimension or size read leniently from the API, which sends decimals as strings.
type Measure float64

// UnmarshalJSON accepts numbers, numeric strings and null.
func (m *Measure) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Measure(numeric.Parse(s, 0))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Measure(f)
	return nil
}

// Float returns the measure as float64.
func (m Measure) Float() float64 {
	return float64(m)
}

// Product is a catalog entry. The full API object is retained in Raw so it can be
// forwarded to the calculation endpoint untouched.
type Product struct {
	ID       ID              `json:"id"`
	Name     string          `json:"name"`
	Category ID              `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Raw      json.RawMessage `json:"-"`
}

type productFields Product

// UnmarshalJSON decodes known fields and keeps the raw object.
func (p *Product) UnmarshalJSON(data []byte) error {
	var f productFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = Product(f)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the raw catalog object when available.
func (p Product) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	return json.Marshal(productFields(p))
}

// Option is a named lookup entry (material, color, frame, ...).
type Option struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// BeadingKind tells main and additional beadings apart.
type BeadingKind string

const (
	BeadingMain       BeadingKind = "main"
	BeadingAdditional BeadingKind = "additional"
)

// Beading is a beading lookup entry.
type Beading struct {
	ID   ID          `json:"id"`
	Name string      `json:"name"`
	Type BeadingKind `json:"type"`
}

// PriceSetting maps a product name to a price type identifier.
type PriceSetting struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	PriceType ID     `json:"price_type"`
}

// AttributeSettings are the global sizing settings.
type AttributeSettings struct {
	ID            ID      `json:"id"`
	CasingSize    Measure `json:"casing_size"`
	CrownSize     Measure `json:"crown_size"`
	CasingFormula bool    `json:"casing_formula"`
}

// DefaultFormula returns the casing formula mode selected sitewide.
func (s AttributeSettings) DefaultFormula() CasingFormula {
	return FormulaFromSetting(s.CasingFormula)
}

// CasingRange maps a door size interval to a fixed casing height.
type CasingRange struct {
	ID         ID      `json:"id"`
	MinSize    Measure `json:"min_size"`
	MaxSize    Measure `json:"max_size"`
	CasingSize Measure `json:"casing_size"`
}

// ReferenceData bundles every lookup collection the order engine consumes.
type ReferenceData struct {
	Materials          []Option          `json:"materials"`
	MaterialTypes      []Option          `json:"material_types"`
	Massifs            []Option          `json:"massifs"`
	Colors             []Option          `json:"colors"`
	PatinaColors       []Option          `json:"patina_colors"`
	BeadingsMain       []Beading         `json:"beadings_main"`
	BeadingsAdditional []Beading         `json:"beadings_additional"`
	GlassTypes         []Option          `json:"glass_types"`
	Thresholds         []Option          `json:"thresholds"`
	CasingRanges       []CasingRange     `json:"casing_ranges"`
	AttributeSettings  AttributeSettings `json:"attribute_settings"`
	PriceSettings      json.RawMessage   `json:"price_settings"`
	Products           []Product         `json:"products"`
	SteelColors        []Option          `json:"steel_colors"`
	Frames             []Option          `json:"frames"`
	Claddings          []Option          `json:"claddings"`
	Locks              []Option          `json:"locks"`
	LoadedAt           time.Time         `json:"loaded_at"`
}

// Catalog indexes products by id.
func (r *ReferenceData) Catalog() map[ID]Product {
	out := make(map[ID]Product, len(r.Products))
	for _, p := range r.Products {
		out[p.ID] = p
	}
	return out
}
