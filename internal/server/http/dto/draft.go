package dto

import (
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/engine/discount"
)

// CreateDraftRequest starts a new editing session.
type CreateDraftRequest struct {
	Key      string `json:"key"`
	DoorType string `json:"door_type" binding:"omitempty,oneof=WOOD STEEL"`
}

// FormRequest carries the order-level fields.
type FormRequest struct {
	Store        model.ID        `json:"store"`
	Project      model.ID        `json:"project"`
	Organization model.ID        `json:"organization"`
	Branch       model.ID        `json:"branch"`
	SalesChannel model.ID        `json:"sales_channel"`
	Agent        model.ID        `json:"agent"`
	Seller       model.ID        `json:"seller"`
	Operator     model.ID        `json:"operator"`
	Zamershik    model.ID        `json:"zamershik"`
	Address      string          `json:"address"`
	OrderDate    string          `json:"order_date"`
	Deadline     string          `json:"deadline"`
	Description  string          `json:"description"`
	DoorType     string          `json:"door_type" binding:"omitempty,oneof=WOOD STEEL"`
	Materials    model.Materials `json:"materials"`
}

// ToModel converts the request into the domain form.
func (r FormRequest) ToModel() model.OrderForm {
	return model.OrderForm{
		Store:        r.Store,
		Project:      r.Project,
		Organization: r.Organization,
		Branch:       r.Branch,
		SalesChannel: r.SalesChannel,
		Agent:        r.Agent,
		Seller:       r.Seller,
		Operator:     r.Operator,
		Zamershik:    r.Zamershik,
		Address:      r.Address,
		OrderDate:    r.OrderDate,
		Deadline:     r.Deadline,
		Description:  r.Description,
		DoorType:     model.DoorType(r.DoorType),
		Materials:    r.Materials,
	}
}

// SelectionRequest sets a sticky product for a table. Kind is "door" or a component kind.
type SelectionRequest struct {
	Kind    string   `json:"kind" binding:"required,oneof=door extensions casings crowns accessories"`
	Product model.ID `json:"product"`
}

// ComponentRequest adds a component row.
type ComponentRequest struct {
	Kind string `json:"kind" binding:"required,oneof=extensions casings crowns accessories"`
}

// DoorPatchRequest edits door fields. Absent fields are left alone.
type DoorPatchRequest struct {
	Model    *model.ID `json:"model"`
	Price    *Input    `json:"price"`
	Quantity *Input    `json:"quantity"`
	Height   *Input    `json:"height"`
	Width    *Input    `json:"width"`

	DoorName    *string   `json:"door_name"`
	SteelColor  *model.ID `json:"steel_color"`
	CrownCasing []string  `json:"crown_casing"`
	Frame       *model.ID `json:"frame"`
	Cladding    *model.ID `json:"cladding"`
	Lock        *model.ID `json:"lock"`
	Peephole    *string   `json:"peephole" binding:"omitempty,oneof=Бар Жок"`
	OpeningSide *string   `json:"opening_side" binding:"omitempty,oneof=Правый Левый"`
	Promog      *string   `json:"promog" binding:"omitempty,oneof=Бар Жок"`
}

// HasSteelFields reports whether any steel-only field is present.
func (r DoorPatchRequest) HasSteelFields() bool {
	return r.DoorName != nil || r.SteelColor != nil || r.CrownCasing != nil || r.Frame != nil ||
		r.Cladding != nil || r.Lock != nil || r.Peephole != nil || r.OpeningSide != nil || r.Promog != nil
}

// ComponentPatchRequest edits one component row.
type ComponentPatchRequest struct {
	Model         *model.ID `json:"model"`
	Price         *Input    `json:"price"`
	Quantity      *Input    `json:"quantity"`
	Height        *Input    `json:"height"`
	Width         *Input    `json:"width"`
	CasingType    *string   `json:"casing_type"`
	CasingFormula *string   `json:"casing_formula"`
	CasingRange   *model.ID `json:"casing_range"`
	AccessoryType *string   `json:"accessory_type"`
	Name          *string   `json:"name"`
}

// DiscountRequest edits one discount input.
type DiscountRequest struct {
	Field string `json:"field" binding:"required,oneof=discount_percentage discount_amount agreement_amount advance_payment"`
	Value Input  `json:"value"`
}

// DraftResponse is the draft view with its financial summary.
type DraftResponse struct {
	*model.Draft
	Summary discount.Summary `json:"summary"`
}

// NewDraftResponse renders draft with the summary against its current subtotal.
func NewDraftResponse(draft *model.Draft) DraftResponse {
	return DraftResponse{
		Draft:   draft,
		Summary: discount.Summarize(draft.Discount, draft.Totals.TotalSum),
	}
}

// ErrorResponse carries an error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
