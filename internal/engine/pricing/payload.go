package pricing

import (
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/engine/discount"
)

// OrderPayload is the body of the order submission call.
type OrderPayload struct {
	Store        model.ID       `json:"store" validate:"required"`
	Project      model.ID       `json:"project"`
	Organization model.ID       `json:"organization" validate:"required"`
	Branch       model.ID       `json:"branch" validate:"required"`
	SalesChannel model.ID       `json:"sales_channel" validate:"required"`
	Agent        model.ID       `json:"agent" validate:"required"`
	Seller       model.ID       `json:"seller" validate:"required"`
	Operator     model.ID       `json:"operator"`
	Zamershik    model.ID       `json:"zamershik"`
	Address      string         `json:"address"`
	OrderDate    string         `json:"order_date" validate:"required"`
	Deadline     string         `json:"deadline"`
	Description  string         `json:"description"`
	DoorType     model.DoorType `json:"door_type" validate:"required,oneof=WOOD STEEL"`

	discount.Summary

	Doors []DoorLine[model.ID] `json:"doors"`
}

func idOnly(id model.ID) (model.ID, model.ID) {
	return id, ""
}

// BuildOrderPayload assembles the final order. Totals are rendered as fixed-point
// strings and components that are not priced are left out.
func BuildOrderPayload(draft *model.Draft) OrderPayload {
	f := draft.Form
	payload := OrderPayload{
		Store:        f.Store,
		Project:      f.Project,
		Organization: f.Organization,
		Branch:       f.Branch,
		SalesChannel: f.SalesChannel,
		Agent:        f.Agent,
		Seller:       f.Seller,
		Operator:     f.Operator,
		Zamershik:    f.Zamershik,
		Address:      f.Address,
		OrderDate:    f.OrderDate,
		Deadline:     f.Deadline,
		Description:  f.Description,
		DoorType:     f.DoorType,
		Summary:      discount.Summarize(draft.Discount, draft.Totals.TotalSum),
		Doors:        []DoorLine[model.ID]{},
	}
	for _, table := range draft.Tables {
		for _, door := range table.Doors {
			payload.Doors = append(payload.Doors, buildDoorLine[model.ID](door, idOnly))
		}
	}
	return payload
}
