package model

import (
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderForm holds the order-level fields edited in the create-order form.
type OrderForm struct {
	Store        ID        `json:"store"`
	Project      ID        `json:"project"`
	Organization ID        `json:"organization"`
	Branch       ID        `json:"branch"`
	SalesChannel ID        `json:"sales_channel"`
	Agent        ID        `json:"agent"`
	Seller       ID        `json:"seller"`
	Operator     ID        `json:"operator"`
	Zamershik    ID        `json:"zamershik"`
	Address      string    `json:"address"`
	OrderDate    string    `json:"order_date"`
	Deadline     string    `json:"deadline"`
	Description  string    `json:"description"`
	DoorType     DoorType  `json:"door_type"`
	Materials    Materials `json:"materials"`
}

// DiscountState holds the three mutually dependent discount inputs and the advance payment.
// DiscountAmountInput is the total discount, agreement included.
type DiscountState struct {
	Percentage           decimal.Decimal `json:"discount_percentage"`
	DiscountAmountInput  decimal.Decimal `json:"discount_amount_input"`
	AgreementAmountInput decimal.Decimal `json:"agreement_amount_input"`
	AdvancePayment       decimal.Decimal `json:"advance_payment"`
}

// Totals are the category totals returned by the calculation endpoint.
type Totals struct {
	DoorPrice      decimal.Decimal `json:"door_price"`
	ExtensionPrice decimal.Decimal `json:"extension_price"`
	CasingPrice    decimal.Decimal `json:"casing_price"`
	CrownPrice     decimal.Decimal `json:"crown_price"`
	AccessoryPrice decimal.Decimal `json:"accessory_price"`
	TotalSum       decimal.Decimal `json:"total_sum"`
}

// Table is a group of doors sharing sticky product selections.
type Table struct {
	ID        uuid.UUID            `json:"id"`
	DoorModel ID                   `json:"door_model"`
	Selected  map[ComponentKind]ID `json:"selected"`
	Doors     []Door               `json:"doors"`
}

// Pending exposes in-flight network operations of a draft.
type Pending struct {
	Calculating bool `json:"calculating"`
	Submitting  bool `json:"submitting"`
}

// Draft is the in-progress order owned by one editing session.
type Draft struct {
	ID        uuid.UUID     `json:"id"`
	Key       string        `json:"key"`
	Form      OrderForm     `json:"form"`
	Tables    []Table       `json:"tables"`
	Discount  DiscountState `json:"discount"`
	Totals    Totals        `json:"totals"`
	Pending   Pending       `json:"pending"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Clone returns a deep copy suitable for handing to another goroutine.
func (d *Draft) Clone() *Draft {
	out := *d
	out.Tables = make([]Table, len(d.Tables))
	for i, t := range d.Tables {
		ct := t
		ct.Selected = maps.Clone(t.Selected)
		ct.Doors = make([]Door, len(t.Doors))
		for j, door := range t.Doors {
			ct.Doors[j] = door.Clone()
		}
		out.Tables[i] = ct
	}
	return &out
}

// FindTable returns the index of the table with given id or -1.
func (d *Draft) FindTable(id uuid.UUID) int {
	for i := range d.Tables {
		if d.Tables[i].ID == id {
			return i
		}
	}
	return -1
}

// FindDoor returns the index of the door with given id or -1.
func (t *Table) FindDoor(id uuid.UUID) int {
	for i := range t.Doors {
		if t.Doors[i].ID == id {
			return i
		}
	}
	return -1
}
