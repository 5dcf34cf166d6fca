// Package composition builds and reshapes the door records of an order.
//
// Every function mutates the value it is given and never touches anything else,
// so callers own synchronisation.
package composition

import (
	"fmt"

	"github.com/google/uuid"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/engine/dimension"
)

const (
	defaultExtensions = 2
	defaultCrowns     = 1
)

// Defaults bundles the order-level state a freshly seeded door depends on.
type Defaults struct {
	DoorType  model.DoorType
	Materials model.Materials
	Settings  model.AttributeSettings
}

// NewDefaultDoor creates a zero-sized door of the given type. Wooden doors are seeded
// with two extensions, a side and a straight casing, one crown and one accessory per slot.
func NewDefaultDoor(materials model.Materials, doorType model.DoorType, settings model.AttributeSettings) (model.Door, error) {
	door := model.Door{
		ID:   uuid.New(),
		Type: doorType,
	}

	switch doorType {
	case model.DoorTypeWood:
		door.Wood = newWoodDoor(materials, settings)
		if err := dimension.RecalculateDoor(&door, settings, nil); err != nil {
			return model.Door{}, err
		}
	case model.DoorTypeSteel:
		door.Steel = newSteelDoor()
	default:
		return model.Door{}, fmt.Errorf("%w: %q", domainErrors.ErrInvalidDoorType, doorType)
	}

	return door, nil
}

// Door is a shorthand for NewDefaultDoor.
func (d Defaults) Door() (model.Door, error) {
	return NewDefaultDoor(d.Materials, d.DoorType, d.Settings)
}

func newWoodDoor(materials model.Materials, settings model.AttributeSettings) *model.WoodDoor {
	formula := settings.DefaultFormula()

	wood := &model.WoodDoor{
		Materials:   materials,
		Extensions:  make([]model.Extension, defaultExtensions),
		Crowns:      make([]model.Crown, defaultCrowns),
		Accessories: make([]model.Accessory, 0, len(model.AccessoryTypes)),
		Casings: []model.Casing{
			{LineItem: model.LineItem{Quantity: 1}, CasingType: model.CasingTypeSide, Formula: formula},
			{CasingType: model.CasingTypeStraight, Formula: formula},
		},
	}
	for _, t := range model.AccessoryTypes {
		wood.Accessories = append(wood.Accessories, model.Accessory{AccessoryType: t, Name: t.DisplayName()})
	}
	return wood
}

func newSteelDoor() *model.SteelDoor {
	return &model.SteelDoor{
		CrownCasing: []string{},
		Peephole:    model.PresenceNo,
		OpeningSide: model.OpeningRight,
		Promog:      model.PresenceYes,
	}
}

// NewTable returns a table holding a single default door.
func NewTable(d Defaults) (model.Table, error) {
	door, err := d.Door()
	if err != nil {
		return model.Table{}, err
	}
	return model.Table{
		ID:       uuid.New(),
		Selected: map[model.ComponentKind]model.ID{},
		Doors:    []model.Door{door},
	}, nil
}

// AddTable appends a new table to the draft.
func AddTable(draft *model.Draft, d Defaults) (model.Table, error) {
	table, err := NewTable(d)
	if err != nil {
		return model.Table{}, err
	}
	draft.Tables = append(draft.Tables, table)
	return table, nil
}

// RemoveTable drops a table. Removing the last one leaves a fresh default table in its place.
func RemoveTable(draft *model.Draft, tableID uuid.UUID, d Defaults) error {
	idx := draft.FindTable(tableID)
	if idx < 0 {
		return fmt.Errorf("table %s: %w", tableID, domainErrors.ErrNotFound)
	}
	draft.Tables = append(draft.Tables[:idx], draft.Tables[idx+1:]...)
	if len(draft.Tables) > 0 {
		return nil
	}
	_, err := AddTable(draft, d)
	return err
}

// AddDoor appends a default door pre-filled with the table's door model.
func AddDoor(table *model.Table, d Defaults, doorModel model.Product) (model.Door, error) {
	door, err := d.Door()
	if err != nil {
		return model.Door{}, err
	}
	if !doorModel.ID.IsZero() {
		door.Model = doorModel.ID
		door.Price = doorModel.Price
	}
	table.Doors = append(table.Doors, door)
	return door, nil
}

// RemoveDoor drops a door from the table. A table is never left empty: removing
// the last door inserts a default one.
func RemoveDoor(table *model.Table, doorID uuid.UUID, d Defaults) error {
	idx := table.FindDoor(doorID)
	if idx < 0 {
		return fmt.Errorf("door %s: %w", doorID, domainErrors.ErrNotFound)
	}
	table.Doors = append(table.Doors[:idx], table.Doors[idx+1:]...)
	if len(table.Doors) > 0 {
		return nil
	}
	door, err := d.Door()
	if err != nil {
		return err
	}
	table.Doors = append(table.Doors, door)
	return nil
}

// AddComponentRow appends a line item of the given kind pre-filled with the selected product.
// Explicitly added rows start with quantity 1.
func AddComponentRow(door *model.Door, kind model.ComponentKind, selected model.Product, settings model.AttributeSettings) error {
	if door.Type != model.DoorTypeWood || door.Wood == nil {
		return fmt.Errorf("%w: components require a wooden door", domainErrors.ErrInvalidDoorType)
	}

	item := model.LineItem{Model: selected.ID, Price: selected.Price, Quantity: 1}
	w := door.Wood

	switch kind {
	case model.ComponentExtension:
		w.Extensions = append(w.Extensions, model.Extension{LineItem: item})
	case model.ComponentCasing:
		casing := model.Casing{
			LineItem:   item,
			CasingType: model.CasingTypeSide,
			Formula:    settings.DefaultFormula(),
		}
		if err := dimension.RecalculateCasing(&casing, *door, settings.CasingSize.Float(), nil); err != nil {
			return err
		}
		w.Casings = append(w.Casings, casing)
	case model.ComponentCrown:
		w.Crowns = append(w.Crowns, model.Crown{LineItem: item, Width: door.Width + settings.CrownSize.Float()})
	case model.ComponentAccessory:
		w.Accessories = append(w.Accessories, model.Accessory{
			LineItem:      item,
			AccessoryType: model.AccessoryCube,
			Name:          model.AccessoryCube.DisplayName(),
		})
	default:
		return fmt.Errorf("%w: %q", domainErrors.ErrInvalidComponentKind, kind)
	}
	return nil
}

// SelectProduct records a sticky selection for the table and applies it to every
// row of that kind on every door. Accessory slots carry distinct products, so an
// accessory selection only pre-fills rows added later.
func SelectProduct(table *model.Table, kind model.ComponentKind, product model.Product) error {
	if _, err := model.ParseComponentKind(string(kind)); err != nil {
		return err
	}
	if table.Selected == nil {
		table.Selected = map[model.ComponentKind]model.ID{}
	}
	table.Selected[kind] = product.ID

	for i := range table.Doors {
		w := table.Doors[i].Wood
		if w == nil {
			continue
		}
		switch kind {
		case model.ComponentExtension:
			for j := range w.Extensions {
				setProduct(&w.Extensions[j].LineItem, product)
			}
		case model.ComponentCasing:
			for j := range w.Casings {
				setProduct(&w.Casings[j].LineItem, product)
			}
		case model.ComponentCrown:
			for j := range w.Crowns {
				setProduct(&w.Crowns[j].LineItem, product)
			}
		case model.ComponentAccessory:
		}
	}
	return nil
}

// SelectDoorModel sets the door product of every door in the table.
func SelectDoorModel(table *model.Table, product model.Product) {
	table.DoorModel = product.ID
	for i := range table.Doors {
		table.Doors[i].Model = product.ID
		table.Doors[i].Price = product.Price
	}
}

func setProduct(item *model.LineItem, product model.Product) {
	item.Model = product.ID
	item.Price = product.Price
}

// ApplyMaterials propagates the order-level material set to every wooden door.
func ApplyMaterials(tables []model.Table, materials model.Materials) {
	for i := range tables {
		for j := range tables[i].Doors {
			if w := tables[i].Doors[j].Wood; w != nil {
				w.Materials = materials
			}
		}
	}
}

// ConvertDoorType reshapes every door to the new type. Going to steel drops all nested
// components; going to wood re-seeds them. The shared envelope is kept.
func ConvertDoorType(tables []model.Table, d Defaults) error {
	if _, err := model.ParseDoorType(string(d.DoorType)); err != nil {
		return err
	}

	for i := range tables {
		for j := range tables[i].Doors {
			door := &tables[i].Doors[j]
			if door.Type == d.DoorType {
				continue
			}
			seeded, err := d.Door()
			if err != nil {
				return err
			}
			door.Type = d.DoorType
			door.Wood = seeded.Wood
			door.Steel = seeded.Steel
			if err := dimension.RecalculateDoor(door, d.Settings, nil); err != nil {
				return err
			}
		}
	}
	return nil
}
