package composition

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
)

var testSettings = model.AttributeSettings{CasingSize: 6, CrownSize: 10, CasingFormula: true}

func woodDefaults() Defaults {
	return Defaults{
		DoorType:  model.DoorTypeWood,
		Materials: model.Materials{Material: "1", Color: "3"},
		Settings:  testSettings,
	}
}

func TestNewDefaultDoorWood(t *testing.T) {
	door, err := NewDefaultDoor(model.Materials{Material: "1", Massif: "2"}, model.DoorTypeWood, testSettings)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, door.ID)
	assert.Zero(t, door.Height)
	assert.Zero(t, door.Width)
	assert.Zero(t, door.Quantity)
	assert.Nil(t, door.Steel)
	require.NotNil(t, door.Wood)

	w := door.Wood
	assert.Equal(t, model.ID("1"), w.Material)
	assert.Equal(t, model.ID("2"), w.Massif)
	assert.Len(t, w.Extensions, 2)
	assert.Len(t, w.Crowns, 1)
	assert.Equal(t, 10.0, w.Crowns[0].Width)

	require.Len(t, w.Casings, 2)
	assert.Equal(t, model.CasingTypeSide, w.Casings[0].CasingType)
	assert.Equal(t, 1.0, w.Casings[0].Quantity)
	assert.Equal(t, model.CasingTypeStraight, w.Casings[1].CasingType)
	assert.Zero(t, w.Casings[1].Quantity)
	for _, c := range w.Casings {
		assert.Equal(t, 6.0, c.Width)
		assert.Equal(t, model.CasingFormulaArithmetic, c.Formula)
	}

	require.Len(t, w.Accessories, len(model.AccessoryTypes))
	for i, a := range w.Accessories {
		assert.Equal(t, model.AccessoryTypes[i], a.AccessoryType)
		assert.Equal(t, a.AccessoryType.DisplayName(), a.Name)
		assert.Zero(t, a.Quantity)
	}
}

func TestNewDefaultDoorSteel(t *testing.T) {
	door, err := NewDefaultDoor(model.Materials{Material: "1"}, model.DoorTypeSteel, testSettings)
	require.NoError(t, err)

	assert.Nil(t, door.Wood)
	require.NotNil(t, door.Steel)
	assert.Equal(t, model.PresenceNo, door.Steel.Peephole)
	assert.Equal(t, model.OpeningRight, door.Steel.OpeningSide)
	assert.Equal(t, model.PresenceYes, door.Steel.Promog)
	assert.NotNil(t, door.Steel.CrownCasing)
}

func TestNewDefaultDoorRejectsUnknownType(t *testing.T) {
	_, err := NewDefaultDoor(model.Materials{}, "GLASS", testSettings)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidDoorType)
}

func TestFormula2Seeding(t *testing.T) {
	settings := model.AttributeSettings{CasingSize: 7, CrownSize: 10}
	door, err := NewDefaultDoor(model.Materials{}, model.DoorTypeWood, settings)
	require.NoError(t, err)
	for _, c := range door.Wood.Casings {
		assert.Equal(t, model.CasingFormulaRange, c.Formula)
	}
}

func TestRemoveDoorKeepsOneRow(t *testing.T) {
	d := woodDefaults()
	table, err := NewTable(d)
	require.NoError(t, err)
	only := table.Doors[0].ID

	require.NoError(t, RemoveDoor(&table, only, d))
	require.Len(t, table.Doors, 1)
	assert.NotEqual(t, only, table.Doors[0].ID)

	_, err = AddDoor(&table, d, model.Product{})
	require.NoError(t, err)
	require.Len(t, table.Doors, 2)
	require.NoError(t, RemoveDoor(&table, table.Doors[0].ID, d))
	assert.Len(t, table.Doors, 1)

	assert.ErrorIs(t, RemoveDoor(&table, uuid.New(), d), domainErrors.ErrNotFound)
}

func TestRemoveTableKeepsOneTable(t *testing.T) {
	d := woodDefaults()
	draft := &model.Draft{}
	first, err := AddTable(draft, d)
	require.NoError(t, err)

	require.NoError(t, RemoveTable(draft, first.ID, d))
	require.Len(t, draft.Tables, 1)
	assert.NotEqual(t, first.ID, draft.Tables[0].ID)
	assert.Len(t, draft.Tables[0].Doors, 1)

	assert.ErrorIs(t, RemoveTable(draft, uuid.New(), d), domainErrors.ErrNotFound)
}

func TestAddDoorUsesTableModel(t *testing.T) {
	d := woodDefaults()
	table, err := NewTable(d)
	require.NoError(t, err)

	product := model.Product{ID: "42", Price: decimal.NewFromInt(1500)}
	SelectDoorModel(&table, product)
	assert.Equal(t, model.ID("42"), table.Doors[0].Model)

	door, err := AddDoor(&table, d, product)
	require.NoError(t, err)
	assert.Equal(t, model.ID("42"), door.Model)
	assert.True(t, door.Price.Equal(decimal.NewFromInt(1500)))
}

func TestAddComponentRow(t *testing.T) {
	door, err := NewDefaultDoor(model.Materials{}, model.DoorTypeWood, testSettings)
	require.NoError(t, err)
	door.Height, door.Width = 2000, 900

	selected := model.Product{ID: "7", Price: decimal.NewFromInt(90)}
	require.NoError(t, AddComponentRow(&door, model.ComponentCasing, selected, testSettings))
	casing := door.Wood.Casings[len(door.Wood.Casings)-1]
	assert.Equal(t, model.ID("7"), casing.Model)
	assert.Equal(t, 1.0, casing.Quantity)
	assert.Equal(t, 2006.0, casing.Height)
	assert.Equal(t, 6.0, casing.Width)

	require.NoError(t, AddComponentRow(&door, model.ComponentCrown, selected, testSettings))
	assert.Equal(t, 910.0, door.Wood.Crowns[len(door.Wood.Crowns)-1].Width)

	require.NoError(t, AddComponentRow(&door, model.ComponentExtension, selected, testSettings))
	assert.Len(t, door.Wood.Extensions, 3)

	require.NoError(t, AddComponentRow(&door, model.ComponentAccessory, model.Product{}, testSettings))
	assert.Len(t, door.Wood.Accessories, 7)

	assert.ErrorIs(t, AddComponentRow(&door, "handles", selected, testSettings), domainErrors.ErrInvalidComponentKind)

	steel, err := NewDefaultDoor(model.Materials{}, model.DoorTypeSteel, testSettings)
	require.NoError(t, err)
	assert.ErrorIs(t, AddComponentRow(&steel, model.ComponentCasing, selected, testSettings), domainErrors.ErrInvalidDoorType)
}

func TestSelectProductIsSticky(t *testing.T) {
	d := woodDefaults()
	table, err := NewTable(d)
	require.NoError(t, err)
	_, err = AddDoor(&table, d, model.Product{})
	require.NoError(t, err)

	product := model.Product{ID: "11", Price: decimal.NewFromInt(300)}
	require.NoError(t, SelectProduct(&table, model.ComponentExtension, product))
	assert.Equal(t, model.ID("11"), table.Selected[model.ComponentExtension])

	for _, door := range table.Doors {
		for _, ext := range door.Wood.Extensions {
			assert.Equal(t, model.ID("11"), ext.Model)
			assert.True(t, ext.Price.Equal(product.Price))
		}
		for _, c := range door.Wood.Casings {
			assert.True(t, c.Model.IsZero())
		}
	}

	require.NoError(t, SelectProduct(&table, model.ComponentAccessory, product))
	for _, a := range table.Doors[0].Wood.Accessories {
		assert.True(t, a.Model.IsZero())
	}

	assert.ErrorIs(t, SelectProduct(&table, "doors", product), domainErrors.ErrInvalidComponentKind)
}

func TestApplyMaterials(t *testing.T) {
	d := woodDefaults()
	draft := &model.Draft{}
	for range 2 {
		_, err := AddTable(draft, d)
		require.NoError(t, err)
	}
	_, err := AddDoor(&draft.Tables[1], d, model.Product{})
	require.NoError(t, err)

	m := model.Materials{Material: "9", Massif: "8", Color: "7", PatinaColor: "6", BeadingMain: "5", BeadingAdditional: "4"}
	ApplyMaterials(draft.Tables, m)

	for _, table := range draft.Tables {
		for _, door := range table.Doors {
			assert.Equal(t, m, door.Wood.Materials)
		}
	}
}

func TestConvertDoorType(t *testing.T) {
	d := woodDefaults()
	table, err := NewTable(d)
	require.NoError(t, err)
	table.Doors[0].Height, table.Doors[0].Width = 2000, 900
	table.Doors[0].Model = "42"
	tables := []model.Table{table}

	d.DoorType = model.DoorTypeSteel
	require.NoError(t, ConvertDoorType(tables, d))
	door := tables[0].Doors[0]
	assert.Equal(t, model.DoorTypeSteel, door.Type)
	assert.Nil(t, door.Wood)
	require.NotNil(t, door.Steel)
	assert.Equal(t, model.ID("42"), door.Model)
	assert.Equal(t, 2000.0, door.Height)

	d.DoorType = model.DoorTypeWood
	require.NoError(t, ConvertDoorType(tables, d))
	door = tables[0].Doors[0]
	assert.Nil(t, door.Steel)
	require.NotNil(t, door.Wood)
	assert.Len(t, door.Wood.Accessories, 6)
	assert.Equal(t, 910.0, door.Wood.Crowns[0].Width)
	assert.Equal(t, 2006.0, door.Wood.Casings[0].Height)

	d.DoorType = "GLASS"
	assert.ErrorIs(t, ConvertDoorType(tables, d), domainErrors.ErrInvalidDoorType)
}
