package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	usecase "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/usecase"
)

func ptr[T any](v T) *T {
	return &v
}

func TestUpdateComponentExtension(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft, tableID, doorID := f.create(t)

	updated, err := f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, model.ComponentExtension, 1, usecase.ComponentPatch{
		Model:    ptr(model.ID("20")),
		Price:    ptr(decimal.NewFromInt(75)),
		Quantity: ptr(3.0),
		Height:   ptr(2100.0),
		Width:    ptr(150.0),
	})
	require.NoError(t, err)
	ext := updated.Tables[0].Doors[0].Wood.Extensions[1]
	assert.Equal(t, model.ID("20"), ext.Model)
	assert.Equal(t, "75", ext.Price.String())
	assert.Equal(t, 3.0, ext.Quantity)
	assert.Equal(t, 2100.0, ext.Height)
	assert.Equal(t, 150.0, ext.Width)
}

func TestUpdateComponentRejectsDerivedWidths(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft, tableID, doorID := f.create(t)

	_, err := f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, model.ComponentCasing, 0, usecase.ComponentPatch{Width: ptr(10.0)})
	require.ErrorIs(t, err, domainErrors.ErrDerivedField)

	_, err = f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, model.ComponentCrown, 0, usecase.ComponentPatch{Width: ptr(10.0)})
	require.ErrorIs(t, err, domainErrors.ErrDerivedField)

	crown, err := f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, model.ComponentCrown, 0, usecase.ComponentPatch{Height: ptr(120.0)})
	require.NoError(t, err)
	assert.Equal(t, 120.0, crown.Tables[0].Doors[0].Wood.Crowns[0].Height)
}

func TestUpdateComponentCasingRanges(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft, tableID, doorID := f.create(t)

	_, err := f.uc.UpdateDoor(ctx, draft.ID, tableID, doorID, usecase.DoorPatch{Height: ptr(2000.0), Width: ptr(800.0)})
	require.NoError(t, err)

	unranged, err := f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, model.ComponentCasing, 0, usecase.ComponentPatch{
		Formula: ptr(model.CasingFormulaRange),
	})
	require.NoError(t, err)
	casing := unranged.Tables[0].Doors[0].Wood.Casings[0]
	assert.True(t, casing.CasingRange.IsZero(), "range is only set when chosen")
	assert.Equal(t, 2007.0, casing.Height)
	assert.Equal(t, 7.0, casing.Width)

	chosen, err := f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, model.ComponentCasing, 0, usecase.ComponentPatch{
		CasingRange: ptr(model.ID("2")),
	})
	require.NoError(t, err)
	assert.Equal(t, 2500.0, chosen.Tables[0].Doors[0].Wood.Casings[0].Height)

	manual, err := f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, model.ComponentCasing, 0, usecase.ComponentPatch{
		Height: ptr(2222.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 2222.0, manual.Tables[0].Doors[0].Wood.Casings[0].Height)

	_, err = f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, model.ComponentCasing, 0, usecase.ComponentPatch{
		CasingRange: ptr(model.ID("9")),
	})
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestUpdateComponentKeepsArithmeticHeightWithoutRange(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft, tableID, doorID := f.create(t)

	resized, err := f.uc.UpdateDoor(ctx, draft.ID, tableID, doorID, usecase.DoorPatch{Height: ptr(2000.0), Width: ptr(900.0)})
	require.NoError(t, err)
	before := resized.Tables[0].Doors[0].Wood.Casings[0]
	require.Equal(t, model.CasingFormulaRange, before.Formula)
	require.Equal(t, 2007.0, before.Height)

	counted, err := f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, model.ComponentCasing, 0, usecase.ComponentPatch{
		Quantity: ptr(2.0),
	})
	require.NoError(t, err)
	after := counted.Tables[0].Doors[0].Wood.Casings[0]
	assert.Equal(t, 2.0, after.Quantity)
	assert.True(t, after.CasingRange.IsZero())
	assert.Equal(t, 2007.0, after.Height, "door height plus casing size")

	regrown, err := f.uc.UpdateDoor(ctx, draft.ID, tableID, doorID, usecase.DoorPatch{Height: ptr(2100.0)})
	require.NoError(t, err)
	assert.Equal(t, 2107.0, regrown.Tables[0].Doors[0].Wood.Casings[0].Height)
}

func TestUpdateComponentArithmeticCasing(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft, tableID, doorID := f.create(t)

	_, err := f.uc.UpdateDoor(ctx, draft.ID, tableID, doorID, usecase.DoorPatch{Height: ptr(2000.0), Width: ptr(800.0)})
	require.NoError(t, err)

	straight, err := f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, model.ComponentCasing, 0, usecase.ComponentPatch{
		Formula:    ptr(model.CasingFormulaArithmetic),
		CasingType: ptr(model.CasingTypeStraight),
	})
	require.NoError(t, err)
	casing := straight.Tables[0].Doors[0].Wood.Casings[0]
	assert.Equal(t, model.CasingTypeStraight, casing.CasingType)
	assert.Equal(t, 814.0, casing.Height)

	_, err = f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, model.ComponentCasing, 0, usecase.ComponentPatch{Height: ptr(900.0)})
	require.ErrorIs(t, err, domainErrors.ErrDerivedField)

	unchanged, err := f.uc.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, 814.0, unchanged.Tables[0].Doors[0].Wood.Casings[0].Height)
}

func TestUpdateComponentAccessory(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft, tableID, doorID := f.create(t)

	_, err := f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, model.ComponentAccessory, 0, usecase.ComponentPatch{Height: ptr(5.0)})
	require.ErrorIs(t, err, domainErrors.ErrValidation)

	typed, err := f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, model.ComponentAccessory, 0, usecase.ComponentPatch{
		AccessoryType: ptr(model.AccessoryLeg),
		Quantity:      ptr(4.0),
	})
	require.NoError(t, err)
	acc := typed.Tables[0].Doors[0].Wood.Accessories[0]
	assert.Equal(t, model.AccessoryLeg, acc.AccessoryType)
	assert.Equal(t, model.AccessoryLeg.DisplayName(), acc.Name)
	assert.Equal(t, 4.0, acc.Quantity)

	named, err := f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, model.ComponentAccessory, 0, usecase.ComponentPatch{Name: ptr("Custom")})
	require.NoError(t, err)
	assert.Equal(t, "Custom", named.Tables[0].Doors[0].Wood.Accessories[0].Name)
}

func TestUpdateComponentRowLookup(t *testing.T) {
	f := newDraftFixture(t)
	ctx := context.Background()
	draft, tableID, doorID := f.create(t)

	_, err := f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, model.ComponentCrown, 5, usecase.ComponentPatch{})
	require.ErrorIs(t, err, domainErrors.ErrNotFound)

	_, err = f.uc.UpdateComponent(ctx, draft.ID, tableID, doorID, "handle", 0, usecase.ComponentPatch{})
	require.ErrorIs(t, err, domainErrors.ErrInvalidComponentKind)
}

func TestComponentPatchOnSteelDoor(t *testing.T) {
	door := &model.Door{Type: model.DoorTypeSteel, Steel: &model.SteelDoor{}}
	err := usecase.ComponentPatch{}.Apply(door, model.ComponentCrown, 0, &model.ReferenceData{})
	require.ErrorIs(t, err, domainErrors.ErrInvalidDoorType)
}

func TestCheckIndex(t *testing.T) {
	require.NoError(t, usecase.CheckIndex(model.ComponentCasing, 0, 1))
	require.ErrorIs(t, usecase.CheckIndex(model.ComponentCasing, -1, 1), domainErrors.ErrNotFound)
	require.ErrorIs(t, usecase.CheckIndex(model.ComponentCasing, 1, 1), domainErrors.ErrNotFound)
}
