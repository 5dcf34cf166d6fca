package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/engine/dimension"
)

// DoorPatch lists the door fields to change. Nil fields are left alone.
type DoorPatch struct {
	Model    *model.ID
	Price    *decimal.Decimal
	Quantity *float64
	Height   *float64
	Width    *float64
	Steel    *SteelPatch
}

// SteelPatch lists steel-only door fields.
type SteelPatch struct {
	DoorName    *string
	SteelColor  *model.ID
	CrownCasing []string
	Frame       *model.ID
	Cladding    *model.ID
	Lock        *model.ID
	Peephole    *model.Presence
	OpeningSide *model.OpeningSide
	Promog      *model.Presence
}

func (p DoorPatch) apply(door *model.Door) error {
	if p.Steel != nil && door.Steel == nil {
		return fmt.Errorf("%w: steel fields on a %s door", domainErrors.ErrInvalidDoorType, door.Type)
	}

	setIf(&door.Model, p.Model)
	setIf(&door.Price, p.Price)
	setIf(&door.Quantity, p.Quantity)
	setIf(&door.Height, p.Height)
	setIf(&door.Width, p.Width)

	if s := p.Steel; s != nil {
		st := door.Steel
		setIf(&st.DoorName, s.DoorName)
		setIf(&st.SteelColor, s.SteelColor)
		setIf(&st.Frame, s.Frame)
		setIf(&st.Cladding, s.Cladding)
		setIf(&st.Lock, s.Lock)
		setIf(&st.Peephole, s.Peephole)
		setIf(&st.OpeningSide, s.OpeningSide)
		setIf(&st.Promog, s.Promog)
		if s.CrownCasing != nil {
			st.CrownCasing = append([]string{}, s.CrownCasing...)
		}
	}
	return nil
}

// ComponentPatch lists the component row fields to change. Height and width are
// rejected where they are derived.
type ComponentPatch struct {
	Model         *model.ID
	Price         *decimal.Decimal
	Quantity      *float64
	Height        *float64
	Width         *float64
	CasingType    *model.CasingType
	Formula       *model.CasingFormula
	CasingRange   *model.ID
	AccessoryType *model.AccessoryType
	Name          *string
}

func (p ComponentPatch) applyItem(item *model.LineItem) {
	setIf(&item.Model, p.Model)
	setIf(&item.Price, p.Price)
	setIf(&item.Quantity, p.Quantity)
}

func (p ComponentPatch) apply(door *model.Door, kind model.ComponentKind, index int, ref *model.ReferenceData) error {
	if door.Wood == nil {
		return fmt.Errorf("%w: components require a wooden door", domainErrors.ErrInvalidDoorType)
	}
	w := door.Wood
	settings := ref.AttributeSettings

	switch kind {
	case model.ComponentExtension:
		if err := checkIndex(kind, index, len(w.Extensions)); err != nil {
			return err
		}
		e := &w.Extensions[index]
		p.applyItem(&e.LineItem)
		setIf(&e.Height, p.Height)
		setIf(&e.Width, p.Width)
		return nil

	case model.ComponentCasing:
		if err := checkIndex(kind, index, len(w.Casings)); err != nil {
			return err
		}
		if p.Width != nil {
			return fmt.Errorf("casing width: %w", domainErrors.ErrDerivedField)
		}
		return p.applyCasing(&w.Casings[index], *door, settings, ref.CasingRanges)

	case model.ComponentCrown:
		if err := checkIndex(kind, index, len(w.Crowns)); err != nil {
			return err
		}
		if p.Width != nil {
			return fmt.Errorf("crown width: %w", domainErrors.ErrDerivedField)
		}
		c := &w.Crowns[index]
		p.applyItem(&c.LineItem)
		setIf(&c.Height, p.Height)
		return nil

	case model.ComponentAccessory:
		if err := checkIndex(kind, index, len(w.Accessories)); err != nil {
			return err
		}
		if p.Height != nil || p.Width != nil {
			return fmt.Errorf("%w: accessories have no dimensions", domainErrors.ErrValidation)
		}
		a := &w.Accessories[index]
		p.applyItem(&a.LineItem)
		if p.AccessoryType != nil {
			a.AccessoryType = *p.AccessoryType
			a.Name = p.AccessoryType.DisplayName()
		}
		setIf(&a.Name, p.Name)
		return nil

	default:
		return fmt.Errorf("%w: %q", domainErrors.ErrInvalidComponentKind, kind)
	}
}

// applyCasing updates a casing. The range only changes when the patch names one; a
// formula2 casing without a range keeps the arithmetic height.
func (p ComponentPatch) applyCasing(c *model.Casing, door model.Door, settings model.AttributeSettings, ranges dimension.Ranges) error {
	p.applyItem(&c.LineItem)
	setIf(&c.CasingType, p.CasingType)
	setIf(&c.Formula, p.Formula)

	if p.CasingRange != nil {
		if _, ok := ranges.Find(*p.CasingRange); !ok && !p.CasingRange.IsZero() {
			return fmt.Errorf("casing range %s: %w", *p.CasingRange, domainErrors.ErrNotFound)
		}
		c.CasingRange = *p.CasingRange
	}

	if p.Height != nil {
		c.Width = settings.CasingSize.Float()
		return dimension.SetCasingHeight(c, *p.Height)
	}
	return dimension.RecalculateCasing(c, door, settings.CasingSize.Float(), ranges)
}

func checkIndex(kind model.ComponentKind, index, n int) error {
	if index < 0 || index >= n {
		return fmt.Errorf("%s row %d: %w", kind, index, domainErrors.ErrNotFound)
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
