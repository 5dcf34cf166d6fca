// Package dimension keeps casing and crown sizes consistent with door dimensions.
package dimension

import (
	"fmt"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/model"
)

// Ranges is the casing range lookup used by formula2.
type Ranges []model.CasingRange

// Find returns the range with given id.
func (r Ranges) Find(id model.ID) (model.CasingRange, bool) {
	if id.IsZero() {
		return model.CasingRange{}, false
	}
	for _, rng := range r {
		if rng.ID == id {
			return rng, true
		}
	}
	return model.CasingRange{}, false
}

// RecalculateCrowns sets every crown width to door width plus crown size.
func RecalculateCrowns(door *model.Door, crownSize float64) {
	if door.Wood == nil {
		return
	}
	for i := range door.Wood.Crowns {
		door.Wood.Crowns[i].Width = door.Width + crownSize
	}
}

// RecalculateCasing derives casing width and height. Width is always the global
// casing size. In formula2 with a known range the range's casing_size wins; otherwise
// the height follows the casing type.
func RecalculateCasing(c *model.Casing, door model.Door, casingSize float64, ranges Ranges) error {
	c.Width = casingSize

	switch c.Formula {
	case model.CasingFormulaRange:
		if rng, ok := ranges.Find(c.CasingRange); ok {
			c.Height = rng.CasingSize.Float()
			return nil
		}
	case model.CasingFormulaArithmetic:
	default:
		return fmt.Errorf("%w: %q", domainErrors.ErrInvalidCasingFormula, c.Formula)
	}

	height, err := arithmeticHeight(c.CasingType, door, casingSize)
	if err != nil {
		return err
	}
	c.Height = height
	return nil
}

func arithmeticHeight(t model.CasingType, door model.Door, casingSize float64) (float64, error) {
	switch t {
	case model.CasingTypeSide:
		return door.Height + casingSize, nil
	case model.CasingTypeStraight:
		return door.Width + 2*casingSize, nil
	default:
		return 0, fmt.Errorf("%w: %q", domainErrors.ErrInvalidCasingType, t)
	}
}

// RecalculateDoor refreshes every derived dimension of a wooden door.
// Steel doors carry no derived dimensions.
func RecalculateDoor(door *model.Door, settings model.AttributeSettings, ranges Ranges) error {
	switch door.Type {
	case model.DoorTypeSteel:
		return nil
	case model.DoorTypeWood:
	default:
		return fmt.Errorf("%w: %q", domainErrors.ErrInvalidDoorType, door.Type)
	}
	if door.Wood == nil {
		return nil
	}

	RecalculateCrowns(door, settings.CrownSize.Float())
	for i := range door.Wood.Casings {
		if err := RecalculateCasing(&door.Wood.Casings[i], *door, settings.CasingSize.Float(), ranges); err != nil {
			return fmt.Errorf("casing %d: %w", i, err)
		}
	}
	return nil
}

// SetCasingHeight applies a manual height. Formula1 heights are derived only.
func SetCasingHeight(c *model.Casing, height float64) error {
	switch c.Formula {
	case model.CasingFormulaArithmetic:
		return domainErrors.ErrDerivedField
	case model.CasingFormulaRange:
		c.Height = height
		return nil
	default:
		return fmt.Errorf("%w: %q", domainErrors.ErrInvalidCasingFormula, c.Formula)
	}
}
