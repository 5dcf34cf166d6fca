package model

import (
	"fmt"

	domainErrors "github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/domain/errors"
)

// DoorType selects the door variant of the whole order.
type DoorType string

const (
	DoorTypeWood  DoorType = "WOOD"
	DoorTypeSteel DoorType = "STEEL"
)

// ParseDoorType validates raw door type value.
func ParseDoorType(raw string) (DoorType, error) {
	switch t := DoorType(raw); t {
	case DoorTypeWood, DoorTypeSteel:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", domainErrors.ErrInvalidDoorType, raw)
	}
}

// CasingType distinguishes side and top casings.
type CasingType string

const (
	CasingTypeSide     CasingType = "боковой"
	CasingTypeStraight CasingType = "прямой"
)

// ParseCasingType validates raw casing type value.
func ParseCasingType(raw string) (CasingType, error) {
	switch t := CasingType(raw); t {
	case CasingTypeSide, CasingTypeStraight:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", domainErrors.ErrInvalidCasingType, raw)
	}
}

// CasingFormula selects how casing height is derived.
type CasingFormula string

const (
	// CasingFormulaArithmetic derives height from door dimensions.
	CasingFormulaArithmetic CasingFormula = "formula1"
	// CasingFormulaRange takes height from the selected casing range.
	CasingFormulaRange CasingFormula = "formula2"
)

// ParseCasingFormula validates raw casing formula value.
func ParseCasingFormula(raw string) (CasingFormula, error) {
	switch f := CasingFormula(raw); f {
	case CasingFormulaArithmetic, CasingFormulaRange:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", domainErrors.ErrInvalidCasingFormula, raw)
	}
}

// FormulaFromSetting maps the sitewide casing_formula toggle to a formula mode.
func FormulaFromSetting(enabled bool) CasingFormula {
	if enabled {
		return CasingFormulaArithmetic
	}
	return CasingFormulaRange
}

// AccessoryType names one of the fixed accessory slots of a wooden door.
type AccessoryType string

const (
	AccessoryCube    AccessoryType = "cube"
	AccessoryLeg     AccessoryType = "leg"
	AccessoryGlass   AccessoryType = "glass"
	AccessoryLock    AccessoryType = "lock"
	AccessoryTopsa   AccessoryType = "topsa"
	AccessoryBeading AccessoryType = "beading"
)

// AccessoryTypes lists accessory slots in seeding order.
var AccessoryTypes = []AccessoryType{
	AccessoryCube,
	AccessoryLeg,
	AccessoryGlass,
	AccessoryLock,
	AccessoryTopsa,
	AccessoryBeading,
}

// ParseAccessoryType validates raw accessory type value.
func ParseAccessoryType(raw string) (AccessoryType, error) {
	for _, t := range AccessoryTypes {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domainErrors.ErrInvalidAccessoryType, raw)
}

// DisplayName returns the fixed semantic name stored with the accessory line.
func (t AccessoryType) DisplayName() string {
	switch t {
	case AccessoryCube:
		return "Кубик"
	case AccessoryLeg:
		return "Ножка"
	case AccessoryGlass:
		return "Стекло"
	case AccessoryLock:
		return "Замок"
	case AccessoryTopsa:
		return "Топса"
	case AccessoryBeading:
		return "Штапик"
	default:
		return string(t)
	}
}

// ComponentKind enumerates nested line item collections of a wooden door.
type ComponentKind string

const (
	ComponentExtension ComponentKind = "extensions"
	ComponentCasing    ComponentKind = "casings"
	ComponentCrown     ComponentKind = "crowns"
	ComponentAccessory ComponentKind = "accessories"
)

// ComponentKinds lists every component kind.
var ComponentKinds = []ComponentKind{
	ComponentExtension,
	ComponentCasing,
	ComponentCrown,
	ComponentAccessory,
}

// ParseComponentKind validates raw component kind value.
func ParseComponentKind(raw string) (ComponentKind, error) {
	for _, k := range ComponentKinds {
		if string(k) == raw {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domainErrors.ErrInvalidComponentKind, raw)
}

// OpeningSide of a steel door.
type OpeningSide string

const (
	OpeningRight OpeningSide = "Правый"
	OpeningLeft  OpeningSide = "Левый"
)

// ParseOpeningSide validates raw opening side value.
func ParseOpeningSide(raw string) (OpeningSide, error) {
	switch s := OpeningSide(raw); s {
	case OpeningRight, OpeningLeft:
		return s, nil
	default:
		return "", fmt.Errorf("%w: opening side %q", domainErrors.ErrValidation, raw)
	}
}

// Presence is a yes/no flag stored by its display value.
type Presence string

const (
	PresenceYes Presence = "Бар"
	PresenceNo  Presence = "Жок"
)

// ParsePresence validates raw yes/no value.
func ParsePresence(raw string) (Presence, error) {
	switch p := Presence(raw); p {
	case PresenceYes, PresenceNo:
		return p, nil
	default:
		return "", fmt.Errorf("%w: presence %q", domainErrors.ErrValidation, raw)
	}
}
