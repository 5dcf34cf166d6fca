package errors

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrInvalidDoorType      = errors.New("invalid door type")
	ErrInvalidComponentKind = errors.New("invalid component kind")
	ErrInvalidCasingType    = errors.New("invalid casing type")
	ErrInvalidCasingFormula = errors.New("invalid casing formula")
	ErrInvalidAccessoryType = errors.New("invalid accessory type")
	ErrDerivedField         = errors.New("field is derived and cannot be edited")
	ErrCalculationFailed    = errors.New("order calculation failed")
	ErrSubmissionFailed     = errors.New("order submission failed")
	ErrInFlight             = errors.New("operation already in progress")
)
