package modmath

import "errors"

var (
	// ErrInvalidParameter is returned when domain parameters fail validation.
	ErrInvalidParameter = errors.New("modmath: invalid domain parameter")

	// ErrNoGeneratorFound is returned when none of the candidate bases qualifies.
	ErrNoGeneratorFound = errors.New("modmath: no generator found among candidates")

	// ErrInvalidRange is returned by RandomInt when min > max.
	ErrInvalidRange = errors.New("modmath: invalid random range")
)
