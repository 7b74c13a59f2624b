package orrery

import "errors"

var (
	// ErrParameterBounds indicates a setter value outside its valid range.
	ErrParameterBounds = errors.New("orrery: parameter out of valid bounds")

	ErrUnknownBody   = errors.New("orrery: unknown body")
	ErrDuplicateBody = errors.New("orrery: duplicate body name")
	ErrNilBody       = errors.New("orrery: nil body")
)
