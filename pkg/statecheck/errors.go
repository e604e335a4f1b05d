package statecheck

import "errors"

// Engine faults. A verification failure is never reported through these.
var (
	ErrInvalidConfig    = errors.New("invalid config")
	ErrInvalidSystem    = errors.New("invalid system")
	ErrNilCommand       = errors.New("nil command")
	ErrClone            = errors.New("clone failed")
	ErrShrinkKind       = errors.New("shrink candidate changed command kind")
	ErrShrinkNotSmaller = errors.New("shrink candidate is not strictly smaller")
	ErrNotFailing       = errors.New("sequence does not fail")
	ErrNondeterministic = errors.New("sequence failure is not reproducible")
)
