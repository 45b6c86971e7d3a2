package ir

import "errors"

var (
	// ErrSentinelValue is returned when a sentinel node reaches a surface
	// that only handles concrete values, such as the JSON bridge.
	ErrSentinelValue = errors.New("sentinel value")

	// ErrBadValue is returned when a Go value has no IR representation.
	ErrBadValue = errors.New("bad value")
)
