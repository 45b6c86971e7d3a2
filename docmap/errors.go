package docmap

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrConverterExists is wrapped by *ConflictError on duplicate
	// converter registration.
	ErrConverterExists = errors.New("converter exists")

	// ErrBadSentinel is wrapped by sentinel resolution errors when a
	// sentinel appears somewhere it cannot be resolved.
	ErrBadSentinel = errors.New("bad sentinel position")
)

// ConflictError reports a duplicate converter registration for the same
// type-and-scope.
type ConflictError struct {
	Type  reflect.Type
	Field string // empty for whole-type scope
}

func (e *ConflictError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s.%s: %v", e.Type, e.Field, ErrConverterExists)
	}
	return fmt.Sprintf("%s: %v", e.Type, ErrConverterExists)
}

func (e *ConflictError) Unwrap() error {
	return ErrConverterExists
}

// FormatError represents a value/type mismatch during deserialization, an
// unexpected sentinel on read, or a null into a non-nullable field.
type FormatError struct {
	Key      string // document key path (e.g., "address.street")
	Expected string
	Actual   string
	Message  string
	Err      error
}

func (e *FormatError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
	}
	if e.Key != "" {
		return fmt.Sprintf("format error at %s: %s", e.Key, msg)
	}
	return fmt.Sprintf("format error: %s", msg)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// MarshalError represents an error during serialization.
type MarshalError struct {
	FieldPath string // Go field path (e.g., "Address.Street")
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// MappingError represents an error deriving a type mapping from a struct
// type and its tags.
type MappingError struct {
	Type    reflect.Type
	Message string
}

func (e *MappingError) Error() string {
	if e.Type != nil {
		return fmt.Sprintf("mapping error for %s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("mapping error: %s", e.Message)
}
