package docmap

import (
	"reflect"
	"sync"
)

type fieldScope struct {
	typ   reflect.Type
	field string
}

// Registry holds converters and derived type mappings. Registration is
// expected to complete before first use; lookups are then safe for
// concurrent readers.
type Registry struct {
	mu       sync.RWMutex
	types    map[reflect.Type]Converter
	fields   map[fieldScope]Converter
	mappings map[reflect.Type]*TypeMapping
}

func NewRegistry() *Registry {
	return &Registry{
		types:    map[reflect.Type]Converter{},
		fields:   map[fieldScope]Converter{},
		mappings: map[reflect.Type]*TypeMapping{},
	}
}

// Default is the process-wide registry used by the package-level
// Serialize, Deserialize, and Register functions.
var Default = NewRegistry()

// RegisterConverter associates a whole-type converter with the type of
// proto. A whole-type converter overrides declarative field mapping for
// that type. Registering twice for the same type returns a *ConflictError.
func (r *Registry) RegisterConverter(proto any, c Converter) error {
	typ := reflect.TypeOf(proto)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, present := r.types[typ]; present {
		return &ConflictError{Type: typ}
	}
	r.types[typ] = c
	return nil
}

// RegisterFieldConverter associates a converter with one struct field of
// the type of proto. An explicit field converter overrides both the
// whole-type converter and the default mapping for that field.
func (r *Registry) RegisterFieldConverter(proto any, field string, c Converter) error {
	typ := reflect.TypeOf(proto)
	if typ.Kind() != reflect.Struct {
		return &MappingError{Type: typ, Message: "field converters require a struct type"}
	}
	if _, ok := typ.FieldByName(field); !ok {
		return &MappingError{Type: typ, Message: "no field " + field}
	}
	key := fieldScope{typ: typ, field: field}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, present := r.fields[key]; present {
		return &ConflictError{Type: typ, Field: field}
	}
	r.fields[key] = c
	return nil
}

func (r *Registry) converterFor(typ reflect.Type) (Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.types[typ]
	return c, ok
}

func (r *Registry) fieldConverterFor(typ reflect.Type, field string) (Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.fields[fieldScope{typ: typ, field: field}]
	return c, ok
}

// RegisterConverter registers a whole-type converter in the default
// registry.
func RegisterConverter(proto any, c Converter) error {
	return Default.RegisterConverter(proto, c)
}

// RegisterFieldConverter registers a field converter in the default
// registry.
func RegisterFieldConverter(proto any, field string, c Converter) error {
	return Default.RegisterFieldConverter(proto, field, c)
}
