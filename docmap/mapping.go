package docmap

import (
	"fmt"
	"reflect"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// FieldMapping describes how one struct field maps to a document key.
type FieldMapping struct {
	// Name is the struct field name.
	Name string

	// Key is the document key, defaulting to Name unless the doc tag
	// renames it.
	Key string

	// Index is the reflect field index path; embedded struct fields
	// carry the full path from the outer type.
	Index []int

	// Type is the Go type of the field.
	Type reflect.Type

	// OmitEmpty skips the field when serializing a zero value.
	OmitEmpty bool

	// ServerTimestamp serializes a zero time.Time as the server
	// timestamp sentinel.
	ServerTimestamp bool
}

// TypeMapping is the ordered field-to-key mapping derived once per struct
// type from reflection and doc tags.
type TypeMapping struct {
	Type   reflect.Type
	Fields []*FieldMapping

	byKey map[string]*FieldMapping
}

// FieldByKey returns the mapping for a document key, nil if undeclared.
func (tm *TypeMapping) FieldByKey(key string) *FieldMapping {
	return tm.byKey[key]
}

// mappingFor returns the cached TypeMapping for a struct type, deriving it
// on first use.
func (r *Registry) mappingFor(typ reflect.Type) (*TypeMapping, error) {
	r.mu.RLock()
	tm, ok := r.mappings[typ]
	r.mu.RUnlock()
	if ok {
		return tm, nil
	}
	tm, err := buildMapping(typ)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prior, ok := r.mappings[typ]; ok {
		return prior, nil
	}
	r.mappings[typ] = tm
	return tm, nil
}

func buildMapping(typ reflect.Type) (*TypeMapping, error) {
	if typ.Kind() != reflect.Struct {
		return nil, &MappingError{Type: typ, Message: "not a struct type"}
	}
	tm := &TypeMapping{
		Type:  typ,
		byKey: map[string]*FieldMapping{},
	}
	if err := collectFields(typ, nil, tm); err != nil {
		return nil, err
	}
	return tm, nil
}

// collectFields appends field mappings for typ to tm in declaration order,
// flattening embedded structs. prefix is the reflect index path leading to
// typ within the outer type.
func collectFields(typ reflect.Type, prefix []int, tm *TypeMapping) error {
	n := typ.NumField()
	for i := 0; i < n; i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		index := append(append([]int{}, prefix...), i)

		if field.Anonymous {
			if field.Type.Kind() != reflect.Struct {
				continue
			}
			if err := collectFields(field.Type, index, tm); err != nil {
				return err
			}
			continue
		}

		opts, err := parseTag(field.Tag.Get(tagName))
		if err != nil {
			return &MappingError{Type: tm.Type, Message: fmt.Sprintf("field %s: %v", field.Name, err)}
		}
		if opts.Omit {
			continue
		}
		if opts.ServerTimestamp && field.Type != timeType {
			return &MappingError{
				Type:    tm.Type,
				Message: fmt.Sprintf("field %s: serverTimestamp requires time.Time, got %s", field.Name, field.Type),
			}
		}
		key := field.Name
		if opts.Key != "" {
			key = opts.Key
		}
		if prior, exists := tm.byKey[key]; exists {
			return &MappingError{
				Type:    tm.Type,
				Message: fmt.Sprintf("document key %q claimed by both %s and %s", key, prior.Name, field.Name),
			}
		}
		fm := &FieldMapping{
			Name:            field.Name,
			Key:             key,
			Index:           index,
			Type:            field.Type,
			OmitEmpty:       opts.OmitEmpty,
			ServerTimestamp: opts.ServerTimestamp,
		}
		tm.Fields = append(tm.Fields, fm)
		tm.byKey[key] = fm
	}
	return nil
}
