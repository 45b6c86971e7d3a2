package docmap

import (
	"fmt"
	"reflect"
	"time"

	"github.com/signadot/domap/debug"
	"github.com/signadot/domap/ir"
)

// Serialize converts a Go value to a document value using the default
// registry.
func Serialize(v any) (*ir.Node, error) {
	return Default.Serialize(v)
}

// Serialize converts a Go value to a document value. Struct fields are
// walked in declaration order; converter precedence is explicit field
// converter, then whole-type converter, then default passthrough.
func (r *Registry) Serialize(v any) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	visited := make(map[uintptr]string)
	res, err := r.toValue(reflect.ValueOf(v), "", visited)
	if err != nil {
		return nil, err
	}
	if debug.Map() {
		debug.Logf("docmap: serialized %T:\n%s\n", v, debug.Doc{Node: res})
	}
	return res, nil
}

// toValue converts a reflect.Value to a node. fieldPath is used for error
// reporting; visited tracks pointer addresses to detect cycles.
func (r *Registry) toValue(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	typ := val.Type()

	if conv, ok := r.converterFor(typ); ok {
		// converter errors propagate unchanged
		return conv.ToValue(val.Interface())
	}

	switch v := val.Interface().(type) {
	case *ir.Node:
		if v == nil {
			return ir.Null(), nil
		}
		return v.Clone(), nil
	case time.Time:
		return ir.FromTime(v), nil
	}

	kind := typ.Kind()
	if kind == reflect.Ptr {
		if val.IsNil() {
			return ir.Null(), nil
		}
		ptrAddr := val.Pointer()
		if prevPath, seen := visited[ptrAddr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference, previously seen at %q", prevPath),
			}
		}
		visited[ptrAddr] = fieldPath
		node, err := r.toValue(val.Elem(), fieldPath, visited)
		delete(visited, ptrAddr)
		return node, err
	}

	switch kind {
	case reflect.String:
		return ir.FromString(val.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ir.FromInt(int64(val.Uint())), nil

	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil

	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil

	case reflect.Slice, reflect.Array:
		return r.sliceToValue(val, fieldPath, visited)

	case reflect.Map:
		return r.mapToValue(val, fieldPath, visited)

	case reflect.Struct:
		return r.structToValue(val, fieldPath, visited)

	case reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return r.toValue(val.Elem(), fieldPath, visited)

	default:
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported type: %s", typ),
		}
	}
}

func (r *Registry) sliceToValue(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if val.Kind() == reflect.Slice {
		if val.IsNil() {
			return ir.Null(), nil
		}
		slicePtr := val.Pointer()
		if prevPath, seen := visited[slicePtr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference, previously seen at %q", prevPath),
			}
		}
		visited[slicePtr] = fieldPath
		defer delete(visited, slicePtr)
	}

	length := val.Len()
	elements := make([]*ir.Node, 0, length)
	for i := 0; i < length; i++ {
		elemNode, err := r.toValue(val.Index(i), elemPath(fieldPath, i), visited)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elemNode)
	}
	return ir.FromSlice(elements), nil
}

func (r *Registry) mapToValue(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if val.IsNil() {
		return ir.Null(), nil
	}
	if val.Type().Key().Kind() != reflect.String {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("map keys must be strings, got %s", val.Type().Key()),
		}
	}

	mapPtr := val.Pointer()
	if prevPath, seen := visited[mapPtr]; seen {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("circular reference, previously seen at %q", prevPath),
		}
	}
	visited[mapPtr] = fieldPath
	defer delete(visited, mapPtr)

	irMap := make(map[string]*ir.Node, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		node, err := r.toValue(iter.Value(), childPath(fieldPath, key), visited)
		if err != nil {
			return nil, err
		}
		irMap[key] = node
	}
	return ir.FromMap(irMap), nil
}

// structToValue walks the type mapping in declaration order and assembles
// an object node keyed by each field's document key.
func (r *Registry) structToValue(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	tm, err := r.mappingFor(val.Type())
	if err != nil {
		return nil, err
	}
	kvs := make([]ir.KeyVal, 0, len(tm.Fields))
	for _, fm := range tm.Fields {
		fieldVal := val.FieldByIndex(fm.Index)
		if fm.OmitEmpty && fieldVal.IsZero() {
			continue
		}

		var node *ir.Node
		if conv, ok := r.fieldConverterFor(tm.Type, fm.Name); ok {
			node, err = conv.ToValue(fieldVal.Interface())
			if err != nil {
				// converter errors propagate unchanged
				return nil, err
			}
		} else if fm.ServerTimestamp && fieldVal.IsZero() {
			node = ir.ServerTimestamp()
		} else {
			node, err = r.toValue(fieldVal, childPath(fieldPath, fm.Key), visited)
			if err != nil {
				return nil, err
			}
		}
		kvs = append(kvs, ir.KeyVal{Key: fm.Key, Val: node})
	}
	return ir.FromKeyVals(kvs), nil
}

func childPath(fieldPath, key string) string {
	if fieldPath == "" {
		return key
	}
	return fieldPath + "." + key
}

func elemPath(fieldPath string, i int) string {
	return fmt.Sprintf("%s[%d]", fieldPath, i)
}
