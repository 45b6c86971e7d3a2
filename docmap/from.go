package docmap

import (
	"fmt"
	"reflect"
	"time"

	"github.com/signadot/domap/ir"
)

// Deserialize converts a document value into the Go value pointed to by v
// using the default registry.
func Deserialize(node *ir.Node, v any) error {
	return Default.Deserialize(node, v)
}

// Deserialize converts a document value into the Go value pointed to by v.
// Declared fields missing from the document keep their zero value; document
// keys with no declared field are ignored.
func (r *Registry) Deserialize(node *ir.Node, v any) error {
	if v == nil {
		return fmt.Errorf("destination must be a non-nil pointer, got nil")
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("destination must be a non-nil pointer, got %T", v)
	}
	return r.fromValue(node, val.Elem(), "")
}

func (r *Registry) fromValue(node *ir.Node, val reflect.Value, key string) error {
	if node == nil {
		return &FormatError{Key: key, Message: "missing value"}
	}
	// sentinels are write-only; reading one back means the storage layer
	// broke its contract
	if node.Type == ir.SentinelType {
		return &FormatError{
			Key:     key,
			Actual:  node.Type.String(),
			Message: fmt.Sprintf("sentinel %s in read value", node.Sentinel),
		}
	}

	typ := val.Type()

	if conv, ok := r.converterFor(typ); ok {
		res, err := conv.FromValue(node)
		if err != nil {
			// converter errors propagate unchanged
			return err
		}
		return assign(val, res, key)
	}

	kind := typ.Kind()
	if kind == reflect.Ptr {
		if node.Type == ir.NullType {
			if val.CanSet() {
				val.Set(reflect.Zero(typ))
			}
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return r.fromValue(node, val.Elem(), key)
	}

	if node.Type == ir.NullType {
		switch kind {
		case reflect.Slice, reflect.Map, reflect.Interface:
			if val.CanSet() {
				val.Set(reflect.Zero(typ))
			}
			return nil
		default:
			return &FormatError{
				Key:      key,
				Expected: typ.String(),
				Actual:   ir.NullType.String(),
				Message:  fmt.Sprintf("null into non-nullable %s", typ),
			}
		}
	}

	switch typ {
	case timeType:
		return fromTime(node, val, key)
	case nodeType:
		val.Set(reflect.ValueOf(*node.Clone()))
		return nil
	}
	if typ == nodePtrType {
		val.Set(reflect.ValueOf(node.Clone()))
		return nil
	}

	switch kind {
	case reflect.String:
		if node.Type != ir.StringType {
			return &FormatError{Key: key, Expected: ir.StringType.String(), Actual: node.Type.String()}
		}
		val.SetString(node.String)
		return nil

	case reflect.Bool:
		if node.Type != ir.BoolType {
			return &FormatError{Key: key, Expected: ir.BoolType.String(), Actual: node.Type.String()}
		}
		val.SetBool(node.Bool)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromInt(node, val, key)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromUint(node, val, key)

	case reflect.Float32, reflect.Float64:
		return fromFloat(node, val, key)

	case reflect.Slice, reflect.Array:
		return r.fromArray(node, val, key)

	case reflect.Map:
		return r.fromObjectToMap(node, val, key)

	case reflect.Struct:
		return r.fromObjectToStruct(node, val, key)

	case reflect.Interface:
		if typ.NumMethod() != 0 {
			return &FormatError{
				Key:     key,
				Message: fmt.Sprintf("unsupported interface type %s", typ),
			}
		}
		v, err := ir.ToAny(node)
		if err != nil {
			return &FormatError{Key: key, Message: "value has no plain representation", Err: err}
		}
		if v == nil {
			val.Set(reflect.Zero(typ))
			return nil
		}
		val.Set(reflect.ValueOf(v))
		return nil

	default:
		return &FormatError{
			Key:     key,
			Message: fmt.Sprintf("unsupported type %s", typ),
		}
	}
}

var (
	nodeType    = reflect.TypeOf(ir.Node{})
	nodePtrType = reflect.TypeOf((*ir.Node)(nil))
)

// assign places a converter result into the target field, checking type
// compatibility.
func assign(val reflect.Value, res any, key string) error {
	if res == nil {
		switch val.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
			val.Set(reflect.Zero(val.Type()))
			return nil
		}
		return &FormatError{
			Key:      key,
			Expected: val.Type().String(),
			Actual:   "nil",
			Message:  fmt.Sprintf("null into non-nullable %s", val.Type()),
		}
	}
	rv := reflect.ValueOf(res)
	if rv.Type().AssignableTo(val.Type()) {
		val.Set(rv)
		return nil
	}
	if rv.Type().ConvertibleTo(val.Type()) && convertsLossFree(rv, val) {
		val.Set(rv.Convert(val.Type()))
		return nil
	}
	return &FormatError{
		Key:      key,
		Expected: val.Type().String(),
		Actual:   rv.Type().String(),
		Message:  fmt.Sprintf("converter returned %s, field wants %s", rv.Type(), val.Type()),
	}
}

// convertsLossFree reports whether converting rv to val's type preserves
// the value. Numeric narrowing mirrors the overflow checks of fromInt and
// fromUint; mixed numeric and non-numeric conversions (such as Go's
// int-to-string rune conversion) never count as loss free.
func convertsLossFree(rv, val reflect.Value) bool {
	switch kindClass(rv.Kind()) {
	case classInt:
		switch kindClass(val.Kind()) {
		case classInt:
			return !val.OverflowInt(rv.Int())
		case classUint:
			return rv.Int() >= 0 && !val.OverflowUint(uint64(rv.Int()))
		case classFloat:
			return !val.OverflowFloat(float64(rv.Int()))
		}
		return false
	case classUint:
		switch kindClass(val.Kind()) {
		case classInt:
			return rv.Uint() <= 1<<63-1 && !val.OverflowInt(int64(rv.Uint()))
		case classUint:
			return !val.OverflowUint(rv.Uint())
		case classFloat:
			return !val.OverflowFloat(float64(rv.Uint()))
		}
		return false
	case classFloat:
		if kindClass(val.Kind()) == classFloat {
			return !val.OverflowFloat(rv.Float())
		}
		// float into integer truncates
		return false
	default:
		return kindClass(val.Kind()) == classOther
	}
}

type numClass int

const (
	classOther numClass = iota
	classInt
	classUint
	classFloat
)

func kindClass(k reflect.Kind) numClass {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return classInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return classUint
	case reflect.Float32, reflect.Float64:
		return classFloat
	default:
		return classOther
	}
}

func fromTime(node *ir.Node, val reflect.Value, key string) error {
	switch node.Type {
	case ir.TimeType:
		val.Set(reflect.ValueOf(node.Time))
		return nil
	case ir.StringType:
		// timestamps round-trip as RFC 3339 strings through the JSON
		// bridge
		t, err := time.Parse(time.RFC3339Nano, node.String)
		if err != nil {
			return &FormatError{
				Key:      key,
				Expected: ir.TimeType.String(),
				Actual:   ir.StringType.String(),
				Message:  fmt.Sprintf("cannot parse %q as a timestamp", node.String),
				Err:      err,
			}
		}
		val.Set(reflect.ValueOf(t))
		return nil
	default:
		return &FormatError{Key: key, Expected: ir.TimeType.String(), Actual: node.Type.String()}
	}
}

func fromInt(node *ir.Node, val reflect.Value, key string) error {
	if node.Type != ir.NumberType || node.Int64 == nil {
		return &FormatError{Key: key, Expected: "Number (integer)", Actual: numberActual(node)}
	}
	i := *node.Int64
	if val.OverflowInt(i) {
		return &FormatError{
			Key:      key,
			Expected: val.Type().String(),
			Actual:   "Number (integer)",
			Message:  fmt.Sprintf("value %d overflows %s", i, val.Type()),
		}
	}
	val.SetInt(i)
	return nil
}

func fromUint(node *ir.Node, val reflect.Value, key string) error {
	if node.Type != ir.NumberType || node.Int64 == nil {
		return &FormatError{Key: key, Expected: "Number (integer)", Actual: numberActual(node)}
	}
	i := *node.Int64
	if i < 0 {
		return &FormatError{
			Key:      key,
			Expected: val.Type().String(),
			Actual:   "Number (integer)",
			Message:  fmt.Sprintf("negative value %d into %s", i, val.Type()),
		}
	}
	u := uint64(i)
	if val.OverflowUint(u) {
		return &FormatError{
			Key:      key,
			Expected: val.Type().String(),
			Actual:   "Number (integer)",
			Message:  fmt.Sprintf("value %d overflows %s", i, val.Type()),
		}
	}
	val.SetUint(u)
	return nil
}

func fromFloat(node *ir.Node, val reflect.Value, key string) error {
	if node.Type != ir.NumberType {
		return &FormatError{Key: key, Expected: ir.NumberType.String(), Actual: node.Type.String()}
	}
	var f float64
	switch {
	case node.Float64 != nil:
		f = *node.Float64
	case node.Int64 != nil:
		f = float64(*node.Int64)
	default:
		return &FormatError{Key: key, Message: "number node has no value"}
	}
	val.SetFloat(f)
	return nil
}

// numberActual names the actual type for number mismatch errors,
// distinguishing the float variant.
func numberActual(node *ir.Node) string {
	if node.Type == ir.NumberType && node.Float64 != nil {
		return "Number (float)"
	}
	return node.Type.String()
}

func (r *Registry) fromArray(node *ir.Node, val reflect.Value, key string) error {
	if node.Type != ir.ArrayType {
		return &FormatError{Key: key, Expected: ir.ArrayType.String(), Actual: node.Type.String()}
	}
	length := len(node.Values)
	typ := val.Type()
	if typ.Kind() == reflect.Array {
		if val.Len() != length {
			return &FormatError{
				Key:     key,
				Message: fmt.Sprintf("array length mismatch: have %d elements for [%d]%s", length, val.Len(), typ.Elem()),
			}
		}
	} else {
		val.Set(reflect.MakeSlice(typ, length, length))
	}
	for i := 0; i < length; i++ {
		if err := r.fromValue(node.Values[i], val.Index(i), elemPath(key, i)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) fromObjectToMap(node *ir.Node, val reflect.Value, key string) error {
	if node.Type != ir.ObjectType {
		return &FormatError{Key: key, Expected: ir.ObjectType.String(), Actual: node.Type.String()}
	}
	typ := val.Type()
	if typ.Key().Kind() != reflect.String {
		return &FormatError{
			Key:     key,
			Message: fmt.Sprintf("map keys must be strings, got %s", typ.Key()),
		}
	}
	val.Set(reflect.MakeMapWithSize(typ, len(node.Fields)))
	valType := typ.Elem()
	for i := range node.Fields {
		entryKey := node.Fields[i].String
		entryVal := reflect.New(valType).Elem()
		if err := r.fromValue(node.Values[i], entryVal, childPath(key, entryKey)); err != nil {
			return err
		}
		val.SetMapIndex(reflect.ValueOf(entryKey).Convert(typ.Key()), entryVal)
	}
	return nil
}

// fromObjectToStruct fills declared fields from the object node. Missing
// keys leave the field at its zero value; undeclared keys are ignored.
func (r *Registry) fromObjectToStruct(node *ir.Node, val reflect.Value, key string) error {
	if node.Type != ir.ObjectType {
		return &FormatError{Key: key, Expected: ir.ObjectType.String(), Actual: node.Type.String()}
	}
	tm, err := r.mappingFor(val.Type())
	if err != nil {
		return err
	}
	// undeclared keys are ignored, but a sentinel hiding under one is
	// still a storage-contract violation
	for i := range node.Fields {
		entryKey := node.Fields[i].String
		if tm.FieldByKey(entryKey) != nil {
			continue
		}
		if node.Values[i].HasSentinel() {
			return &FormatError{
				Key:     childPath(key, entryKey),
				Actual:  ir.SentinelType.String(),
				Message: "sentinel in read value",
			}
		}
	}
	for _, fm := range tm.Fields {
		child := ir.Get(node, fm.Key)
		if child == nil {
			continue
		}
		fieldVal := val.FieldByIndex(fm.Index)
		fieldKey := childPath(key, fm.Key)
		if child.Type == ir.SentinelType {
			return &FormatError{
				Key:     fieldKey,
				Actual:  child.Type.String(),
				Message: fmt.Sprintf("sentinel %s in read value", child.Sentinel),
			}
		}
		if conv, ok := r.fieldConverterFor(tm.Type, fm.Name); ok {
			res, err := conv.FromValue(child)
			if err != nil {
				// converter errors propagate unchanged
				return err
			}
			if err := assign(fieldVal, res, fieldKey); err != nil {
				return err
			}
			continue
		}
		if err := r.fromValue(child, fieldVal, fieldKey); err != nil {
			return err
		}
	}
	return nil
}
