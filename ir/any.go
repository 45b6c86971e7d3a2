package ir

import (
	"encoding/json"
	"fmt"
	"time"
)

// ToAny converts a node tree to its plain Go representation: nil, bool,
// int64, float64, string, time.Time, []any, and map[string]any.
// Sentinel nodes have no plain representation and return ErrSentinelValue.
func ToAny(node *Node) (any, error) {
	switch node.Type {
	case NullType:
		return nil, nil
	case BoolType:
		return node.Bool, nil
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64, nil
		}
		if node.Float64 != nil {
			return *node.Float64, nil
		}
		return nil, fmt.Errorf("%w: number node has no value", ErrBadValue)
	case StringType:
		return node.String, nil
	case TimeType:
		return node.Time, nil
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			v, err := ToAny(elt)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	case ObjectType:
		n := len(node.Fields)
		res := make(map[string]any, n)
		for i := range n {
			v, err := ToAny(node.Values[i])
			if err != nil {
				return nil, err
			}
			res[node.Fields[i].String] = v
		}
		return res, nil
	case SentinelType:
		return nil, fmt.Errorf("%w: %s", ErrSentinelValue, node.Sentinel)
	default:
		return nil, fmt.Errorf("%w: ir type %s", ErrBadValue, node.Type)
	}
}

// FromAny converts a plain Go value to a node tree. It accepts the types
// produced by ToAny plus the integer and float widths commonly produced by
// decoders, json.Number, and *Node itself (cloned).
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x.Clone(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case time.Time:
		return FromTime(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return FromInt(int64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return FromInt(int64(x)), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return FromInt(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %q", ErrBadValue, x.String())
		}
		return FromFloat(f), nil
	case []any:
		vals := make([]*Node, len(x))
		for i, elt := range x {
			node, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			vals[i] = node
		}
		return FromSlice(vals), nil
	case map[string]any:
		yMap := make(map[string]*Node, len(x))
		for key, elt := range x {
			node, err := FromAny(elt)
			if err != nil {
				return nil, err
			}
			yMap[key] = node
		}
		return FromMap(yMap), nil
	default:
		return nil, fmt.Errorf("%w: go type %T", ErrBadValue, v)
	}
}
