package encode

import (
	"fmt"

	"github.com/signadot/domap/format"
	"github.com/signadot/domap/ir"

	"github.com/goccy/go-yaml"
)

// Decode parses d into an IR node. The format defaults to YAML, which
// also accepts JSON input; pass EncodeFormat(format.JSONFormat) to
// parse strictly as JSON, preserving integer precision via
// json.Number.
func Decode(d []byte, opts ...EncodeOption) (*ir.Node, error) {
	es := newEncState(opts...)
	if es.format == format.JSONFormat {
		return ir.FromJSON(d)
	}
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return fromYAMLAny(v)
}

// fromYAMLAny converts goccy's decoded representation to IR, keeping
// the document's key order via yaml.MapSlice.
func fromYAMLAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, 0, len(x))
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("yaml map key %T, want string", item.Key)
			}
			val, err := fromYAMLAny(item.Value)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
		}
		return ir.FromKeyVals(kvs), nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, elt := range x {
			node, err := fromYAMLAny(elt)
			if err != nil {
				return nil, err
			}
			vals[i] = node
		}
		return ir.FromSlice(vals), nil
	default:
		return ir.FromAny(v)
	}
}
