package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/domap/format"
	"github.com/signadot/domap/ir"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/lexer"
)

// EncState carries the encoding configuration built from EncodeOptions.
type EncState struct {
	format format.Format
	indent int
	colors *Colors
}

func newEncState(opts ...EncodeOption) *EncState {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes node to w in the configured format, YAML by default.
// Sentinel nodes have no text form and produce an error.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts...)
	switch es.format {
	case format.JSONFormat:
		v, err := ir.ToAny(node)
		if err != nil {
			return err
		}
		return es.encodeJSON(v, w)
	case format.YAMLFormat:
		v, err := toYAMLAny(node)
		if err != nil {
			return err
		}
		return es.encodeYAML(v, w)
	default:
		return fmt.Errorf("%w: %d", format.ErrBadFormat, es.format)
	}
}

// toYAMLAny converts IR to goccy's marshal representation, keeping
// object field order via yaml.MapSlice.
func toYAMLAny(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.ObjectType:
		ms := make(yaml.MapSlice, len(node.Fields))
		for i := range node.Fields {
			v, err := toYAMLAny(node.Values[i])
			if err != nil {
				return nil, err
			}
			ms[i] = yaml.MapItem{Key: node.Fields[i].String, Value: v}
		}
		return ms, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			v, err := toYAMLAny(elt)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	default:
		return ir.ToAny(node)
	}
}

// EncodeString is Encode to a string.
func EncodeString(node *ir.Node, opts ...EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (es *EncState) encodeJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", strings.Repeat(" ", es.indent))
	return enc.Encode(v)
}

func (es *EncState) encodeYAML(v any, w io.Writer) error {
	d, err := yaml.MarshalWithOptions(v, yaml.Indent(es.indent))
	if err != nil {
		return err
	}
	if es.colors == nil {
		_, err = w.Write(d)
		return err
	}
	tokens := lexer.Tokenize(string(d))
	_, err = io.WriteString(w, es.colors.printer().PrintTokens(tokens))
	return err
}
