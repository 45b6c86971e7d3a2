package ir

import (
	"bytes"
	"encoding/json"
)

// ToJSON encodes a node tree as plain JSON. Timestamps encode as RFC 3339
// strings. Sentinel nodes return ErrSentinelValue: they never leave the
// write path.
func ToJSON(node *Node) ([]byte, error) {
	v, err := ToAny(node)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// FromJSON decodes plain JSON into a node tree. Integers decode to the
// Int64 number variant and other numbers to Float64. JSON strings stay
// strings: the JSON bridge carries no timestamp typing.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return FromAny(v)
}
