package docmap

import "github.com/signadot/domap/ir"

// Converter translates between a domain value and its document
// representation. Both directions are pure functions; errors they return
// propagate to the caller unchanged.
type Converter interface {
	ToValue(v any) (*ir.Node, error)
	FromValue(node *ir.Node) (any, error)
}

// ConverterFuncs adapts a pair of functions to the Converter interface.
type ConverterFuncs struct {
	To   func(v any) (*ir.Node, error)
	From func(node *ir.Node) (any, error)
}

func (c ConverterFuncs) ToValue(v any) (*ir.Node, error) {
	return c.To(v)
}

func (c ConverterFuncs) FromValue(node *ir.Node) (any, error) {
	return c.From(node)
}
