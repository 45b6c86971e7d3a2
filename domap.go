// Package domap maps Go structs to and from typed document trees.
//
// The root package is a convenience surface over the docmap registry
// and the ir value model:
//
//	type City struct {
//		Name       string    `doc:"Name"`
//		Population int64     `doc:"Population,omitempty"`
//		Updated    time.Time `doc:"Updated,serverTimestamp"`
//	}
//
//	doc, err := domap.ToDocument(&City{Name: "Austin"})
//	...
//	var city City
//	err = domap.FromDocument(doc, &city)
//
// See package docmap for converters and the mapping rules, package ir
// for the document value model, and package memstore for an in-memory
// document store over both.
package domap

import (
	"time"

	"github.com/signadot/domap/docmap"
	"github.com/signadot/domap/ir"
)

// ToDocument serializes v with the default registry.
func ToDocument(v any) (*ir.Node, error) {
	return docmap.Serialize(v)
}

// FromDocument deserializes node into dst, a non-nil pointer, with the
// default registry.
func FromDocument(node *ir.Node, dst any) error {
	return docmap.Deserialize(node, dst)
}

// Resolve replaces write-time sentinels in node with their committed
// values, using commitTime for server timestamps.
func Resolve(node *ir.Node, commitTime time.Time) (*ir.Node, error) {
	return docmap.Resolve(node, docmap.ResolveContext{CommitTime: commitTime})
}
