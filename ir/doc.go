// Package ir provides the in-memory representation of document values.
//
// # Overview
//
// A document exchanged with a document store is represented as a tree of
// ir.Node values. The IR is a recursive tagged union: depending on Type,
// the value lives in one of the Node fields.
//
// # Node Types
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (int64 or float64 variant)
//   - StringType: string value
//   - TimeType: timestamp value
//   - ArrayType: ordered list of nodes
//   - ObjectType: key-value pairs (fields and values)
//   - SentinelType: write-time placeholder resolved by the store
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	when := ir.FromTime(time.Now())
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "key": ir.FromString("value"),
//	})
//	arr := ir.FromSlice([]*ir.Node{
//	    ir.FromInt(1),
//	    ir.FromInt(2),
//	})
//
// # Objects
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there are always as many fields as values. Keys are string typed and
// unique within an object, and field order is preserved.
//
// # Sentinels
//
// SentinelType nodes mark positions for the store to fill in at commit time
// (for example the server timestamp). They are write-only: a value read back
// from a store never contains one. See the docmap package for resolution.
//
// # Thread Safety
//
// Node trees are not thread-safe. Clone nodes before sharing them across
// goroutines that mutate them.
package ir
