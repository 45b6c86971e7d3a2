// Package memstore provides an in-memory document store over ir.Node
// documents organized into named collections.
//
// Writes resolve write-time sentinels (server timestamps, field deletes)
// against the store clock before the document is committed. Reads return
// clones, so callers may mutate results freely. Documents can be patched
// in place with RFC 6902 JSON patches and filtered with expression
// predicates over their plain-Go projections.
package memstore
