// Package libdiff computes line diffs of rendered documents.
//
// Documents are compared in their encoded text form, so two documents
// diff the way their YAML or JSON renderings do.
package libdiff
