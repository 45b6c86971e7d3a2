// Package docmap provides declarative mapping between Go values and
// document store values (ir.Node trees).
//
// # Usage
//
//	type City struct {
//	    Name      string
//	    IsCapital bool `doc:"Capital"`
//	    Updated   time.Time `doc:",serverTimestamp"`
//	}
//
//	// Serialize a Go value to a document value
//	node, err := docmap.Serialize(city)
//
//	// Deserialize a document value into a Go value
//	var city2 City
//	err = docmap.Deserialize(node, &city2)
//
// Only exported (uppercase) struct fields are processed, like encoding/json.
// Field matching between document keys and struct fields is case-sensitive.
// Embedded structs are flattened: their fields are promoted to the parent
// object.
//
// # Struct Tags
//
// The doc tag controls per-field mapping:
//
//	`doc:"Capital"`           rename the document key
//	`doc:"-"`                 omit the field
//	`doc:",omitempty"`        skip zero values when serializing
//	`doc:",serverTimestamp"`  zero time.Time serializes as the server
//	                          timestamp sentinel
//
// # Converters
//
// Custom conversion is registered per domain type or per struct field:
//
//	docmap.RegisterConverter(PlayerId{}, docmap.ConverterFuncs{...})
//	docmap.RegisterFieldConverter(Game{}, "Board", docmap.ConverterFuncs{...})
//
// A whole-type converter takes precedence over declarative field mapping
// for that type; an explicit field converter takes precedence over both.
// Registration happens once at process start, before first use; lookups are
// safe for concurrent readers afterwards.
//
// # Tolerant Deserialization
//
// Document keys with no declared struct field are ignored, and declared
// fields missing from the document keep their zero value. Type mismatches
// return a *FormatError carrying the document key and the expected and
// actual types.
//
// # Related Packages
//
//   - github.com/signadot/domap/ir - document value representation
//   - github.com/signadot/domap/memstore - in-memory store collaborator
package docmap
