// Package encode renders IR nodes as YAML or JSON text and parses them
// back.
//
// # Usage
//
//	node := ir.FromMap(map[string]*ir.Node{
//	    "name": ir.FromString("alice"),
//	    "age":  ir.FromInt(30),
//	})
//	err := encode.Encode(node, os.Stdout)
//
//	// Encode as JSON
//	err := encode.Encode(node, os.Stdout, encode.EncodeFormat(format.JSONFormat))
//
//	// Colorized YAML for terminals
//	err := encode.Encode(node, os.Stdout, encode.EncodeColors(encode.NewColors()))
//
// # Related Packages
//
//   - github.com/signadot/domap/ir - IR representation
//   - github.com/signadot/domap/format - format names
package encode
