// Package format names the text formats documents can be rendered in.
//
// # Related Packages
//
//   - github.com/signadot/domap/encode - Encode IR to text
//   - github.com/signadot/domap/ir - IR representation
package format
