package docmap

import (
	"fmt"
	"time"

	"github.com/signadot/domap/debug"
	"github.com/signadot/domap/ir"
)

// ResolveContext carries the store-assigned values substituted for
// sentinels at commit time. The resolver does not generate these itself;
// the store supplies them.
type ResolveContext struct {
	// CommitTime replaces server timestamp sentinels.
	CommitTime time.Time
}

// Resolve returns a copy of node with every sentinel leaf replaced by its
// context-supplied resolution: server timestamps become the commit time and
// delete-marked object fields are removed. The input is left untouched.
//
// A delete sentinel outside an object field position, or a sentinel at the
// root other than a server timestamp, has no resolution and returns an
// error wrapping ErrBadSentinel.
func Resolve(node *ir.Node, rctx ResolveContext) (*ir.Node, error) {
	switch node.Type {
	case ir.SentinelType:
		if node.Sentinel == ir.ServerTimestampSentinel {
			return ir.FromTime(rctx.CommitTime), nil
		}
		return nil, fmt.Errorf("%w: %s at document root", ErrBadSentinel, node.Sentinel)
	case ir.ObjectType, ir.ArrayType:
		res, err := resolveAt(node, "", rctx)
		if err != nil {
			return nil, err
		}
		if debug.Resolve() {
			debug.Logf("docmap: resolved with commit time %v:\n%s\n", rctx.CommitTime, debug.Doc{Node: res})
		}
		return res, nil
	default:
		return node.Clone(), nil
	}
}

func resolveAt(node *ir.Node, path string, rctx ResolveContext) (*ir.Node, error) {
	switch node.Type {
	case ir.ObjectType:
		res := &ir.Node{Type: ir.ObjectType}
		for i := range node.Fields {
			key := node.Fields[i].String
			child := node.Values[i]
			if child.Type == ir.SentinelType && child.Sentinel == ir.DeleteSentinel {
				continue
			}
			resolved, err := resolveAt(child, childPath(path, key), rctx)
			if err != nil {
				return nil, err
			}
			res.Fields = append(res.Fields, ir.FromString(key))
			res.Values = append(res.Values, resolved)
		}
		return res, nil
	case ir.ArrayType:
		res := &ir.Node{Type: ir.ArrayType, Values: make([]*ir.Node, len(node.Values))}
		for i, child := range node.Values {
			resolved, err := resolveAt(child, elemPath(path, i), rctx)
			if err != nil {
				return nil, err
			}
			res.Values[i] = resolved
		}
		return res, nil
	case ir.SentinelType:
		switch node.Sentinel {
		case ir.ServerTimestampSentinel:
			return ir.FromTime(rctx.CommitTime), nil
		default:
			return nil, fmt.Errorf("%w: %s at %s", ErrBadSentinel, node.Sentinel, path)
		}
	default:
		return node.Clone(), nil
	}
}
