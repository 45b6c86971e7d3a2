package memstore

import (
	"context"
	"fmt"
	"time"

	"github.com/signadot/domap/debug"
	"github.com/signadot/domap/ir"

	jsonpatch "github.com/evanphx/json-patch"
)

// Update applies an RFC 6902 JSON patch to the document at ref. The
// patch runs over the document's JSON projection, so timestamps are
// exposed as RFC 3339 strings to patch operations; positions that held
// timestamps before the patch are restored to typed time values
// afterwards. Sentinels in patch values are not supported; use Set for
// sentinel writes.
func (s *Store) Update(ctx context.Context, ref DocRef, patch []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return fmt.Errorf("decode patch: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.colls[ref.Collection][ref.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	d, err := ir.ToJSON(doc)
	if err != nil {
		return err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return fmt.Errorf("apply patch to %s: %w", ref, err)
	}
	patched, err := ir.FromJSON(out)
	if err != nil {
		return err
	}
	if patched.Type != ir.ObjectType {
		return ErrBadDocument
	}
	patched = retime(doc, patched)
	if debug.Patch() {
		debug.Logf("memstore: patched %s:\n%s\n", ref, debug.Doc{Node: patched})
	}
	s.commit++
	s.colls[ref.Collection][ref.ID] = patched
	return nil
}

// retime restores time typing the JSON projection flattened to strings:
// wherever prior held a TimeType value and patched holds an RFC 3339
// string at the same position, the string is parsed back into a time
// value. Positions the patch moved or introduced stay as the patch left
// them.
func retime(prior, patched *ir.Node) *ir.Node {
	if prior == nil {
		return patched
	}
	switch patched.Type {
	case ir.StringType:
		if prior.Type != ir.TimeType {
			return patched
		}
		t, err := time.Parse(time.RFC3339Nano, patched.String)
		if err != nil {
			return patched
		}
		return ir.FromTime(t)
	case ir.ObjectType:
		if prior.Type != ir.ObjectType {
			return patched
		}
		for i := range patched.Fields {
			patched.Values[i] = retime(ir.Get(prior, patched.Fields[i].String), patched.Values[i])
		}
		return patched
	case ir.ArrayType:
		if prior.Type != ir.ArrayType {
			return patched
		}
		for i := range patched.Values {
			if i < len(prior.Values) {
				patched.Values[i] = retime(prior.Values[i], patched.Values[i])
			}
		}
		return patched
	default:
		return patched
	}
}
