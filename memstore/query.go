package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/signadot/domap/debug"
	"github.com/signadot/domap/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Doc is a query result: a reference together with a clone of the
// stored document.
type Doc struct {
	Ref  DocRef
	Node *ir.Node
}

// Query selects documents from a collection by predicate. Predicates
// are expr-lang expressions evaluated against the document's
// map[string]any projection, so `Population > 1000000 && IsCapital`
// filters on top-level document keys.
type Query struct {
	store      *Store
	collection string
	programs   []*vm.Program
	err        error
}

// Query starts a query over collection.
func (s *Store) Query(collection string) *Query {
	return &Query{store: s, collection: collection}
}

// Where adds a predicate. Multiple predicates are conjoined. A
// predicate that fails to compile poisons the query; the error
// surfaces from Documents.
func (q *Query) Where(predicate string) *Query {
	if q.err != nil {
		return q
	}
	program, err := expr.Compile(predicate, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		q.err = fmt.Errorf("compile predicate %q: %w", predicate, err)
		return q
	}
	q.programs = append(q.programs, program)
	return q
}

// Documents runs the query and returns matching documents in ID order.
func (q *Query) Documents(ctx context.Context) ([]Doc, error) {
	if q.err != nil {
		return nil, q.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q.store.mu.RLock()
	defer q.store.mu.RUnlock()
	coll := q.store.colls[q.collection]
	ids := make([]string, 0, len(coll))
	for id := range coll {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var res []Doc
	for _, id := range ids {
		node := coll[id]
		ok, err := q.match(node)
		if err != nil {
			return nil, fmt.Errorf("query %s/%s: %w", q.collection, id, err)
		}
		if !ok {
			continue
		}
		res = append(res, Doc{
			Ref:  DocRef{Collection: q.collection, ID: id},
			Node: node.Clone(),
		})
	}
	if debug.Query() {
		debug.Logf("memstore: query %s matched %d of %d\n", q.collection, len(res), len(coll))
	}
	return res, nil
}

func (q *Query) match(node *ir.Node) (bool, error) {
	env, err := ir.ToAny(node)
	if err != nil {
		return false, err
	}
	for _, program := range q.programs {
		v, err := vm.Run(program, env)
		if err != nil {
			return false, err
		}
		b, ok := v.(bool)
		if !ok {
			return false, fmt.Errorf("predicate gave %T, want bool", v)
		}
		if !b {
			return false, nil
		}
	}
	return true, nil
}
