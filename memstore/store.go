package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/signadot/domap/debug"
	"github.com/signadot/domap/docmap"
	"github.com/signadot/domap/ir"
)

var (
	// ErrNotFound indicates the referenced document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrExists indicates a create hit an existing document.
	ErrExists = errors.New("document exists")
	// ErrBadDocument indicates a document whose root is not an object.
	ErrBadDocument = errors.New("document root must be an object")
)

// DocRef identifies a document within a store.
type DocRef struct {
	Collection string
	ID         string
}

func (r DocRef) String() string {
	return r.Collection + "/" + r.ID
}

// Store is an in-memory document store. All methods are safe for
// concurrent use.
type Store struct {
	mu     sync.RWMutex
	colls  map[string]map[string]*ir.Node
	clock  func() time.Time
	commit int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp commits. The default is
// time.Now. Tests use this to make server timestamps deterministic.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	res := &Store{
		colls: map[string]map[string]*ir.Node{},
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Create adds doc to collection under a fresh auto-generated ID.
// Sentinels in doc are resolved against the commit time.
func (s *Store) Create(ctx context.Context, collection string, doc *ir.Node) (DocRef, error) {
	if err := ctx.Err(); err != nil {
		return DocRef{}, err
	}
	if doc.Type != ir.ObjectType {
		return DocRef{}, ErrBadDocument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit++
	ref := DocRef{Collection: collection, ID: autoID(s.commit)}
	if err := s.put(ref, doc); err != nil {
		return DocRef{}, err
	}
	return ref, nil
}

// Set stores doc at ref, overwriting any existing document. Sentinels
// in doc are resolved against the commit time.
func (s *Store) Set(ctx context.Context, ref DocRef, doc *ir.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.Type != ir.ObjectType {
		return ErrBadDocument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit++
	return s.put(ref, doc)
}

// Add stores doc at ref, failing with ErrExists if ref already holds a
// document.
func (s *Store) Add(ctx context.Context, ref DocRef, doc *ir.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc.Type != ir.ObjectType {
		return ErrBadDocument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.colls[ref.Collection][ref.ID]; ok {
		return fmt.Errorf("%w: %s", ErrExists, ref)
	}
	s.commit++
	return s.put(ref, doc)
}

// put resolves sentinels and commits doc. Callers hold s.mu.
func (s *Store) put(ref DocRef, doc *ir.Node) error {
	resolved, err := docmap.Resolve(doc, docmap.ResolveContext{CommitTime: s.clock()})
	if err != nil {
		return err
	}
	coll := s.colls[ref.Collection]
	if coll == nil {
		coll = map[string]*ir.Node{}
		s.colls[ref.Collection] = coll
	}
	coll[ref.ID] = resolved
	if debug.Store() {
		debug.Logf("memstore: put %s:\n%s\n", ref, debug.Doc{Node: resolved})
	}
	return nil
}

// Read returns a clone of the document at ref.
func (s *Store) Read(ctx context.Context, ref DocRef) (*ir.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.colls[ref.Collection][ref.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return doc.Clone(), nil
}

// Delete removes the document at ref. Deleting a missing document
// returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, ref DocRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	coll := s.colls[ref.Collection]
	if _, ok := coll[ref.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	delete(coll, ref.ID)
	return nil
}

// Len reports the number of documents in collection.
func (s *Store) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.colls[collection])
}
