package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/signadot/domap/ir"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func cityNode(t *testing.T, name string, pop int64) *ir.Node {
	t.Helper()
	node, err := ir.FromAny(map[string]any{
		"Name":       name,
		"Population": pop,
	})
	require.NoError(t, err)
	return node
}

func TestSetAndRead(t *testing.T) {
	s := New()
	ctx := context.Background()
	ref := DocRef{Collection: "cities", ID: "sf"}

	require.NoError(t, s.Set(ctx, ref, cityNode(t, "San Francisco", 860000)))

	got, err := s.Read(ctx, ref)
	require.NoError(t, err)
	name := ir.Get(got, "Name")
	require.NotNil(t, name)
	assert.Equal(t, "San Francisco", name.String)
}

func TestReadReturnsClone(t *testing.T) {
	s := New()
	ctx := context.Background()
	ref := DocRef{Collection: "cities", ID: "sf"}
	require.NoError(t, s.Set(ctx, ref, cityNode(t, "San Francisco", 860000)))

	first, err := s.Read(ctx, ref)
	require.NoError(t, err)
	ir.Set(first, "Name", ir.FromString("Oakland"))

	second, err := s.Read(ctx, ref)
	require.NoError(t, err)
	name := ir.Get(second, "Name")
	require.NotNil(t, name)
	assert.Equal(t, "San Francisco", name.String, "mutating a read result must not affect the store")
}

func TestSetResolvesServerTimestamp(t *testing.T) {
	commit := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(WithClock(fixedClock(commit)))
	ctx := context.Background()
	ref := DocRef{Collection: "cities", ID: "sf"}

	doc := ir.FromKeyVals([]ir.KeyVal{
		{Key: "Name", Val: ir.FromString("San Francisco")},
		{Key: "Updated", Val: ir.ServerTimestamp()},
	})
	require.NoError(t, s.Set(ctx, ref, doc))

	got, err := s.Read(ctx, ref)
	require.NoError(t, err)
	updated := ir.Get(got, "Updated")
	require.NotNil(t, updated)
	assert.Equal(t, ir.TimeType, updated.Type)
	assert.True(t, updated.Time.Equal(commit))
}

func TestSetResolvesDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	ref := DocRef{Collection: "cities", ID: "sf"}

	doc := ir.FromKeyVals([]ir.KeyVal{
		{Key: "Name", Val: ir.FromString("San Francisco")},
		{Key: "Nickname", Val: ir.Delete()},
	})
	require.NoError(t, s.Set(ctx, ref, doc))

	got, err := s.Read(ctx, ref)
	require.NoError(t, err)
	assert.Nil(t, ir.Get(got, "Nickname"), "deleted field must not be stored")
}

func TestSetRejectsNonObject(t *testing.T) {
	s := New()
	err := s.Set(context.Background(), DocRef{Collection: "c", ID: "x"}, ir.FromString("nope"))
	assert.ErrorIs(t, err, ErrBadDocument)
}

func TestReadMissing(t *testing.T) {
	s := New()
	_, err := s.Read(context.Background(), DocRef{Collection: "cities", ID: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateIDsSortInCommitOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	var last string
	for i := 0; i < 300; i++ {
		ref, err := s.Create(ctx, "cities", cityNode(t, "c", int64(i)))
		require.NoError(t, err)
		if last != "" {
			assert.Less(t, last, ref.ID)
		}
		last = ref.ID
	}
	assert.Equal(t, 300, s.Len("cities"))
}

func TestAddExisting(t *testing.T) {
	s := New()
	ctx := context.Background()
	ref := DocRef{Collection: "cities", ID: "sf"}
	require.NoError(t, s.Add(ctx, ref, cityNode(t, "San Francisco", 860000)))
	err := s.Add(ctx, ref, cityNode(t, "San Francisco", 1))
	assert.ErrorIs(t, err, ErrExists)
}

func TestDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	ref := DocRef{Collection: "cities", ID: "sf"}
	require.NoError(t, s.Set(ctx, ref, cityNode(t, "San Francisco", 860000)))
	require.NoError(t, s.Delete(ctx, ref))
	_, err := s.Read(ctx, ref)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, ref), ErrNotFound)
}

func TestContextCancel(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ref := DocRef{Collection: "cities", ID: "sf"}
	assert.ErrorIs(t, s.Set(ctx, ref, cityNode(t, "x", 1)), context.Canceled)
	_, err := s.Read(ctx, ref)
	assert.ErrorIs(t, err, context.Canceled)
}
