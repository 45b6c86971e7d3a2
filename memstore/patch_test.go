package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/signadot/domap/ir"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateReplace(t *testing.T) {
	s := New()
	ctx := context.Background()
	ref := DocRef{Collection: "cities", ID: "sf"}
	require.NoError(t, s.Set(ctx, ref, cityNode(t, "San Francisco", 860000)))

	patch := []byte(`[{"op":"replace","path":"/Population","value":870000}]`)
	require.NoError(t, s.Update(ctx, ref, patch))

	got, err := s.Read(ctx, ref)
	require.NoError(t, err)
	pop := ir.Get(got, "Population")
	require.NotNil(t, pop)
	require.NotNil(t, pop.Int64)
	assert.Equal(t, int64(870000), *pop.Int64)
}

func TestUpdateAddAndRemove(t *testing.T) {
	s := New()
	ctx := context.Background()
	ref := DocRef{Collection: "cities", ID: "sf"}
	require.NoError(t, s.Set(ctx, ref, cityNode(t, "San Francisco", 860000)))

	patch := []byte(`[
		{"op":"add","path":"/State","value":"CA"},
		{"op":"remove","path":"/Population"}
	]`)
	require.NoError(t, s.Update(ctx, ref, patch))

	got, err := s.Read(ctx, ref)
	require.NoError(t, err)
	state := ir.Get(got, "State")
	require.NotNil(t, state)
	assert.Equal(t, "CA", state.String)
	assert.Nil(t, ir.Get(got, "Population"))
}

func TestUpdateMissingDoc(t *testing.T) {
	s := New()
	patch := []byte(`[{"op":"add","path":"/State","value":"CA"}]`)
	err := s.Update(context.Background(), DocRef{Collection: "cities", ID: "nope"}, patch)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBadPatch(t *testing.T) {
	s := New()
	ctx := context.Background()
	ref := DocRef{Collection: "cities", ID: "sf"}
	require.NoError(t, s.Set(ctx, ref, cityNode(t, "San Francisco", 860000)))

	assert.Error(t, s.Update(ctx, ref, []byte(`{"not":"a patch"}`)))

	// A failed test op must leave the document unchanged.
	patch := []byte(`[
		{"op":"test","path":"/Name","value":"Oakland"},
		{"op":"replace","path":"/Population","value":1}
	]`)
	assert.Error(t, s.Update(ctx, ref, patch))
	got, err := s.Read(ctx, ref)
	require.NoError(t, err)
	pop := ir.Get(got, "Population")
	require.NotNil(t, pop)
	require.NotNil(t, pop.Int64)
	assert.Equal(t, int64(860000), *pop.Int64)
}

func TestUpdateKeepsTimestampsTyped(t *testing.T) {
	commit := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := New(WithClock(fixedClock(commit)))
	ctx := context.Background()
	ref := DocRef{Collection: "cities", ID: "sf"}

	doc := ir.FromKeyVals([]ir.KeyVal{
		{Key: "Name", Val: ir.FromString("San Francisco")},
		{Key: "Updated", Val: ir.ServerTimestamp()},
		{Key: "History", Val: ir.FromSlice([]*ir.Node{ir.FromTime(commit)})},
	})
	require.NoError(t, s.Set(ctx, ref, doc))

	// patching an unrelated field must not degrade stored timestamps
	patch := []byte(`[{"op":"add","path":"/State","value":"CA"}]`)
	require.NoError(t, s.Update(ctx, ref, patch))

	got, err := s.Read(ctx, ref)
	require.NoError(t, err)
	updated := ir.Get(got, "Updated")
	require.NotNil(t, updated)
	assert.Equal(t, ir.TimeType, updated.Type)
	assert.True(t, updated.Time.Equal(commit))
	history := ir.Get(got, "History")
	require.NotNil(t, history)
	require.Len(t, history.Values, 1)
	assert.Equal(t, ir.TimeType, history.Values[0].Type)

	// a patch that writes a plain string over a timestamp wins
	patch = []byte(`[{"op":"replace","path":"/Updated","value":"later"}]`)
	require.NoError(t, s.Update(ctx, ref, patch))
	got, err = s.Read(ctx, ref)
	require.NoError(t, err)
	updated = ir.Get(got, "Updated")
	require.NotNil(t, updated)
	assert.Equal(t, ir.StringType, updated.Type)
	assert.Equal(t, "later", updated.String)
}
