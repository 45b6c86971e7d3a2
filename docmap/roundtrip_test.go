package docmap

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/domap/ir"
)

type roundTripDoc struct {
	Name    string
	Short   string `doc:"s"`
	Count   int
	Ratio   float64
	Ok      bool
	When    time.Time
	Tags    []string
	Scores  map[string]int
	Pointer *int
	Nested  struct {
		Inner string
	}
}

func TestRoundTrip(t *testing.T) {
	seven := 7
	docs := []roundTripDoc{
		{},
		{
			Name:   "full",
			Short:  "f",
			Count:  -3,
			Ratio:  2.25,
			Ok:     true,
			When:   time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
			Tags:   []string{"x", "y"},
			Scores: map[string]int{"a": 1},
			Pointer: func() *int {
				return &seven
			}(),
		},
	}
	docs[1].Nested.Inner = "deep"

	for i, in := range docs {
		node, err := Serialize(in)
		if err != nil {
			t.Fatalf("doc %d: serialize: %v", i, err)
		}
		var out roundTripDoc
		if err := Deserialize(node, &out); err != nil {
			t.Fatalf("doc %d: deserialize: %v", i, err)
		}
		if diff := cmp.Diff(in, out); diff != "" {
			t.Errorf("doc %d: round trip mismatch (-in +out):\n%s", i, diff)
		}
	}
}

func TestCustomConverterRoundTrip(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterConverter(playerId{}, playerIdConverter()); err != nil {
		t.Fatal(err)
	}
	type game struct {
		Host playerId
		Turn playerId
	}
	in := game{Host: playerId{Id: "p-1"}, Turn: playerId{Id: "p-2"}}
	node, err := r.Serialize(in)
	if err != nil {
		t.Fatal(err)
	}
	// whole-type converter flattens the struct to a string
	host := node.Values[0]
	if host.String != "p-1" {
		t.Errorf("Host = %v", host)
	}
	var out game
	if err := r.Deserialize(node, &out); err != nil {
		t.Fatal(err)
	}
	if out.Host.Id != in.Host.Id || out.Turn.Id != in.Turn.Id {
		t.Errorf("got %+v", out)
	}
}

func TestFieldConverterPrecedence(t *testing.T) {
	r := NewRegistry()
	// whole-type converter lowercases nothing; field converter wraps
	if err := r.RegisterConverter(playerId{}, playerIdConverter()); err != nil {
		t.Fatal(err)
	}
	type game struct {
		Host playerId
	}
	fieldConv := ConverterFuncs{
		To: func(v any) (*ir.Node, error) {
			return ir.FromString("host:" + v.(playerId).Id), nil
		},
		From: func(node *ir.Node) (any, error) {
			return playerId{Id: node.String[len("host:"):]}, nil
		},
	}
	if err := r.RegisterFieldConverter(game{}, "Host", fieldConv); err != nil {
		t.Fatal(err)
	}
	node, err := r.Serialize(game{Host: playerId{Id: "p-9"}})
	if err != nil {
		t.Fatal(err)
	}
	if got := node.Values[0].String; got != "host:p-9" {
		t.Errorf("field converter not preferred: %q", got)
	}
	var out game
	if err := r.Deserialize(node, &out); err != nil {
		t.Fatal(err)
	}
	if out.Host.Id != "p-9" {
		t.Errorf("got %+v", out)
	}
}

func TestConverterErrorsPropagateVerbatim(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterConverter(playerId{}, playerIdConverter()); err != nil {
		t.Fatal(err)
	}
	type game struct {
		Host playerId
	}
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "Host", Val: ir.FromInt(3)},
	})
	var out game
	err := r.Deserialize(node, &out)
	if err == nil {
		t.Fatal("converter error lost")
	}
	if err.Error() != "player id must be a string" {
		t.Errorf("converter error was rewrapped: %v", err)
	}
}
