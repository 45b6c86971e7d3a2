package domap

import (
	"testing"
	"time"

	"github.com/signadot/domap/ir"
)

type city struct {
	Name       string    `doc:"Name"`
	Population int64     `doc:"Population,omitempty"`
	Updated    time.Time `doc:"Updated,serverTimestamp"`
}

func TestRoundTrip(t *testing.T) {
	in := &city{Name: "Austin", Population: 960000}
	doc, err := ToDocument(in)
	if err != nil {
		t.Fatal(err)
	}
	if !doc.HasSentinel() {
		t.Fatalf("zero Updated should serialize as a sentinel")
	}
	commit := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	resolved, err := Resolve(doc, commit)
	if err != nil {
		t.Fatal(err)
	}
	var out city
	if err := FromDocument(resolved, &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != in.Name || out.Population != in.Population {
		t.Errorf("got %+v, want %+v", out, in)
	}
	if !out.Updated.Equal(commit) {
		t.Errorf("Updated = %v, want %v", out.Updated, commit)
	}
	if got := ir.Get(resolved, "Name"); got == nil || got.String != "Austin" {
		t.Errorf("Name = %v", got)
	}
}
