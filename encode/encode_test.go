package encode

import (
	"strings"
	"testing"

	"github.com/signadot/domap/format"
	"github.com/signadot/domap/ir"
)

func cityDoc() *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "Name", Val: ir.FromString("San Francisco")},
		{Key: "Population", Val: ir.FromInt(860000)},
		{Key: "Capital", Val: ir.FromBool(false)},
		{Key: "Tags", Val: ir.FromSlice([]*ir.Node{
			ir.FromString("bay"),
			ir.FromString("fog"),
		})},
	})
}

func TestEncodeYAMLKeepsFieldOrder(t *testing.T) {
	out, err := EncodeString(cityDoc())
	if err != nil {
		t.Fatal(err)
	}
	idx := func(s string) int { return strings.Index(out, s) }
	if !(idx("Name:") < idx("Population:") && idx("Population:") < idx("Capital:") && idx("Capital:") < idx("Tags:")) {
		t.Errorf("field order not preserved:\n%s", out)
	}
	if !strings.Contains(out, "Name: San Francisco") {
		t.Errorf("unexpected yaml:\n%s", out)
	}
}

func TestEncodeJSON(t *testing.T) {
	out, err := EncodeString(cityDoc(), EncodeFormat(format.JSONFormat))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"Population": 860000`) {
		t.Errorf("unexpected json:\n%s", out)
	}
}

func TestEncodeIndent(t *testing.T) {
	out, err := EncodeString(cityDoc(), EncodeFormat(format.JSONFormat), EncodeIndent(4))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `    "Name"`) {
		t.Errorf("expected 4-space indent:\n%s", out)
	}
	out, err = EncodeString(
		ir.FromKeyVals([]ir.KeyVal{
			{Key: "A", Val: ir.FromKeyVals([]ir.KeyVal{{Key: "B", Val: ir.FromInt(1)}})},
		}),
		EncodeIndent(4),
	)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "    B: 1") {
		t.Errorf("expected 4-space yaml indent:\n%s", out)
	}
}

func TestEncodeSentinelFails(t *testing.T) {
	doc := ir.FromKeyVals([]ir.KeyVal{
		{Key: "Updated", Val: ir.ServerTimestamp()},
	})
	if _, err := EncodeString(doc); err == nil {
		t.Errorf("expected error encoding sentinel")
	}
}

func TestEncodeColorsEmitEscapes(t *testing.T) {
	out, err := EncodeString(cityDoc(), EncodeColors(NewColors()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected ANSI escapes in colored output:\n%q", out)
	}
}

func TestDecodeYAML(t *testing.T) {
	in := "Name: Austin\nState: TX\nPopulation: 960000\n"
	node, err := Decode([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if node.Type != ir.ObjectType {
		t.Fatalf("got %s, want object", node.Type)
	}
	if got := ir.Get(node, "State"); got == nil || got.String != "TX" {
		t.Errorf("State = %v", got)
	}
	pop := ir.Get(node, "Population")
	if pop == nil || pop.Int64 == nil || *pop.Int64 != 960000 {
		t.Errorf("Population = %v", pop)
	}
	// yaml decoding keeps document key order
	if node.Fields[0].String != "Name" || node.Fields[2].String != "Population" {
		t.Errorf("key order lost: %v", node.Fields)
	}
}

func TestDecodeJSON(t *testing.T) {
	in := `{"Name":"Austin","Population":960000}`
	node, err := Decode([]byte(in), EncodeFormat(format.JSONFormat))
	if err != nil {
		t.Fatal(err)
	}
	pop := ir.Get(node, "Population")
	if pop == nil || pop.Int64 == nil || *pop.Int64 != 960000 {
		t.Errorf("Population = %v", pop)
	}
}

func TestRoundTrip(t *testing.T) {
	doc := cityDoc()
	out, err := EncodeString(doc)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Decode([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(doc, back) {
		t.Errorf("round trip changed document:\n%s", out)
	}
}

func TestParseFormat(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want format.Format
		err  bool
	}{
		{in: "yaml", want: format.YAMLFormat},
		{in: "y", want: format.YAMLFormat},
		{in: "json", want: format.JSONFormat},
		{in: "j", want: format.JSONFormat},
		{in: "xml", err: true},
	} {
		got, err := format.ParseFormat(tc.in)
		if tc.err {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
