package libdiff

import (
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Lines computes a line-level diff between two rendered documents.
func Lines(from, to string) []diffpatch.Diff {
	diffCfg := diffpatch.New()
	fromRunes, toRunes, lines := diffCfg.DiffLinesToRunes(from, to)
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	return diffCfg.DiffCharsToLines(diffs, lines)
}

// Changed reports whether diffs contains an insert or delete.
func Changed(diffs []diffpatch.Diff) bool {
	for i := range diffs {
		if diffs[i].Type != diffpatch.DiffEqual {
			return true
		}
	}
	return false
}

// Render writes diffs to w in unified-style form, one prefixed line per
// diffed line. With colored set, inserts are green and deletes red.
func Render(w io.Writer, diffs []diffpatch.Diff, colored bool) error {
	paint := func(s string, _ ...color.Attribute) string { return s }
	if colored {
		paint = func(s string, attrs ...color.Attribute) string {
			return color.New(attrs...).Sprint(s)
		}
	}
	for i := range diffs {
		diff := &diffs[i]
		var prefix string
		var attr color.Attribute
		switch diff.Type {
		case diffpatch.DiffInsert:
			prefix, attr = "+", color.FgGreen
		case diffpatch.DiffDelete:
			prefix, attr = "-", color.FgRed
		case diffpatch.DiffEqual:
			prefix, attr = " ", color.Reset
		}
		for _, line := range splitLines(diff.Text) {
			if _, err := io.WriteString(w, paint(prefix+line, attr)+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
