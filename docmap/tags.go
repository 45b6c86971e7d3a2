package docmap

import (
	"fmt"
	"strings"
)

const tagName = "doc"

// tagOpts holds the parsed content of a doc struct tag.
type tagOpts struct {
	Key             string // document key override, "" when absent
	Omit            bool   // `doc:"-"`
	OmitEmpty       bool
	ServerTimestamp bool
}

// parseTag parses a doc struct tag: an optional document key followed by
// comma-separated options, as in `doc:"Capital"` or
// `doc:",omitempty,serverTimestamp"`.
func parseTag(tag string) (*tagOpts, error) {
	res := &tagOpts{}
	if tag == "" {
		return res, nil
	}
	if tag == "-" {
		res.Omit = true
		return res, nil
	}
	parts := strings.Split(tag, ",")
	res.Key = strings.TrimSpace(parts[0])
	for _, opt := range parts[1:] {
		switch strings.TrimSpace(opt) {
		case "omitempty":
			res.OmitEmpty = true
		case "serverTimestamp":
			res.ServerTimestamp = true
		case "":
		default:
			return nil, fmt.Errorf("unrecognized doc tag option %q", opt)
		}
	}
	return res, nil
}
