package main

import (
	"testing"

	"github.com/signadot/domap/format"
)

func TestOutFormat(t *testing.T) {
	jfmt := format.JSONFormat
	for _, tc := range []struct {
		name string
		cfg  MainConfig
		want format.Format
	}{
		{name: "default", want: format.YAMLFormat},
		{name: "flag", cfg: MainConfig{OutFormat: &jfmt}, want: format.JSONFormat},
		{name: "j", cfg: MainConfig{J: true}, want: format.JSONFormat},
		{name: "outfile json", cfg: MainConfig{Out: "res.json"}, want: format.JSONFormat},
		{name: "outfile yaml", cfg: MainConfig{Out: "res.yaml"}, want: format.YAMLFormat},
		{name: "outfile unknown ext", cfg: MainConfig{Out: "res.txt"}, want: format.YAMLFormat},
		{name: "flag beats outfile", cfg: MainConfig{Y: true, Out: "res.json"}, want: format.YAMLFormat},
	} {
		if got := tc.cfg.outFormat(); got != tc.want {
			t.Errorf("%s: outFormat() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
