package main

import (
	"fmt"

	"github.com/signadot/domap/encode"
	"github.com/signadot/domap/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff a b", cli.ErrUsage)
	}
	from, err := renderFile(cfg, args[0])
	if err != nil {
		return err
	}
	to, err := renderFile(cfg, args[1])
	if err != nil {
		return err
	}
	diffs := libdiff.Lines(from, to)
	if !libdiff.Changed(diffs) {
		return nil
	}
	return libdiff.Render(cc.Out, diffs, cfg.useColor(cc.Out))
}

// renderFile produces the canonical uncolored text form a document
// diffs in.
func renderFile(cfg *DiffConfig, file string) (string, error) {
	node, err := readNode(cfg.MainConfig, file)
	if err != nil {
		return "", err
	}
	return encode.EncodeString(node, encode.EncodeFormat(cfg.inFormat()))
}
