package main

import (
	"io"
	"os"

	"github.com/signadot/domap/encode"
	"github.com/signadot/domap/ir"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return renderFiles(cfg.MainConfig, cc.Out, args)
}

func renderFiles(cfg *MainConfig, w io.Writer, files []string) error {
	if len(files) == 0 {
		files = []string{"-"}
	}
	for i, file := range files {
		node, err := readNode(cfg, file)
		if err != nil {
			return err
		}
		if err := encode.Encode(node, w, cfg.encOpts(w)...); err != nil {
			return err
		}
		if i < len(files)-1 {
			if _, err := w.Write([]byte("---\n")); err != nil {
				return err
			}
		}
	}
	return nil
}

func readNode(cfg *MainConfig, file string) (*ir.Node, error) {
	var (
		d   []byte
		err error
	)
	if file == "-" {
		d, err = io.ReadAll(os.Stdin)
	} else {
		d, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, err
	}
	return encode.Decode(d, cfg.decOpts()...)
}
