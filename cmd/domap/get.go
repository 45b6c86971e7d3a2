package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/domap/encode"
	"github.com/signadot/domap/ir"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get needs a path", cli.ErrUsage)
	}
	path, files := args[0], args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for i, file := range files {
		node, err := readNode(cfg.MainConfig, file)
		if err != nil {
			return err
		}
		elt, err := getPath(node, path)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if err := encode.Encode(elt, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
		if i < len(files)-1 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
	}
	return nil
}

// getPath walks a dotted path: object steps by key, array steps by
// index, e.g. "Regions.1.Name".
func getPath(node *ir.Node, path string) (*ir.Node, error) {
	cur := node
	for _, step := range strings.Split(path, ".") {
		switch cur.Type {
		case ir.ObjectType:
			next := ir.Get(cur, step)
			if next == nil {
				return nil, fmt.Errorf("no field %q in path %q", step, path)
			}
			cur = next
		case ir.ArrayType:
			i, err := strconv.Atoi(step)
			if err != nil {
				return nil, fmt.Errorf("array step %q in path %q: %w", step, path, err)
			}
			if i < 0 || i >= len(cur.Values) {
				return nil, fmt.Errorf("index %d out of range in path %q", i, path)
			}
			cur = cur.Values[i]
		default:
			return nil, fmt.Errorf("cannot descend into %s at %q in path %q", cur.Type, step, path)
		}
	}
	return cur, nil
}
