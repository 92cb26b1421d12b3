package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/objpath/objpath"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires an object path and a value", cli.ErrUsage)
	}
	expr := args[0]
	path, err := objpath.Parse(expr)
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	var value any
	if cfg.S {
		value = args[1]
	} else if err := yaml.Unmarshal([]byte(args[1]), &value); err != nil {
		return fmt.Errorf("%w: bad value %q: %v", cli.ErrUsage, args[1], err)
	}
	files := args[2:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	n := 0
	for _, arg := range files {
		docs, err := readDocs(arg)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if doc == nil {
				doc = rootContainer(path)
			}
			res, err := path.Set(doc, value)
			if err != nil {
				return fmt.Errorf("error setting %s in %s: %w", expr, arg, err)
			}
			if n > 0 {
				if err := writeSep(cc.Out); err != nil {
					return err
				}
			}
			n++
			if err := writeDoc(cfg.MainConfig, cc.Out, res); err != nil {
				return fmt.Errorf("error encoding result: %w", err)
			}
		}
	}
	return nil
}

// rootContainer picks the container kind for an empty document from the
// path's first node, the same way the evaluator vivifies intermediates.
func rootContainer(path *objpath.Path) any {
	switch n := path.Node().(type) {
	case objpath.IndexNode:
		return []any{}
	case objpath.NameNode:
		if n.IsNumber() {
			return []any{}
		}
	}
	return map[string]any{}
}
