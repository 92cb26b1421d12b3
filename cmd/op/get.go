package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/objpath/objpath"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, an object path", cli.ErrUsage)
	}
	path, err := objpath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	expr := args[0]
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		docs, err := readDocs(arg)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			v, err := path.Get(doc)
			if err != nil {
				return fmt.Errorf("error querying %s with %s: %w", arg, expr, err)
			}
			if err := writeDoc(cfg.MainConfig, cc.Out, v); err != nil {
				return fmt.Errorf("error encoding result: %w", err)
			}
		}
	}
	return nil
}
