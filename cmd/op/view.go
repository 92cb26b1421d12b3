package main

import (
	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	n := 0
	for _, arg := range args {
		docs, err := readDocs(arg)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if n > 0 {
				if err := writeSep(cc.Out); err != nil {
					return err
				}
			}
			n++
			if err := writeDoc(cfg.MainConfig, cc.Out, doc); err != nil {
				return err
			}
		}
	}
	return nil
}
