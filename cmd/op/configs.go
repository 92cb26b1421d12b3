package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	J     bool `cli:"name=j aliases=json desc='output documents as json'"`
	Color bool `cli:"name=color desc='force colored scalar output'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// useColor is true when forced by -color, or by default when writing to a
// terminal and -color was not given at all.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	colorSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorSet = opt.Value != nil
		break
	}
	if colorSet {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig

	S bool `cli:"name=s desc='treat the value argument as a raw string'"`

	Set *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}
