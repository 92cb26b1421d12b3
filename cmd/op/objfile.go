package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/objpath/objpath"
)

// readDocs reads arg ("-" for stdin) and decodes it as a stream of YAML or
// JSON documents separated by "\n---\n".
func readDocs(arg string) ([]any, error) {
	var r io.Reader
	if arg == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", arg, err)
	}
	var docs []any
	for i, raw := range bytes.Split(d, []byte("\n---\n")) {
		var v any
		if err := yaml.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("error decoding document %d of %s: %w", i, arg, err)
		}
		docs = append(docs, v)
	}
	return docs, nil
}

// writeDoc encodes v on w. Absent results produce no output and no error.
func writeDoc(cfg *MainConfig, w io.Writer, v any) error {
	if objpath.IsAbsent(v) {
		return nil
	}
	if cfg.useColor(w) {
		if s, ok := newColors().scalar(v); ok {
			_, err := fmt.Fprintln(w, s)
			return err
		}
	}
	var d []byte
	var err error
	if cfg.J {
		d, err = json.MarshalIndent(v, "", "  ")
		d = append(d, '\n')
	} else {
		d, err = yaml.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

func writeSep(w io.Writer) error {
	_, err := w.Write([]byte("---\n"))
	return err
}
