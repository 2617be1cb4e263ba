package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/pagemeta"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	var r io.Reader = os.Stdin
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		defer f.Close()
		r = f
	}

	html, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read HTML: %w", err)
	}

	doc, err := deps.Parser.Parse(string(html))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	metadata, err := pagemeta.GetMetadata(doc, c.URL, deps.Rules, nil, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	return writeJSON(deps.Stdout, metadata)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
