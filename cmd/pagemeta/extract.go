package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/pagemeta"
	"github.com/fwojciec/pagemeta/preview"
)

// Run executes the extract command. Each extracted preview is written to
// stdout as one JSON line; failures are reported on stderr.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	results := preview.ExtractAll(deps.Ctx, deps.Extractor, c.URLs, c.Concurrency)

	enc := json.NewEncoder(deps.Stdout)
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.URL, errorMessage(r.Err))
			continue
		}
		if err := enc.Encode(r.Preview); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, len(results))
	}
	return nil
}

// errorMessage returns the user-facing message of an application error, or
// the full error text for anything else.
func errorMessage(err error) string {
	if pagemeta.ErrorCode(err) == pagemeta.EINTERNAL {
		return err.Error()
	}
	return pagemeta.ErrorMessage(err)
}
