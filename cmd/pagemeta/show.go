package main

import (
	"fmt"

	"github.com/fwojciec/pagemeta"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	previews, err := deps.Previews.FindPreviews(deps.Ctx, pagemeta.PreviewFilter{URL: &c.URL, Limit: 1})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemeta.ErrorMessage(err))
		return err
	}

	if len(previews) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no preview stored for %q. Use 'pagemeta extract' to fetch it.\n", c.URL)
		return pagemeta.Errorf(pagemeta.ENOTFOUND, "no preview stored for %q", c.URL)
	}

	return writeJSON(deps.Stdout, previews[0])
}
