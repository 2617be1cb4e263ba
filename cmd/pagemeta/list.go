package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/pagemeta"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	previews, err := deps.Previews.FindPreviews(deps.Ctx, pagemeta.PreviewFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemeta.ErrorMessage(err))
		return err
	}

	if c.JSON {
		return writeJSON(deps.Stdout, previews)
	}

	if len(previews) == 0 {
		fmt.Fprintln(deps.Stdout, "No previews found. Use 'pagemeta extract' to add one.")
		return nil
	}

	for _, p := range previews {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			p.ID, p.FetchedAt.Format(time.DateTime), p.URL, p.Metadata.String(pagemeta.FieldTitle))
	}

	return nil
}
