package main

import (
	"fmt"

	"github.com/fwojciec/pagemeta"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Previews.DeletePreview(deps.Ctx, c.ID); err != nil {
		if pagemeta.ErrorCode(err) == pagemeta.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: preview %q not found. Use 'pagemeta list' to see stored previews.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagemeta.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted preview %s\n", c.ID)
	return nil
}
