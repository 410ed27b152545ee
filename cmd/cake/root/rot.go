package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cakecrumb/internal/ui"
)

func newRotCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rot <id>",
		Aliases: []string{"rm", "discard"},
		Short:   "Discard a task (no reward)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			task, err := resolveTask(eng, args[0])
			if err != nil {
				return err
			}
			ok, err := eng.DeleteTask(ctx, task.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, ui.Muted.Render("Nothing to do: "+task.Title+" is already off the table."))
				return nil
			}
			printAnimation(out, eng, task.Title)
			return nil
		},
	}
}
