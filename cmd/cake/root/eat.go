package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cakecrumb/internal/ui"
)

func newEatCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "eat <id>",
		Aliases: []string{"do", "done"},
		Short:   "Complete a task",
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
			out := cmd.OutOrStdout()
			if !task.IsActive() {
				fmt.Fprintln(out, ui.Muted.Render("Nothing to do: "+task.Title+" is already off the table."))
				return nil
			}

			reward, err := eng.CompleteTask(ctx, task.ID)
			if err != nil {
				return err
			}
			printAnimation(out, eng, task.Title)
			printReward(out, eng, reward)
			return nil
		},
	}
}
