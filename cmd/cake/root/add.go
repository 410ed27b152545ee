package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cakecrumb/internal/engine"
	"cakecrumb/internal/ui"
)

func newAddCmd() *cobra.Command {
	var diff string
	var flavor string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := engine.ParseDifficulty(diff)
			if err != nil {
				return err
			}

			ctx := context.Background()
			eng, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			task, reward, err := eng.AddTask(ctx, strings.Join(args, " "), flavor, d)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s %s\n", ui.IconPlus, ui.Key.Render(ui.ShortID(task.ID)), task.Title, ui.DifficultyText(string(task.Difficulty)))
			printReward(out, eng, reward)
			return nil
		},
	}

	cmd.Flags().StringVarP(&diff, "diff", "d", "easy", "Difficulty (easy|medium|hard)")
	cmd.Flags().StringVarP(&flavor, "flavor", "f", engine.DefaultCategoryID, "Flavor (category) id")
	return cmd
}
