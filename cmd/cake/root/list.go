package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cakecrumb/internal/engine"
	"cakecrumb/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks := eng.ActiveTasks()
			if all {
				tasks = eng.Tasks()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCake, "Tasks"))
			if len(tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("  (nothing in the oven)"))
				return nil
			}
			flavors := map[string]string{}
			for _, c := range eng.Categories() {
				flavors[c.ID] = c.Name
			}
			for _, t := range tasks {
				fmt.Fprintf(out, "  %s %s %s %s %s\n",
					ui.Key.Render(ui.ShortID(t.ID)),
					taskMark(t),
					t.Title,
					ui.DifficultyText(string(t.Difficulty)),
					ui.Muted.Render("("+flavorName(flavors, t.CategoryID)+")"),
				)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed and discarded tasks")
	return cmd
}

func taskMark(t engine.Task) string {
	switch {
	case t.Completed:
		return ui.IconEat
	case t.Deleted:
		return ui.IconRot
	default:
		return ui.IconCake
	}
}

func flavorName(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return id
}
