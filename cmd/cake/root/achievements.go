package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cakecrumb/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"ach"},
		Short:   "Show achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Achievements"))
			for _, a := range eng.Achievements() {
				icon := ui.IconLock
				title := ui.Muted.Render(a.Title)
				if a.IsUnlocked {
					icon = a.Icon
					title = ui.Gold.Render(a.Title)
				}
				line := fmt.Sprintf("  %s %s  %s", icon, title, ui.Muted.Render(a.Description))
				if a.IsCumulative() && a.Progress != nil && !a.IsUnlocked {
					line += fmt.Sprintf("  %s %d/%d", ui.ProgressBar(*a.Progress, *a.Goal, 10), *a.Progress, *a.Goal)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
