package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cakecrumb/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, streak and balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s := eng.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Baker Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", s.Level))
			fmt.Fprintf(out, "%s %s %d/%d\n", ui.Key.Render("XP:"), ui.ProgressBar(s.Experience, s.ExperienceToNextLevel, 20), s.Experience, s.ExperienceToNextLevel)
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d day(s)", ui.IconFire, s.Streak)))
			fmt.Fprintln(out, ui.LabelValue("Coins", ui.Coins(eng.Coins())))
			fmt.Fprintln(out, ui.LabelValue("Berries", ui.Berries(eng.Berries())))

			active, done := 0, 0
			for _, t := range eng.Tasks() {
				switch {
				case t.Completed:
					done++
				case t.IsActive():
					active++
				}
			}
			fmt.Fprintln(out, ui.LabelValue("Tasks", fmt.Sprintf("%d active, %d eaten", active, done)))
			return nil
		},
	}
}
