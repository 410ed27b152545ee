package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cakecrumb/internal/ui"
)

const Version = "0.1.0"

var configPath string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cake",
		Short:         "Cake Crumb: bake your tasks, earn coins and berries",
		Long:          "Cake Crumb is a local-first task tracker with levels, streaks, achievements and two shops.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = Version
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CAKE_CONFIG"), "Path to a YAML config file")

	cmd.AddCommand(
		newAddCmd(),
		newEatCmd(),
		newRotCmd(),
		newListCmd(),
		newStatusCmd(),
		newTimerCmd(),
		newBakeryCmd(),
		newRewardsCmd(),
		newAchievementsCmd(),
		newExportCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
