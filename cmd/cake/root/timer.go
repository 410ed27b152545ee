package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cakecrumb/internal/tui"
	"cakecrumb/internal/ui"
)

func newTimerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Focus timers that pay berries",
	}
	cmd.AddCommand(newTimerStartCmd(), newTimerDoneCmd(), newTimerListCmd())
	return cmd
}

func newTimerStartCmd() *cobra.Command {
	var minutes int
	var watch bool

	cmd := &cobra.Command{
		Use:   "start <task-id>",
		Short: "Start a focus session for a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task id is required")
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
			id, err := eng.StartTimer(ctx, task.ID, minutes)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s (%d min)\n", ui.IconTimer, ui.Key.Render(ui.ShortID(id)), task.Title, minutes)
			if !watch {
				fmt.Fprintln(out, ui.Muted.Render("  finish with: cake timer done "+ui.ShortID(id)))
				return nil
			}

			res, err := tui.RunTimer(ctx, eng, id, task.Title, minutes, out)
			if err != nil {
				return err
			}
			switch {
			case !res.Finished:
				fmt.Fprintln(out, ui.Muted.Render("  timer left running; finish with: cake timer done "+ui.ShortID(id)))
			case res.Reward == nil:
				fmt.Fprintln(out, ui.Muted.Render("  that timer was already finished."))
			default:
				printReward(out, eng, res.Reward)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 25, "Session length in minutes")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Show a live countdown and finish automatically")
	return cmd
}

func newTimerDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <timer-id>",
		Short: "Finish a focus session",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("timer id is required")
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

			s, err := resolveTimer(eng, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			reward, err := eng.CompleteTimer(ctx, s.ID)
			if err != nil {
				return err
			}
			if reward == nil {
				fmt.Fprintln(out, ui.Muted.Render("Nothing to do: that timer already finished."))
				return nil
			}
			fmt.Fprintf(out, "%s %s\n", ui.IconTimer, ui.Good.Render(fmt.Sprintf("Focus session done (%d min)", s.DurationMinutes)))
			printReward(out, eng, reward)
			return nil
		},
	}
}

func newTimerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List focus sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTimer, "Focus Sessions"))
			sessions := eng.TimerSessions()
			if len(sessions) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("  (none yet)"))
				return nil
			}
			for _, s := range sessions {
				state := ui.Good.Render("done")
				if s.IsRunning() {
					state = ui.Warn.Render("running")
				}
				fmt.Fprintf(out, "  %s %3d min  %s  task %s\n", ui.Key.Render(ui.ShortID(s.ID)), s.DurationMinutes, state, ui.ShortID(s.TaskID))
			}
			return nil
		},
	}
}
