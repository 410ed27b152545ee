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

func newBakeryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bakery",
		Aliases: []string{"flavors"},
		Short:   "Browse flavors (paid with berries)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCake, "Bakery"))
			fmt.Fprintln(out, ui.LabelValue("Wallet", ui.Berries(eng.Berries())))
			for _, c := range eng.Categories() {
				mark := ui.IconLock
				if c.Owned {
					mark = ui.Good.Render("✓")
				}
				fmt.Fprintf(out, "  %s %-12s %s %s\n", mark, c.ID, c.Name, ui.Berries(c.Price))
			}
			return nil
		},
	}
	cmd.AddCommand(newBakeryBuyCmd(), newBakeryAddCmd())
	return cmd
}

func newBakeryBuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <flavor-id>",
		Short: "Buy a flavor with berries",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("flavor id is required")
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

			ok, err := eng.PurchaseCategory(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, ui.Warn.Render("Can't buy "+args[0]+": unknown, already owned, or not enough berries."))
				return nil
			}
			fmt.Fprintf(out, "%s %s  %s left\n", ui.IconSparkle, ui.Good.Render("Bought "+args[0]), ui.Berries(eng.Berries()))
			return nil
		},
	}
}

func newBakeryAddCmd() *cobra.Command {
	var color string
	var price int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom flavor",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("name is required")
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

			c, err := eng.AddCustomCategory(ctx, engine.CustomCategoryInput{
				Name:  strings.Join(args, " "),
				Color: color,
				Price: price,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.IconPlus, ui.Key.Render(c.ID), c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Display color")
	cmd.Flags().IntVarP(&price, "price", "p", 25, "Price in berries")
	return cmd
}
