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

func newRewardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rewards",
		Aliases: []string{"shop"},
		Short:   "Browse real-life rewards (paid with coins)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			eng, cleanup, err := openEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCoin, "Rewards"))
			fmt.Fprintln(out, ui.LabelValue("Wallet", ui.Coins(eng.Coins())))
			for _, it := range eng.ShopItems() {
				fmt.Fprintf(out, "  %s %-8s %s %s\n", it.Image, it.ID, it.Name, ui.Coins(it.Price))
				if it.Description != "" {
					fmt.Fprintln(out, ui.Muted.Render("      "+it.Description))
				}
			}
			return nil
		},
	}
	cmd.AddCommand(newRewardsBuyCmd(), newRewardsAddCmd())
	return cmd
}

func newRewardsBuyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <reward-id>",
		Short: "Spend coins on a reward",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("reward id is required")
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

			ok, err := eng.PurchaseShopItem(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, ui.Warn.Render("Can't buy "+args[0]+": unknown or not enough coins."))
				return nil
			}
			fmt.Fprintf(out, "%s %s  %s left\n", ui.IconSparkle, ui.Good.Render("Enjoy your "+args[0]+"!"), ui.Coins(eng.Coins()))
			return nil
		},
	}
}

func newRewardsAddCmd() *cobra.Command {
	var desc string
	var image string
	var price int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom reward",
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

			it, err := eng.AddCustomShopItem(ctx, engine.CustomShopItemInput{
				Name:        strings.Join(args, " "),
				Description: desc,
				Price:       price,
				Image:       image,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", ui.IconPlus, it.Image, ui.Key.Render(it.ID), it.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&image, "image", "", "Emoji shown next to the reward")
	cmd.Flags().IntVarP(&price, "price", "p", 50, "Price in coins")
	return cmd
}
