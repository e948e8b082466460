package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stockfolio/stockfolio/engine"
)

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "register <account>",
		Short: "Create an account with the configured seed cash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			acct, err := app.engine.Register(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s with cash %s\n",
				acct.ID, acct.Cash.StringFixed(2))
			return nil
		},
	}
}

func newBuyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <account> <symbol> <shares>",
		Short: "Buy shares at the current quoted price",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			shares, err := parseShares(args[2])
			if err != nil {
				return err
			}

			app, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			tr, err := app.engine.Buy(cmd.Context(), args[0], args[1], shares)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "bought %d %s at %s, cash %s\n",
				tr.Record.Shares, tr.Record.Symbol,
				tr.Record.Price.StringFixed(2), tr.Cash.StringFixed(2))
			return nil
		},
	}
}

func newSellCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sell <account> <symbol> <shares>",
		Short: "Sell held shares at the current quoted price",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			shares, err := parseShares(args[2])
			if err != nil {
				return err
			}

			app, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			tr, err := app.engine.Sell(cmd.Context(), args[0], args[1], shares)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sold %d %s at %s, cash %s\n",
				-tr.Record.Shares, tr.Record.Symbol,
				tr.Record.Price.StringFixed(2), tr.Cash.StringFixed(2))
			return nil
		},
	}
}

// parseShares rejects fractional or non-numeric counts before the
// engine sees them, matching its positive-integer rule.
func parseShares(arg string) (int64, error) {
	shares, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("shares %q: %w", arg, engine.ErrInvalidQuantity)
	}
	return shares, nil
}
