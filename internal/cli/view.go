package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newQuoteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "quote <symbol>",
		Short: "Look up a symbol's name and current price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			q, err := app.quotes.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s\n",
				q.Name, q.Symbol, q.Price.StringFixed(2))
			return nil
		},
	}
}

func newPortfolioCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio <account>",
		Short: "Show current holdings, cash, and total net worth",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			view, err := app.views.Build(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SYMBOL\tNAME\tSHARES\tPRICE\tVALUE")
			for _, line := range view.Lines {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					line.Symbol, line.Name, line.Shares,
					line.Price.StringFixed(2), line.MarketValue.StringFixed(2))
			}
			fmt.Fprintf(w, "CASH\t\t\t\t%s\n", view.Cash.StringFixed(2))
			fmt.Fprintf(w, "TOTAL\t\t\t\t%s\n", view.NetWorth.StringFixed(2))
			return w.Flush()
		},
	}
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <account>",
		Short: "List every trade ever committed for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.open()
			if err != nil {
				return err
			}
			defer app.Close()

			recs, err := app.views.History(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tSYMBOL\tSHARES\tPRICE")
			for _, rec := range recs {
				fmt.Fprintf(w, "%s\t%s\t%+d\t%s\n",
					rec.Time.Format("2006-01-02 15:04:05"),
					rec.Symbol, rec.Shares, rec.Price.StringFixed(2))
			}
			return w.Flush()
		},
	}
}
