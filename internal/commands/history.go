package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/om13rajpal/expense-tracker/internal/history"
	"github.com/om13rajpal/expense-tracker/internal/report"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Saved audit runs",
	}
	historyCmd.AddCommand(newHistoryListCommand(opts))
	historyCmd.AddCommand(newHistoryShowCommand(opts))
	return historyCmd
}

func newHistoryListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved audit runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.History.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No saved runs.")
				return nil
			}
			for _, run := range runs {
				fmt.Fprintf(out, "%s  %s  %s  %d txns, %d issues, %d anomalies, net %s\n",
					run.ID, run.GeneratedAt.Format("2006-01-02 15:04"),
					run.Period, run.Transactions, run.IssueCount,
					run.AnomalyCount, run.NetChange)
			}
			return nil
		},
	}
}

func newHistoryShowCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one saved audit run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg.History.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			r, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), r)
			}
			return report.WriteText(cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of the text report")

	return cmd
}
