package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/om13rajpal/expense-tracker/internal/report"
	"github.com/om13rajpal/expense-tracker/internal/verify"
)

func newVerifyCommand(opts *rootOptions) *cobra.Command {
	var (
		format    string
		tolerance string
	)

	cmd := &cobra.Command{
		Use:   "verify <statement.csv>",
		Short: "Check running-balance consistency only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := opts.logger()

			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if tolerance != "" {
				cfg.Audit.BalanceTolerance = tolerance
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			txns, _, err := loadStatement(args[0], format, log)
			if err != nil {
				return err
			}
			if len(txns) == 0 {
				return report.ErrEmptyDataset
			}

			res := verify.Run(txns, cfg.Tolerance())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Opening balance (calculated): %s\n", res.OpeningBalance.StringFixed(2))
			fmt.Fprintf(out, "Checked %d of %d transactions (tolerance %s)\n",
				res.Checked, len(txns), cfg.Audit.BalanceTolerance)

			if len(res.Issues) == 0 {
				fmt.Fprintln(out, "No balance discrepancies detected.")
				return nil
			}

			fmt.Fprintf(out, "Found %d discrepancies:\n", len(res.Issues))
			for _, issue := range res.Issues {
				fmt.Fprintf(out, "  %s\n", issue)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "bank-export", "statement format")
	cmd.Flags().StringVar(&tolerance, "tolerance", "", "balance verification tolerance, e.g. 0.01")

	return cmd
}
