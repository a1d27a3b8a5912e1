package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/om13rajpal/expense-tracker/internal/analyze"
	"github.com/om13rajpal/expense-tracker/internal/history"
	"github.com/om13rajpal/expense-tracker/internal/report"
)

func newAuditCommand(opts *rootOptions) *cobra.Command {
	var (
		format    string
		asJSON    bool
		output    string
		detail    bool
		save      bool
		top       int
		tolerance string
		rulesPath string
	)

	cmd := &cobra.Command{
		Use:   "audit <statement.csv>",
		Short: "Run the full audit: verify balances, classify, aggregate",
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
			if cmd.Flags().Changed("top") {
				cfg.Audit.TopExpenses = top
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			classifier, err := buildClassifier(rulesPath, cfg)
			if err != nil {
				return err
			}

			txns, rowErrs, err := loadStatement(args[0], format, log)
			if err != nil {
				return err
			}

			buildOpts := report.Options{
				Source:    args[0],
				Tolerance: cfg.Tolerance(),
				Thresholds: analyze.Thresholds{
					LargeExpense:      cfg.LargeExpenseThreshold(),
					RecurringMinCount: cfg.Audit.RecurringMinCount,
					AnomalyMultiplier: cfg.AnomalyMultiplier(),
				},
				TopExpenses:   cfg.Audit.TopExpenses,
				IncludeDetail: detail,
			}
			r, err := report.Build(txns, rowErrs, classifier, buildOpts)
			if err != nil {
				return err
			}

			log.Info().Str("run_id", r.RunID).
				Int("transactions", r.Summary.Transactions).
				Int("issues", len(r.VerificationIssues)).
				Int("anomalies", len(r.Anomalies)).Msg("audit complete")

			if save {
				if err := saveRun(cmd, cfg.History.DBPath, r); err != nil {
					return err
				}
				log.Info().Str("run_id", r.RunID).Str("db", cfg.History.DBPath).Msg("run saved")
			}

			return writeReport(cmd, r, asJSON, output)
		},
	}

	cmd.Flags().StringVar(&format, "format", "bank-export", "statement format")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of the text report")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON report to a file")
	cmd.Flags().BoolVar(&detail, "detail", false, "include every classified transaction")
	cmd.Flags().BoolVar(&save, "save", false, "persist the run to the history database")
	cmd.Flags().IntVar(&top, "top", 20, "cap for the large-expense list")
	cmd.Flags().StringVar(&tolerance, "tolerance", "", "balance verification tolerance, e.g. 0.01")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "classification rules YAML file")

	return cmd
}

func writeReport(cmd *cobra.Command, r *report.Report, asJSON bool, output string) error {
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		return report.WriteJSON(f, r)
	}
	if asJSON {
		return report.WriteJSON(cmd.OutOrStdout(), r)
	}
	return report.WriteText(cmd.OutOrStdout(), r)
}

func saveRun(cmd *cobra.Command, dbPath string, r *report.Report) error {
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(cmd.Context(), r)
}
