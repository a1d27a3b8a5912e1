// Package commands wires the expense-tracker CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/om13rajpal/expense-tracker/internal/buildinfo"
	"github.com/om13rajpal/expense-tracker/internal/classify"
	"github.com/om13rajpal/expense-tracker/internal/config"
	"github.com/om13rajpal/expense-tracker/internal/ingest"
	"github.com/om13rajpal/expense-tracker/internal/logging"
	"github.com/om13rajpal/expense-tracker/internal/model"
)

type rootOptions struct {
	configPath string
	verbose    bool
	quiet      bool
}

func (o *rootOptions) logger() zerolog.Logger {
	return logging.New(logging.Level(o.verbose, o.quiet))
}

func (o *rootOptions) config() (*config.Config, error) {
	return config.Load(o.configPath)
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "expense-tracker",
		Short:   "Bank-statement audit and spending analysis",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "expense-tracker.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "errors only")

	rootCmd.AddCommand(newAuditCommand(opts))
	rootCmd.AddCommand(newVerifyCommand(opts))
	rootCmd.AddCommand(newRulesCommand(opts))
	rootCmd.AddCommand(newHistoryCommand(opts))

	return rootCmd
}

// loadStatement parses and normalizes one statement export. Skipped rows
// are logged and returned; they never abort the run.
func loadStatement(path, format string, log zerolog.Logger) ([]model.Transaction, []ingest.RowError, error) {
	parser := ingest.DefaultRegistry().Get(format)
	if parser == nil {
		return nil, nil, fmt.Errorf("unknown statement format %q (have %v)", format, ingest.DefaultRegistry().Formats())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	rows, err := parser.Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing statement: %w", err)
	}

	txns, rowErrs := ingest.Normalize(rows)
	for _, re := range rowErrs {
		log.Warn().Int("line", re.Line).Str("txn_id", re.TxnID).Err(re.Err).Msg("skipping row")
	}
	log.Debug().Int("rows", len(rows)).Int("transactions", len(txns)).
		Int("skipped", len(rowErrs)).Str("source", path).Msg("statement loaded")
	return txns, rowErrs, nil
}

// buildClassifier resolves the rule set: an explicit flag wins, then the
// config file's rules path, then the compiled-in defaults.
func buildClassifier(rulesFlag string, cfg *config.Config) (*classify.Classifier, error) {
	path := rulesFlag
	if path == "" {
		path = cfg.Classify.RulesFile
	}
	if path == "" {
		return classify.New(nil), nil
	}
	rules, err := classify.LoadRules(path)
	if err != nil {
		return nil, err
	}
	return classify.New(rules), nil
}
