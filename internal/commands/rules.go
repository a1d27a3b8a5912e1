package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRulesCommand(opts *rootOptions) *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective classification rule set as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}

			classifier, err := buildClassifier(rulesPath, cfg)
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(classifier.Rules())
			if err != nil {
				return fmt.Errorf("marshaling rules: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "classification rules YAML file")

	return cmd
}
