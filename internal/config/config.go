// Package config loads the expense-tracker.yaml configuration with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the file loads.
const (
	EnvTolerance = "EXPENSE_TRACKER_TOLERANCE"
	EnvRulesFile = "EXPENSE_TRACKER_RULES_FILE"
	EnvHistoryDB = "EXPENSE_TRACKER_HISTORY_DB"
)

// Config represents the top-level expense-tracker.yaml configuration.
type Config struct {
	Audit    AuditConfig    `yaml:"audit"`
	Classify ClassifyConfig `yaml:"classify"`
	History  HistoryConfig  `yaml:"history"`
}

// AuditConfig holds the analysis tuning knobs. Monetary values are kept
// as decimal strings so the file never round-trips through float64.
type AuditConfig struct {
	BalanceTolerance      string `yaml:"balance_tolerance"`
	LargeExpenseThreshold string `yaml:"large_expense_threshold"`
	RecurringMinCount     int    `yaml:"recurring_min_count"`
	AnomalyMultiplier     string `yaml:"anomaly_multiplier"`
	TopExpenses           int    `yaml:"top_expenses"`
}

// ClassifyConfig points at an optional rules file; empty means the
// compiled-in default taxonomy.
type ClassifyConfig struct {
	RulesFile string `yaml:"rules_file,omitempty"`
}

// HistoryConfig locates the audit-run history database.
type HistoryConfig struct {
	DBPath string `yaml:"db_path"`
}

// Default returns a Config with stock values.
func Default() *Config {
	return &Config{
		Audit: AuditConfig{
			BalanceTolerance:      "0.01",
			LargeExpenseThreshold: "5000",
			RecurringMinCount:     3,
			AnomalyMultiplier:     "3",
			TopExpenses:           20,
		},
		History: HistoryConfig{
			DBPath: "data/history.db",
		},
	}
}

// Load reads an expense-tracker.yaml file from disk and applies
// environment overrides. A missing file is not an error: defaults plus
// environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults plus env
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvTolerance); v != "" {
		c.Audit.BalanceTolerance = v
	}
	if v := os.Getenv(EnvRulesFile); v != "" {
		c.Classify.RulesFile = v
	}
	if v := os.Getenv(EnvHistoryDB); v != "" {
		c.History.DBPath = v
	}
}

// Validate checks the decimal strings parse and the counts make sense.
func (c *Config) Validate() error {
	for name, value := range map[string]string{
		"audit.balance_tolerance":       c.Audit.BalanceTolerance,
		"audit.large_expense_threshold": c.Audit.LargeExpenseThreshold,
		"audit.anomaly_multiplier":      c.Audit.AnomalyMultiplier,
	} {
		if _, err := decimal.NewFromString(value); err != nil {
			return fmt.Errorf("%s: %q is not a decimal", name, value)
		}
	}
	if c.Audit.RecurringMinCount < 1 {
		return fmt.Errorf("audit.recurring_min_count: must be at least 1, got %d", c.Audit.RecurringMinCount)
	}
	return nil
}

// Tolerance returns the balance-verification tolerance as a decimal.
// Call Validate (or Load) first; an unparsable value panics here.
func (c *Config) Tolerance() decimal.Decimal {
	return mustDecimal(c.Audit.BalanceTolerance)
}

// LargeExpenseThreshold returns the large-expense cutoff as a decimal.
func (c *Config) LargeExpenseThreshold() decimal.Decimal {
	return mustDecimal(c.Audit.LargeExpenseThreshold)
}

// AnomalyMultiplier returns the large-transaction multiplier as a decimal.
func (c *Config) AnomalyMultiplier() decimal.Decimal {
	return mustDecimal(c.Audit.AnomalyMultiplier)
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic("config: " + strconv.Quote(s) + " is not a decimal")
	}
	return d
}
