package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "0.01", cfg.Audit.BalanceTolerance)
	assert.Equal(t, "5000", cfg.Audit.LargeExpenseThreshold)
	assert.Equal(t, 3, cfg.Audit.RecurringMinCount)
	assert.Equal(t, 20, cfg.Audit.TopExpenses)
	assert.Equal(t, "data/history.db", cfg.History.DBPath)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "expense-tracker.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expense-tracker.yaml")

	cfg := Default()
	cfg.Audit.BalanceTolerance = "0.02"
	cfg.Classify.RulesFile = "rules/categorization-rules.yaml"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.02", loaded.Audit.BalanceTolerance)
	assert.Equal(t, "rules/categorization-rules.yaml", loaded.Classify.RulesFile)
	assert.True(t, loaded.Tolerance().Equal(mustDecimal("0.02")))
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expense-tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("audit:\n  balance_tolerance: \"0.02\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.02", cfg.Audit.BalanceTolerance)
	assert.Equal(t, "5000", cfg.Audit.LargeExpenseThreshold, "unset keys keep defaults")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvTolerance, "0.05")
	t.Setenv(EnvHistoryDB, "/tmp/runs.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "expense-tracker.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "0.05", cfg.Audit.BalanceTolerance)
	assert.Equal(t, "/tmp/runs.db", cfg.History.DBPath)
}

func TestValidateRejectsBadDecimal(t *testing.T) {
	cfg := Default()
	cfg.Audit.BalanceTolerance = "a penny"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "balance_tolerance")
}

func TestValidateRejectsZeroRecurringCount(t *testing.T) {
	cfg := Default()
	cfg.Audit.RecurringMinCount = 0
	require.Error(t, cfg.Validate())
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expense-tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("audit: [not a map"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestDecimalAccessors(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Tolerance().Equal(mustDecimal("0.01")))
	assert.True(t, cfg.LargeExpenseThreshold().Equal(mustDecimal("5000")))
	assert.True(t, cfg.AnomalyMultiplier().Equal(mustDecimal("3")))
}
