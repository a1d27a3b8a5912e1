package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `merchants:
  - label: ACME
    contains: ["ACME CORP", "ACME"]
credit_categories:
  - category: Income - Salary
    contains: ["ACME"]
debit_categories:
  - category: Office
    merchants: ["ACME"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rs, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rs.Merchants, 1)
	assert.Equal(t, "ACME", rs.Merchants[0].Label)
	assert.Equal(t, []string{"ACME CORP", "ACME"}, rs.Merchants[0].Contains)
	require.Len(t, rs.CreditCategories, 1)
	require.Len(t, rs.DebitCategories, 1)
}

func TestLoadRules_MissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRules_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("merchants: {not a list"), 0o644))
	_, err := LoadRules(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rs      RuleSet
		wantErr string
	}{
		{
			name: "empty merchant label",
			rs: RuleSet{Merchants: []MerchantRule{
				{Label: "", Contains: []string{"X"}},
			}},
			wantErr: "empty label",
		},
		{
			name: "merchant without patterns",
			rs: RuleSet{Merchants: []MerchantRule{
				{Label: "X"},
			}},
			wantErr: "no patterns",
		},
		{
			name: "empty pattern string",
			rs: RuleSet{Merchants: []MerchantRule{
				{Label: "X", Contains: []string{""}},
			}},
			wantErr: "empty pattern",
		},
		{
			name: "category with neither merchants nor patterns",
			rs: RuleSet{DebitCategories: []CategoryRule{
				{Category: "Food & Dining"},
			}},
			wantErr: "no merchants or patterns",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rs.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultRulesValid(t *testing.T) {
	assert.NoError(t, DefaultRules().Validate())
}
