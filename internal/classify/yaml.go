package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRules reads a rule set from a YAML file and validates it. A loaded
// file replaces the defaults wholesale; there is no merging, so rule
// order stays exactly what the file says.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules in %s: %w", path, err)
	}
	return &rs, nil
}

// Validate rejects rules that could never match or that would produce
// empty labels.
func (rs *RuleSet) Validate() error {
	for i, rule := range rs.Merchants {
		if rule.Label == "" {
			return fmt.Errorf("merchant rule %d: empty label", i)
		}
		if len(rule.Contains) == 0 {
			return fmt.Errorf("merchant rule %d (%s): no patterns", i, rule.Label)
		}
		for _, p := range rule.Contains {
			if p == "" {
				return fmt.Errorf("merchant rule %d (%s): empty pattern", i, rule.Label)
			}
		}
	}
	if err := validateCategories("credit", rs.CreditCategories); err != nil {
		return err
	}
	return validateCategories("debit", rs.DebitCategories)
}

func validateCategories(side string, rules []CategoryRule) error {
	for i, rule := range rules {
		if rule.Category == "" {
			return fmt.Errorf("%s category rule %d: empty category", side, i)
		}
		if len(rule.Merchants) == 0 && len(rule.Contains) == 0 {
			return fmt.Errorf("%s category rule %d (%s): no merchants or patterns", side, i, rule.Category)
		}
	}
	return nil
}
