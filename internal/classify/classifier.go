package classify

import (
	"slices"
	"strings"

	"github.com/om13rajpal/expense-tracker/internal/model"
)

// Classifier assigns a merchant label and a spending category to
// transaction descriptions by ordered substring matching. It is pure and
// deterministic: same description in, same assignment out, regardless of
// casing.
type Classifier struct {
	rules  RuleSet // patterns upper-cased
	source RuleSet // as authored, for display and round-tripping
}

// New builds a Classifier from a rule set; nil means the built-in
// defaults. Patterns are upper-cased once here so matching never depends
// on how a rules file was typed.
func New(rules *RuleSet) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: canonical(*rules), source: *rules}
}

// Rules returns the rule set as authored, before pattern
// canonicalization.
func (c *Classifier) Rules() RuleSet {
	return c.source
}

// Merchant returns the label of the first merchant rule whose pattern
// occurs in the description, or OTHER.
func (c *Classifier) Merchant(description string) string {
	desc := strings.ToUpper(description)
	for _, rule := range c.rules.Merchants {
		if containsAny(desc, rule.Contains) {
			return rule.Label
		}
	}
	return MerchantOther
}

// Category assigns the spending (debit) or income (credit) category for
// a description. Credit categories key off the extracted merchant first,
// then description substrings; debit categories are substring groups.
// Both sides are first-match-wins with a fixed fallback.
func (c *Classifier) Category(txnType model.TxnType, description string) string {
	desc := strings.ToUpper(description)

	if txnType == model.TypeCredit {
		merchant := c.Merchant(description)
		for _, rule := range c.rules.CreditCategories {
			if slices.Contains(rule.Merchants, merchant) || containsAny(desc, rule.Contains) {
				return rule.Category
			}
		}
		return CategoryIncomeOther
	}

	for _, rule := range c.rules.DebitCategories {
		if containsAny(desc, rule.Contains) {
			return rule.Category
		}
	}
	return CategoryOther
}

// Classify returns the full assignment for one transaction.
func (c *Classifier) Classify(txn model.Transaction) model.Classification {
	return model.Classification{
		Merchant: c.Merchant(txn.Description),
		Category: c.Category(txn.Type, txn.Description),
	}
}

// All classifies every transaction, preserving order.
func (c *Classifier) All(txns []model.Transaction) []model.ClassifiedTransaction {
	out := make([]model.ClassifiedTransaction, len(txns))
	for i, txn := range txns {
		class := c.Classify(txn)
		out[i] = model.ClassifiedTransaction{
			Transaction: txn,
			Merchant:    class.Merchant,
			Category:    class.Category,
		}
	}
	return out
}

func containsAny(desc string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(desc, p) {
			return true
		}
	}
	return false
}

// canonical deep-copies a rule set with all patterns upper-cased, leaving
// the caller's set untouched.
func canonical(rs RuleSet) RuleSet {
	out := RuleSet{
		Merchants:        make([]MerchantRule, len(rs.Merchants)),
		CreditCategories: make([]CategoryRule, len(rs.CreditCategories)),
		DebitCategories:  make([]CategoryRule, len(rs.DebitCategories)),
	}
	for i, rule := range rs.Merchants {
		out.Merchants[i] = MerchantRule{Label: rule.Label, Contains: upperAll(rule.Contains)}
	}
	for i, rule := range rs.CreditCategories {
		out.CreditCategories[i] = CategoryRule{
			Category:  rule.Category,
			Merchants: slices.Clone(rule.Merchants),
			Contains:  upperAll(rule.Contains),
		}
	}
	for i, rule := range rs.DebitCategories {
		out.DebitCategories[i] = CategoryRule{
			Category:  rule.Category,
			Merchants: slices.Clone(rule.Merchants),
			Contains:  upperAll(rule.Contains),
		}
	}
	return out
}

func upperAll(patterns []string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = strings.ToUpper(p)
	}
	return out
}
