// Package analyze computes the audit report's aggregates: monthly
// rollups, counterparty totals, spending-pattern histograms, and anomaly
// detection. Every pass is an independent reduction over the classified
// record slice; passes read shared input and write only their own result,
// so callers may run them in any order or concurrently.
package analyze

import "github.com/shopspring/decimal"

// Thresholds are the analysis tuning knobs. The audit ships defaults
// matching the bank-export conventions but every value is configurable.
type Thresholds struct {
	// LargeExpense is the minimum debit amount for the large-expense list.
	LargeExpense decimal.Decimal
	// RecurringMinCount is the minimum debit count for a merchant to be
	// reported as recurring.
	RecurringMinCount int
	// AnomalyMultiplier flags debits strictly greater than this multiple
	// of the mean debit amount.
	AnomalyMultiplier decimal.Decimal
}

// DefaultThresholds returns the stock analysis thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LargeExpense:      decimal.NewFromInt(5000),
		RecurringMinCount: 3,
		AnomalyMultiplier: decimal.NewFromInt(3),
	}
}
