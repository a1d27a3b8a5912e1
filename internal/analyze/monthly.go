package analyze

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/om13rajpal/expense-tracker/internal/model"
)

// MonthlySummary is the rollup for one calendar month.
type MonthlySummary struct {
	Month          string          `json:"month"` // "2026-01"
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	TotalCredits   decimal.Decimal `json:"total_credits"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
	NetChange      decimal.Decimal `json:"net_change"`
	GrowthRate     decimal.Decimal `json:"growth_rate"` // percent
	Count          int             `json:"transaction_count"`
}

// Monthly groups txns by calendar month and computes per-month balances
// and flow totals, sorted by month key. The opening balance is each
// month's own first record's implied prior balance, recomputed per month
// rather than carried from a global running balance, so a discrepancy in
// one month does not poison the next.
func Monthly(txns []model.ClassifiedTransaction) []MonthlySummary {
	byMonth := make(map[string][]model.ClassifiedTransaction)
	for _, txn := range txns {
		key := txn.Month()
		byMonth[key] = append(byMonth[key], txn)
	}

	months := make([]string, 0, len(byMonth))
	for key := range byMonth {
		months = append(months, key)
	}
	sort.Strings(months)

	out := make([]MonthlySummary, 0, len(months))
	for _, key := range months {
		group := byMonth[key]

		credits := decimal.Zero
		debits := decimal.Zero
		for _, txn := range group {
			credits = credits.Add(txn.Credit)
			debits = debits.Add(txn.Debit)
		}

		opening := group[0].PriorBalance()
		closing := group[len(group)-1].Balance
		net := closing.Sub(opening)

		growth := decimal.Zero
		if !opening.IsZero() {
			growth = net.Div(opening).Mul(decimal.NewFromInt(100))
		}

		out = append(out, MonthlySummary{
			Month:          key,
			OpeningBalance: opening,
			ClosingBalance: closing,
			TotalCredits:   credits,
			TotalDebits:    debits,
			NetChange:      net,
			GrowthRate:     growth,
			Count:          len(group),
		})
	}
	return out
}
