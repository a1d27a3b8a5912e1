package analyze

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/om13rajpal/expense-tracker/internal/classify"
	"github.com/om13rajpal/expense-tracker/internal/model"
)

// MerchantFlow is the rollup for one counterparty: how many transactions,
// how much in total, and the average per transaction.
type MerchantFlow struct {
	Merchant string          `json:"merchant"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
	Average  decimal.Decimal `json:"average"`
}

// LargeExpense is one debit at or above the large-expense threshold.
type LargeExpense struct {
	TxnID       string          `json:"txn_id"`
	Date        string          `json:"date"` // "2026-01-24"
	Amount      decimal.Decimal `json:"amount"`
	Merchant    string          `json:"merchant"`
	Description string          `json:"description"`
}

// DayRange is the spending rollup for one fixed slice of the month.
type DayRange struct {
	Label       string          `json:"label"`
	FirstDay    int             `json:"first_day"`
	LastDay     int             `json:"last_day"`
	TotalDebits decimal.Decimal `json:"total_debits"`
	Count       int             `json:"count"` // debit transactions in range
	Average     decimal.Decimal `json:"average"`
}

// IncomeSources groups credit transactions by merchant and reports each
// source's count, total, and average, sorted by total descending (name
// ascending on ties).
func IncomeSources(txns []model.ClassifiedTransaction) []MerchantFlow {
	totals := make(map[string]*MerchantFlow)
	for _, txn := range txns {
		if !txn.Credit.IsPositive() {
			continue
		}
		flow, ok := totals[txn.Merchant]
		if !ok {
			flow = &MerchantFlow{Merchant: txn.Merchant}
			totals[txn.Merchant] = flow
		}
		flow.Count++
		flow.Total = flow.Total.Add(txn.Credit)
	}
	return sortFlows(totals, func(a, b *MerchantFlow) bool {
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Merchant < b.Merchant
	})
}

// LargeExpenses returns debits at or above threshold, sorted by amount
// descending. The caller caps the view; this returns all of them.
func LargeExpenses(txns []model.ClassifiedTransaction, threshold decimal.Decimal) []LargeExpense {
	var out []LargeExpense
	for _, txn := range txns {
		if txn.Debit.GreaterThanOrEqual(threshold) && txn.Debit.IsPositive() {
			out = append(out, LargeExpense{
				TxnID:       txn.ID,
				Date:        txn.ValueDate.Format("2006-01-02"),
				Amount:      txn.Debit,
				Merchant:    txn.Merchant,
				Description: txn.Description,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

// RecurringMerchants groups debit transactions by merchant, drops the
// OTHER sentinel (unmatched descriptions are not a merchant), and keeps
// merchants seen at least minCount times. Sorted by count descending,
// name ascending on ties.
func RecurringMerchants(txns []model.ClassifiedTransaction, minCount int) []MerchantFlow {
	totals := make(map[string]*MerchantFlow)
	for _, txn := range txns {
		if !txn.Debit.IsPositive() || txn.Merchant == classify.MerchantOther {
			continue
		}
		flow, ok := totals[txn.Merchant]
		if !ok {
			flow = &MerchantFlow{Merchant: txn.Merchant}
			totals[txn.Merchant] = flow
		}
		flow.Count++
		flow.Total = flow.Total.Add(txn.Debit)
	}
	for merchant, flow := range totals {
		if flow.Count < minCount {
			delete(totals, merchant)
		}
	}
	return sortFlows(totals, func(a, b *MerchantFlow) bool {
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Merchant < b.Merchant
	})
}

// DayRanges partitions spending into the fixed beginning / mid-month /
// end-month slices. The end slice runs to a literal day 31 whatever the
// actual month length.
func DayRanges(txns []model.ClassifiedTransaction) []DayRange {
	ranges := []DayRange{
		{Label: "Beginning (1-10)", FirstDay: 1, LastDay: 10},
		{Label: "Mid-Month (11-20)", FirstDay: 11, LastDay: 20},
		{Label: "End-Month (21-31)", FirstDay: 21, LastDay: 31},
	}
	for _, txn := range txns {
		day := txn.ValueDate.Day()
		for i := range ranges {
			if day < ranges[i].FirstDay || day > ranges[i].LastDay {
				continue
			}
			ranges[i].TotalDebits = ranges[i].TotalDebits.Add(txn.Debit)
			if txn.Debit.IsPositive() {
				ranges[i].Count++
			}
		}
	}
	for i := range ranges {
		if ranges[i].Count > 0 {
			ranges[i].Average = ranges[i].TotalDebits.Div(decimal.NewFromInt(int64(ranges[i].Count)))
		}
	}
	return ranges
}

func sortFlows(totals map[string]*MerchantFlow, less func(a, b *MerchantFlow) bool) []MerchantFlow {
	flows := make([]*MerchantFlow, 0, len(totals))
	for _, flow := range totals {
		flow.Average = flow.Total.Div(decimal.NewFromInt(int64(flow.Count)))
		flows = append(flows, flow)
	}
	sort.Slice(flows, func(i, j int) bool { return less(flows[i], flows[j]) })

	out := make([]MerchantFlow, len(flows))
	for i, flow := range flows {
		out[i] = *flow
	}
	return out
}
