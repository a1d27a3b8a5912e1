package analyze

import (
	"github.com/shopspring/decimal"

	"github.com/om13rajpal/expense-tracker/internal/model"
)

// AnomalyKind tags an Anomaly variant.
type AnomalyKind string

const (
	AnomalyLargeTransaction AnomalyKind = "large_transaction"
	AnomalyDuplicateAmount  AnomalyKind = "duplicate_amount"
)

// Anomaly is a derived observation flagged for human review, not an
// error. Kind selects which of the optional fields are populated.
type Anomaly struct {
	Kind   AnomalyKind     `json:"type"`
	Date   string          `json:"date"` // "2026-01-10"
	Amount decimal.Decimal `json:"amount"`

	// Large-transaction fields.
	Merchant    string `json:"merchant,omitempty"`
	Description string `json:"description,omitempty"`

	// Duplicate-amount fields.
	Count        int      `json:"count,omitempty"`
	Descriptions []string `json:"transactions,omitempty"`
}

// Description clips match what the audit export sinks expect.
const (
	largeDescLimit = 100
	dupDescLimit   = 50
)

// DetectAnomalies flags debits strictly greater than multiplier times
// the mean debit amount, and clusters of two or more same-day
// transactions with the identical nonzero amount. Output order is
// deterministic: large transactions in record order, then duplicate
// clusters in first-seen order.
func DetectAnomalies(txns []model.ClassifiedTransaction, multiplier decimal.Decimal) []Anomaly {
	var anomalies []Anomaly

	debitTotal := decimal.Zero
	debitCount := 0
	for _, txn := range txns {
		if txn.Type == model.TypeDebit {
			debitTotal = debitTotal.Add(txn.Debit)
			debitCount++
		}
	}

	if debitCount > 0 {
		cutoff := debitTotal.Div(decimal.NewFromInt(int64(debitCount))).Mul(multiplier)
		for _, txn := range txns {
			if txn.Type == model.TypeDebit && txn.Debit.GreaterThan(cutoff) {
				anomalies = append(anomalies, Anomaly{
					Kind:        AnomalyLargeTransaction,
					Date:        txn.ValueDate.Format("2006-01-02"),
					Amount:      txn.Debit,
					Merchant:    txn.Merchant,
					Description: clip(txn.Description, largeDescLimit),
				})
			}
		}
	}

	anomalies = append(anomalies, duplicateAmounts(txns)...)
	return anomalies
}

type dupKey struct {
	date   string
	amount string
}

func duplicateAmounts(txns []model.ClassifiedTransaction) []Anomaly {
	clusters := make(map[dupKey][]string)
	var order []dupKey
	for _, txn := range txns {
		amount := txn.Amount()
		if !amount.IsPositive() {
			continue
		}
		key := dupKey{date: txn.ValueDate.Format("2006-01-02"), amount: amount.String()}
		if _, seen := clusters[key]; !seen {
			order = append(order, key)
		}
		clusters[key] = append(clusters[key], clip(txn.Description, dupDescLimit))
	}

	var anomalies []Anomaly
	for _, key := range order {
		descs := clusters[key]
		if len(descs) < 2 {
			continue
		}
		amount, _ := decimal.NewFromString(key.amount)
		anomalies = append(anomalies, Anomaly{
			Kind:         AnomalyDuplicateAmount,
			Date:         key.date,
			Amount:       amount,
			Count:        len(descs),
			Descriptions: descs,
		})
	}
	return anomalies
}

func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
