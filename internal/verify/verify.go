// Package verify checks running-balance consistency over a sorted
// transaction sequence. Discrepancies are data in the audit output, not
// errors: the walk always covers every record.
package verify

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/om13rajpal/expense-tracker/internal/model"
)

// DefaultTolerance is the slack allowed between the expected and recorded
// balance before a discrepancy is reported. Exports round inconsistently
// at the paisa level, so exact equality is too strict.
var DefaultTolerance = decimal.NewFromFloat(0.01)

// Issue describes one balance discrepancy.
type Issue struct {
	TxnID      string          `json:"txn_id"`
	Date       time.Time       `json:"date"`
	Expected   decimal.Decimal `json:"expected"`
	Actual     decimal.Decimal `json:"actual"`
	Difference decimal.Decimal `json:"difference"` // actual - expected
}

func (i Issue) String() string {
	return fmt.Sprintf("%s [%s]: expected %s, actual %s, diff %s",
		i.Date.Format("2006-01-02"), i.TxnID,
		i.Expected.StringFixed(2), i.Actual.StringFixed(2), i.Difference.StringFixed(2))
}

// Result is the outcome of one verification pass.
type Result struct {
	// OpeningBalance is the balance implied before the first transaction,
	// derived from the first record. Zero value when the input is empty.
	OpeningBalance decimal.Decimal
	Issues         []Issue
	Checked        int // records compared against a prior balance
}

// Run walks txns in order and compares each recorded balance against the
// previous balance plus that record's credit minus its debit. The first
// record only seeds the opening balance; it is never itself checked.
// Balances are reported but never rewritten.
func Run(txns []model.Transaction, tolerance decimal.Decimal) Result {
	var res Result
	if len(txns) == 0 {
		return res
	}

	res.OpeningBalance = txns[0].PriorBalance()

	prev := txns[0].Balance
	for _, txn := range txns[1:] {
		expected := prev.Add(txn.Credit).Sub(txn.Debit)
		if expected.Sub(txn.Balance).Abs().GreaterThan(tolerance) {
			res.Issues = append(res.Issues, Issue{
				TxnID:      txn.ID,
				Date:       txn.ValueDate,
				Expected:   expected,
				Actual:     txn.Balance,
				Difference: txn.Balance.Sub(expected),
			})
		}
		prev = txn.Balance
		res.Checked++
	}
	return res
}
