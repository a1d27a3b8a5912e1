package analyze

import (
	"github.com/shopspring/decimal"

	"github.com/om13rajpal/expense-tracker/internal/model"
)

// SizeBands counts debit transactions by amount band.
type SizeBands struct {
	Small     int `json:"small"`      // < 500
	Medium    int `json:"medium"`     // 500 – 4999.99
	Large     int `json:"large"`      // 5000 – 49999.99
	VeryLarge int `json:"very_large"` // >= 50000
}

// Band boundaries for SizeBands.
var (
	bandMedium = decimal.NewFromInt(500)
	bandLarge  = decimal.NewFromInt(5000)
	bandVLarge = decimal.NewFromInt(50000)
)

// Patterns is the spending-distribution view: when in the month money
// moves, where it goes, and how big individual debits are. Category and
// merchant histograms cover debit-typed records only; the day histogram
// covers every record.
type Patterns struct {
	DayOfMonth     map[int]int                `json:"day_of_month"`
	CategoryTotals map[string]decimal.Decimal `json:"category_totals"`
	CategoryCounts map[string]int             `json:"category_counts"`
	MerchantTotals map[string]decimal.Decimal `json:"merchant_totals"`
	MerchantCounts map[string]int             `json:"merchant_counts"`
	SizeBands      SizeBands                  `json:"size_categories"`
}

// BuildPatterns computes all pattern histograms in one pass.
func BuildPatterns(txns []model.ClassifiedTransaction) Patterns {
	p := Patterns{
		DayOfMonth:     make(map[int]int),
		CategoryTotals: make(map[string]decimal.Decimal),
		CategoryCounts: make(map[string]int),
		MerchantTotals: make(map[string]decimal.Decimal),
		MerchantCounts: make(map[string]int),
	}

	for _, txn := range txns {
		p.DayOfMonth[txn.ValueDate.Day()]++

		if txn.Type != model.TypeDebit {
			continue
		}

		p.CategoryTotals[txn.Category] = p.CategoryTotals[txn.Category].Add(txn.Debit)
		p.CategoryCounts[txn.Category]++
		p.MerchantTotals[txn.Merchant] = p.MerchantTotals[txn.Merchant].Add(txn.Debit)
		p.MerchantCounts[txn.Merchant]++

		switch {
		case txn.Debit.LessThan(bandMedium):
			p.SizeBands.Small++
		case txn.Debit.LessThan(bandLarge):
			p.SizeBands.Medium++
		case txn.Debit.LessThan(bandVLarge):
			p.SizeBands.Large++
		default:
			p.SizeBands.VeryLarge++
		}
	}
	return p
}
