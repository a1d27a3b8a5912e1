package analyze

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/om13rajpal/expense-tracker/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func ctxn(id string, date time.Time, debit, credit, balance string, typ model.TxnType, merchant, category string) model.ClassifiedTransaction {
	return model.ClassifiedTransaction{
		Transaction: model.Transaction{
			ID:        id,
			ValueDate: date,
			Debit:     dec(debit),
			Credit:    dec(credit),
			Balance:   dec(balance),
			Type:      typ,
		},
		Merchant: merchant,
		Category: category,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthly_TwoMonths(t *testing.T) {
	txns := []model.ClassifiedTransaction{
		ctxn("T1", day(2026, 1, 1), "0", "1000.00", "2000.00", model.TypeCredit, "OTHER", "Income - Other"),
		ctxn("T2", day(2026, 1, 15), "500.00", "0", "1500.00", model.TypeDebit, "SWIGGY", "Food & Dining"),
		ctxn("T3", day(2026, 2, 1), "0", "200.00", "1700.00", model.TypeCredit, "OTHER", "Income - Other"),
		ctxn("T4", day(2026, 2, 20), "100.00", "0", "1600.00", model.TypeDebit, "ZEPTO", "Groceries"),
	}

	months := Monthly(txns)
	require.Len(t, months, 2)

	jan := months[0]
	assert.Equal(t, "2026-01", jan.Month)
	assert.True(t, jan.OpeningBalance.Equal(dec("1000.00")), "opening = first record's implied prior balance")
	assert.True(t, jan.ClosingBalance.Equal(dec("1500.00")), "closing = last record's literal balance")
	assert.True(t, jan.TotalCredits.Equal(dec("1000.00")))
	assert.True(t, jan.TotalDebits.Equal(dec("500.00")))
	assert.True(t, jan.NetChange.Equal(dec("500.00")))
	assert.True(t, jan.GrowthRate.Equal(dec("50")))
	assert.Equal(t, 2, jan.Count)

	feb := months[1]
	assert.Equal(t, "2026-02", feb.Month)
	assert.True(t, feb.OpeningBalance.Equal(dec("1500.00")), "opening recomputed from february's first record")
	assert.True(t, feb.ClosingBalance.Equal(dec("1600.00")))
}

func TestMonthly_ZeroOpeningGrowthRate(t *testing.T) {
	txns := []model.ClassifiedTransaction{
		ctxn("T1", day(2026, 3, 1), "0", "500.00", "500.00", model.TypeCredit, "OTHER", "Income - Other"),
	}

	months := Monthly(txns)
	require.Len(t, months, 1)
	assert.True(t, months[0].OpeningBalance.IsZero())
	assert.True(t, months[0].GrowthRate.IsZero(), "zero opening balance reports growth 0, not an error")
}

func TestMonthly_ClosingIsLastRecordBalance(t *testing.T) {
	// Even when the recorded balances are inconsistent, closing must be
	// the literal balance on the month's chronologically last record.
	txns := []model.ClassifiedTransaction{
		ctxn("T1", day(2026, 1, 2), "0", "100.00", "100.00", model.TypeCredit, "OTHER", "Income - Other"),
		ctxn("T2", day(2026, 1, 30), "0", "0", "9999.00", model.TypeCredit, "OTHER", "Income - Other"),
	}

	months := Monthly(txns)
	require.Len(t, months, 1)
	assert.True(t, months[0].ClosingBalance.Equal(dec("9999.00")))
}

func TestMonthly_Empty(t *testing.T) {
	assert.Empty(t, Monthly(nil))
}
