package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/om13rajpal/expense-tracker/internal/ingest"
	"github.com/om13rajpal/expense-tracker/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func txn(id string, y int, m time.Month, d int, debit, credit, balance string, typ model.TxnType, desc string) model.Transaction {
	return model.Transaction{
		ID:          id,
		ValueDate:   time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Description: desc,
		Debit:       dec(debit),
		Credit:      dec(credit),
		Balance:     dec(balance),
		Type:        typ,
	}
}

func sampleTxns() []model.Transaction {
	return []model.Transaction{
		txn("T1", 2026, 1, 1, "0", "85000.00", "335000.00", model.TypeCredit, "NEFT-SALARY CREDIT-ACME TECHNOLOGIES"),
		txn("T2", 2026, 1, 2, "450.00", "0", "334550.00", model.TypeDebit, "UPI/ZEPTO MART/4311/PAYMENT"),
		txn("T3", 2026, 1, 5, "1250.50", "0", "333299.50", model.TypeDebit, "UPI/SWIGGY/ORDER 8812"),
		txn("T4", 2026, 1, 10, "0", "5000.00", "338299.50", model.TypeCredit, "UPI/POONAM M/TRANSFER"),
		txn("T5", 2026, 1, 24, "6000.00", "0", "332299.50", model.TypeDebit, "THAPAR INSTITUTE FEE"),
	}
}

func TestBuild_Summary(t *testing.T) {
	r, err := Build(sampleTxns(), nil, nil, DefaultOptions())
	require.NoError(t, err)

	s := r.Summary
	assert.Equal(t, "Jan 01, 2026 - Jan 24, 2026", s.Period)
	assert.Equal(t, 24, s.TotalDays)
	assert.True(t, s.OpeningBalance.Equal(dec("250000.00")), "opening = first balance - credit + debit")
	assert.True(t, s.ClosingBalance.Equal(dec("332299.50")))
	assert.True(t, s.TotalCredits.Equal(dec("90000.00")))
	assert.True(t, s.TotalDebits.Equal(dec("7700.50")))
	assert.True(t, s.NetChange.Equal(dec("82299.50")))
	assert.Equal(t, 5, s.Transactions)
	assert.Equal(t, 2, s.CreditTxns)
	assert.Equal(t, 3, s.DebitTxns)
	assert.True(t, s.AvgDailyCredit.Equal(dec("3750")), "90000 / 24 days")
	assert.True(t, s.AvgCreditAmount.Equal(dec("45000")))
}

func TestBuild_Aggregates(t *testing.T) {
	r, err := Build(sampleTxns(), nil, nil, DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, r.VerificationIssues, "sample sequence is arithmetically consistent")
	require.Len(t, r.Monthly, 1)
	assert.Equal(t, "2026-01", r.Monthly[0].Month)

	require.NotEmpty(t, r.IncomeSources)
	require.Len(t, r.LargeExpenses, 1)
	assert.Equal(t, "T5", r.LargeExpenses[0].TxnID)

	assert.Equal(t, 1, r.Patterns.SizeBands.Small)
	assert.Equal(t, 1, r.Patterns.SizeBands.Medium)
	assert.Equal(t, 1, r.Patterns.SizeBands.Large)
	assert.NotEmpty(t, r.RunID)
}

func TestBuild_EmptyDataset(t *testing.T) {
	_, err := Build(nil, nil, nil, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyDataset))
}

func TestBuild_TopExpensesCap(t *testing.T) {
	txns := []model.Transaction{
		txn("T0", 2026, 1, 1, "0", "0", "100000.00", model.TypeCredit, "SEED"),
	}
	for i := 1; i <= 5; i++ {
		txns = append(txns, txn(
			fmt.Sprintf("T%d", i), 2026, 1, i+1,
			fmt.Sprintf("%d000.00", i+5), "0", "0", model.TypeDebit, "BIG SPEND"))
	}

	opts := DefaultOptions()
	opts.TopExpenses = 2
	r, err := Build(txns, nil, nil, opts)
	require.NoError(t, err)
	require.Len(t, r.LargeExpenses, 2)
	assert.True(t, r.LargeExpenses[0].Amount.GreaterThan(r.LargeExpenses[1].Amount))
}

func TestBuild_IncludeDetail(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeDetail = true
	r, err := Build(sampleTxns(), nil, nil, opts)
	require.NoError(t, err)

	require.Len(t, r.AllTransactions, 5)
	zepto := r.AllTransactions[1]
	assert.Equal(t, "T2", zepto.TxnID)
	assert.Equal(t, "ZEPTO", zepto.Merchant)
	assert.Equal(t, "Groceries", zepto.Category)

	bare, err := Build(sampleTxns(), nil, nil, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, bare.AllTransactions)
}

func TestBuild_RowErrorsCarried(t *testing.T) {
	rowErrs := []ingest.RowError{
		{Line: 7, TxnID: "T9", Err: errors.New("parsing date \"31/31/2026\"")},
	}
	r, err := Build(sampleTxns(), rowErrs, nil, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, r.RowErrors, 1)
	assert.Equal(t, 7, r.RowErrors[0].Line)
	assert.Equal(t, "T9", r.RowErrors[0].TxnID)
	assert.Contains(t, r.RowErrors[0].Reason, "parsing date")
}

func TestWriteJSON_DecimalsUnquoted(t *testing.T) {
	r, err := Build(sampleTxns(), nil, nil, DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, r))

	assert.Contains(t, buf.String(), `"closing_balance": 332299.5`,
		"monetary values are bare decimal numbers")

	var round map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &round))
	assert.Contains(t, round, "summary")
	assert.Contains(t, round, "verification_issues")
	assert.Contains(t, round, "patterns")
	assert.Contains(t, round, "anomalies")
}

func TestWriteText_Sections(t *testing.T) {
	opts := DefaultOptions()
	r, err := Build(sampleTxns(), []ingest.RowError{{Line: 3, TxnID: "TX", Err: errors.New("bad")}}, nil, opts)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r))

	out := buf.String()
	for _, section := range []string{
		"FINANCIAL AUDIT REPORT", "SUMMARY", "BALANCE VERIFICATION",
		"MONTHLY BREAKDOWN", "INCOME SOURCES", "LARGE EXPENSES",
		"DAILY SPENDING PATTERN", "SPENDING BY CATEGORY",
		"TRANSACTION SIZES", "ANOMALIES", "SKIPPED ROWS",
	} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, "All balances are consistent")
}
