// Package report assembles the audit's final structured result from the
// normalized, classified, verified record list and the aggregation
// passes. Assembly only: every number here is either copied from a stage
// output or a light derived field.
package report

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/om13rajpal/expense-tracker/internal/analyze"
	"github.com/om13rajpal/expense-tracker/internal/classify"
	"github.com/om13rajpal/expense-tracker/internal/ingest"
	"github.com/om13rajpal/expense-tracker/internal/model"
	"github.com/om13rajpal/expense-tracker/internal/verify"
)

// ErrEmptyDataset is returned when no valid transactions survive
// normalization. Period bounds and the opening-balance seed both need a
// first record, so there is nothing to report on.
var ErrEmptyDataset = errors.New("no valid transactions in dataset")

// Options control one report build.
type Options struct {
	// Source labels where the statement came from, e.g. the input path.
	Source string
	// Tolerance for running-balance verification.
	Tolerance decimal.Decimal
	// Thresholds for the analysis passes.
	Thresholds analyze.Thresholds
	// TopExpenses caps the large-expense list. Zero or negative means
	// uncapped.
	TopExpenses int
	// IncludeDetail carries the full classified transaction list in the
	// report.
	IncludeDetail bool
}

// DefaultOptions returns the stock build options.
func DefaultOptions() Options {
	return Options{
		Tolerance:   verify.DefaultTolerance,
		Thresholds:  analyze.DefaultThresholds(),
		TopExpenses: 20,
	}
}

// Summary is the period-level rollup.
type Summary struct {
	Period          string          `json:"period"` // "Jan 01, 2026 - Jan 24, 2026"
	TotalDays       int             `json:"total_days"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	ClosingBalance  decimal.Decimal `json:"closing_balance"`
	TotalCredits    decimal.Decimal `json:"total_credits"`
	TotalDebits     decimal.Decimal `json:"total_debits"`
	NetChange       decimal.Decimal `json:"net_change"`
	Transactions    int             `json:"total_transactions"`
	CreditTxns      int             `json:"total_credit_txns"`
	DebitTxns       int             `json:"total_debit_txns"`
	AvgDailyCredit  decimal.Decimal `json:"avg_daily_credit"`
	AvgDailyDebit   decimal.Decimal `json:"avg_daily_debit"`
	AvgCreditAmount decimal.Decimal `json:"avg_credit_amount"`
	AvgDebitAmount  decimal.Decimal `json:"avg_debit_amount"`
}

// TransactionDetail is one classified transaction in the optional
// per-transaction section.
type TransactionDetail struct {
	TxnID       string          `json:"txn_id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	Type        model.TxnType   `json:"type"`
	Category    string          `json:"category"`
	Merchant    string          `json:"merchant"`
}

// RowError is one skipped input row, carried into the report so partial
// failures stay visible in the audit trail.
type RowError struct {
	Line   int    `json:"line"`
	TxnID  string `json:"txn_id"`
	Reason string `json:"reason"`
}

// Report is the complete audit result.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source,omitempty"`

	Summary            Summary                  `json:"summary"`
	VerificationIssues []verify.Issue           `json:"verification_issues"`
	Monthly            []analyze.MonthlySummary `json:"monthly"`
	IncomeSources      []analyze.MerchantFlow   `json:"income_sources"`
	LargeExpenses      []analyze.LargeExpense   `json:"large_expenses"`
	RecurringMerchants []analyze.MerchantFlow   `json:"recurring_merchants"`
	DayRanges          []analyze.DayRange       `json:"day_ranges"`
	Patterns           analyze.Patterns         `json:"patterns"`
	Anomalies          []analyze.Anomaly        `json:"anomalies"`
	RowErrors          []RowError               `json:"row_errors,omitempty"`
	AllTransactions    []TransactionDetail      `json:"all_transactions,omitempty"`
}

// Build runs classification, verification, and every aggregation pass
// over the normalized transactions and assembles the result. The passes
// are independent reductions over the shared classified slice, so they
// fan out concurrently; each writes only its own report field.
func Build(txns []model.Transaction, rowErrs []ingest.RowError, classifier *classify.Classifier, opts Options) (*Report, error) {
	if len(txns) == 0 {
		return nil, ErrEmptyDataset
	}
	if classifier == nil {
		classifier = classify.New(nil)
	}

	classified := classifier.All(txns)

	r := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Source:      opts.Source,
	}

	var g errgroup.Group
	g.Go(func() error {
		res := verify.Run(txns, opts.Tolerance)
		r.VerificationIssues = res.Issues
		return nil
	})
	g.Go(func() error {
		r.Monthly = analyze.Monthly(classified)
		return nil
	})
	g.Go(func() error {
		r.IncomeSources = analyze.IncomeSources(classified)
		return nil
	})
	g.Go(func() error {
		large := analyze.LargeExpenses(classified, opts.Thresholds.LargeExpense)
		if opts.TopExpenses > 0 && len(large) > opts.TopExpenses {
			large = large[:opts.TopExpenses]
		}
		r.LargeExpenses = large
		return nil
	})
	g.Go(func() error {
		r.RecurringMerchants = analyze.RecurringMerchants(classified, opts.Thresholds.RecurringMinCount)
		return nil
	})
	g.Go(func() error {
		r.DayRanges = analyze.DayRanges(classified)
		return nil
	})
	g.Go(func() error {
		r.Patterns = analyze.BuildPatterns(classified)
		return nil
	})
	g.Go(func() error {
		r.Anomalies = analyze.DetectAnomalies(classified, opts.Thresholds.AnomalyMultiplier)
		return nil
	})
	g.Go(func() error {
		r.Summary = buildSummary(txns)
		return nil
	})
	_ = g.Wait() // passes never fail

	for _, re := range rowErrs {
		r.RowErrors = append(r.RowErrors, RowError{Line: re.Line, TxnID: re.TxnID, Reason: re.Err.Error()})
	}

	if opts.IncludeDetail {
		r.AllTransactions = detail(classified)
	}
	return r, nil
}

func buildSummary(txns []model.Transaction) Summary {
	first, last := txns[0], txns[len(txns)-1]

	credits := decimal.Zero
	debits := decimal.Zero
	creditTxns := 0
	debitTxns := 0
	for _, txn := range txns {
		credits = credits.Add(txn.Credit)
		debits = debits.Add(txn.Debit)
		if txn.Type == model.TypeCredit {
			creditTxns++
		} else {
			debitTxns++
		}
	}

	opening := first.PriorBalance()
	closing := last.Balance
	days := int(last.ValueDate.Sub(first.ValueDate).Hours()/24) + 1

	s := Summary{
		Period: first.ValueDate.Format("Jan 02, 2006") + " - " +
			last.ValueDate.Format("Jan 02, 2006"),
		TotalDays:      days,
		OpeningBalance: opening,
		ClosingBalance: closing,
		TotalCredits:   credits,
		TotalDebits:    debits,
		NetChange:      closing.Sub(opening),
		Transactions:   len(txns),
		CreditTxns:     creditTxns,
		DebitTxns:      debitTxns,
	}

	daysDec := decimal.NewFromInt(int64(days))
	s.AvgDailyCredit = credits.Div(daysDec)
	s.AvgDailyDebit = debits.Div(daysDec)
	if creditTxns > 0 {
		s.AvgCreditAmount = credits.Div(decimal.NewFromInt(int64(creditTxns)))
	}
	if debitTxns > 0 {
		s.AvgDebitAmount = debits.Div(decimal.NewFromInt(int64(debitTxns)))
	}
	return s
}

func detail(classified []model.ClassifiedTransaction) []TransactionDetail {
	out := make([]TransactionDetail, len(classified))
	for i, txn := range classified {
		out[i] = TransactionDetail{
			TxnID:       txn.ID,
			Date:        txn.ValueDate.Format("2006-01-02"),
			Description: txn.Description,
			Debit:       txn.Debit,
			Credit:      txn.Credit,
			Balance:     txn.Balance,
			Type:        txn.Type,
			Category:    txn.Category,
			Merchant:    txn.Merchant,
		}
	}
	return out
}
