package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/om13rajpal/expense-tracker/internal/analyze"
)

const ruleWidth = 72

// WriteText renders the report as a sectioned plain-text audit document.
func WriteText(w io.Writer, r *Report) error {
	p := &printer{w: w}

	p.rule("=")
	p.line("FINANCIAL AUDIT REPORT")
	if r.Source != "" {
		p.line("Source: %s", r.Source)
	}
	p.line("Run: %s (%s)", r.RunID, r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	p.rule("=")

	p.section("SUMMARY")
	s := r.Summary
	p.line("Period: %s (%d days)", s.Period, s.TotalDays)
	p.line("Opening Balance:  %s", s.OpeningBalance.StringFixed(2))
	p.line("Closing Balance:  %s", s.ClosingBalance.StringFixed(2))
	p.line("Total Credits:    %s (%d transactions)", s.TotalCredits.StringFixed(2), s.CreditTxns)
	p.line("Total Debits:     %s (%d transactions)", s.TotalDebits.StringFixed(2), s.DebitTxns)
	p.line("Net Change:       %s", s.NetChange.StringFixed(2))
	p.line("Avg Daily Credit: %s", s.AvgDailyCredit.StringFixed(2))
	p.line("Avg Daily Debit:  %s", s.AvgDailyDebit.StringFixed(2))

	p.section("BALANCE VERIFICATION")
	if len(r.VerificationIssues) == 0 {
		p.line("No balance discrepancies detected. All balances are consistent.")
	} else {
		p.line("Found %d balance discrepancies:", len(r.VerificationIssues))
		for _, issue := range r.VerificationIssues {
			p.line("  %s [%s]: expected %s, actual %s, diff %s",
				issue.Date.Format("Jan 02"), issue.TxnID,
				issue.Expected.StringFixed(2), issue.Actual.StringFixed(2),
				issue.Difference.StringFixed(2))
		}
	}

	p.section("MONTHLY BREAKDOWN")
	for _, m := range r.Monthly {
		p.line("%s:", m.Month)
		p.line("  Opening Balance: %s", m.OpeningBalance.StringFixed(2))
		p.line("  Closing Balance: %s", m.ClosingBalance.StringFixed(2))
		p.line("  Total Credits:   %s", m.TotalCredits.StringFixed(2))
		p.line("  Total Debits:    %s", m.TotalDebits.StringFixed(2))
		p.line("  Net Change:      %s", m.NetChange.StringFixed(2))
		p.line("  Growth Rate:     %s%%", m.GrowthRate.StringFixed(2))
		p.line("  Transactions:    %d", m.Count)
	}

	p.section("INCOME SOURCES")
	for _, src := range r.IncomeSources {
		p.line("%s: %s over %d transactions (avg %s)",
			src.Merchant, src.Total.StringFixed(2), src.Count, src.Average.StringFixed(2))
	}

	p.section("LARGE EXPENSES")
	for _, e := range r.LargeExpenses {
		p.line("%s: %s - %s", e.Date, e.Amount.StringFixed(2), clipText(e.Description, 70))
	}

	p.section("RECURRING MERCHANTS")
	for _, m := range r.RecurringMerchants {
		p.line("%s: %d transactions, total %s (avg %s)",
			m.Merchant, m.Count, m.Total.StringFixed(2), m.Average.StringFixed(2))
	}

	p.section("DAILY SPENDING PATTERN")
	for _, dr := range r.DayRanges {
		p.line("%s: %s over %d transactions", dr.Label, dr.TotalDebits.StringFixed(2), dr.Count)
	}

	p.section("SPENDING BY CATEGORY")
	for _, cat := range sortedKeys(r.Patterns.CategoryTotals) {
		p.line("%s: %s (%d transactions)",
			cat, r.Patterns.CategoryTotals[cat].StringFixed(2), r.Patterns.CategoryCounts[cat])
	}

	p.section("TRANSACTION SIZES")
	b := r.Patterns.SizeBands
	p.line("small (<500): %d", b.Small)
	p.line("medium (500-5000): %d", b.Medium)
	p.line("large (5000-50000): %d", b.Large)
	p.line("very large (>=50000): %d", b.VeryLarge)

	p.section("ANOMALIES")
	if len(r.Anomalies) == 0 {
		p.line("None detected.")
	}
	for _, a := range r.Anomalies {
		switch a.Kind {
		case analyze.AnomalyLargeTransaction:
			p.line("Large transaction on %s: %s (%s) - %s",
				a.Date, a.Amount.StringFixed(2), a.Merchant, a.Description)
		case analyze.AnomalyDuplicateAmount:
			p.line("Duplicate amount on %s: %s x%d", a.Date, a.Amount.StringFixed(2), a.Count)
			for _, desc := range a.Descriptions {
				p.line("  - %s", desc)
			}
		}
	}

	if len(r.RowErrors) > 0 {
		p.section("SKIPPED ROWS")
		for _, re := range r.RowErrors {
			p.line("row %d [%s]: %s", re.Line, re.TxnID, re.Reason)
		}
	}

	p.rule("=")
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) rule(ch string) {
	p.line("%s", strings.Repeat(ch, ruleWidth))
}

func (p *printer) section(title string) {
	p.line("")
	p.line("%s", title)
	p.rule("-")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func clipText(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
