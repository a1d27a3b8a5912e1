package ingest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/om13rajpal/expense-tracker/internal/model"
)

// Value dates come day-first from the bank; some exports flip to
// month-first mid-file, so both layouts are accepted in that order.
const (
	dateLayoutDayFirst   = "02/01/2006"
	dateLayoutMonthFirst = "01/02/2006"
)

// RowError reports one skipped row. Rows are skipped, never fatal: the
// rest of the batch proceeds.
type RowError struct {
	Line  int
	TxnID string
	Err   error
}

func (e RowError) Error() string {
	id := e.TxnID
	if id == "" {
		id = "unknown"
	}
	return fmt.Sprintf("row %d [%s]: %v", e.Line, id, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Normalize converts raw rows into transactions: dates parsed, empty
// amounts zeroed, everything on exact decimals. Rows that fail to parse
// are dropped and reported; the survivors are returned sorted by value
// date ascending, stable on ties.
func Normalize(rows []RawRow) ([]model.Transaction, []RowError) {
	var (
		txns []model.Transaction
		errs []RowError
	)
	for _, row := range rows {
		txn, err := normalizeRow(row)
		if err != nil {
			errs = append(errs, RowError{Line: row.Line, TxnID: row.TxnID, Err: err})
			continue
		}
		txns = append(txns, txn)
	}

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].ValueDate.Before(txns[j].ValueDate)
	})
	return txns, errs
}

func normalizeRow(row RawRow) (model.Transaction, error) {
	if strings.TrimSpace(row.TxnID) == "" {
		return model.Transaction{}, fmt.Errorf("missing txn_id")
	}

	date, err := parseValueDate(row.ValueDate)
	if err != nil {
		return model.Transaction{}, err
	}

	debit, err := parseAmount(row.Debit)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing debit %q: %w", row.Debit, err)
	}

	credit, err := parseAmount(row.Credit)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing credit %q: %w", row.Credit, err)
	}

	if strings.TrimSpace(row.Balance) == "" {
		return model.Transaction{}, fmt.Errorf("missing balance")
	}
	balance, err := decimal.NewFromString(strings.TrimSpace(row.Balance))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing balance %q: %w", row.Balance, err)
	}

	return model.Transaction{
		ID:          row.TxnID,
		ValueDate:   date,
		PostDate:    row.PostDate,
		Description: row.Description,
		Reference:   row.ReferenceNo,
		Debit:       debit,
		Credit:      credit,
		Balance:     balance,
		Type:        model.TxnType(strings.ToLower(strings.TrimSpace(row.TxnType))),
		Source:      row.AccountSource,
		ImportedAt:  row.ImportedAt,
		Hash:        row.Hash,
	}, nil
}

// parseValueDate tries day-first, then month-first.
func parseValueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayoutDayFirst, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayoutMonthFirst, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: not %s or %s", s, dateLayoutDayFirst, dateLayoutMonthFirst)
	}
	return t, nil
}

// parseAmount treats empty text as exact zero, per the export convention
// of leaving the unused side blank.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
