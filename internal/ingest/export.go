package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
)

// BankExportParser parses the bank audit-export CSV format: a header row
// naming the columns, then one row per transaction. Column order is free;
// columns are resolved by name.
type BankExportParser struct{}

// Column names in the export header.
const (
	colTxnID         = "txn_id"
	colValueDate     = "value_date"
	colPostDate      = "post_date"
	colDescription   = "description"
	colReferenceNo   = "reference_no"
	colDebit         = "debit"
	colCredit        = "credit"
	colBalance       = "balance"
	colTxnType       = "txn_type"
	colAccountSource = "account_source"
	colImportedAt    = "imported_at"
	colHash          = "hash"
)

// requiredColumns must be present in the header; the rest are optional
// and default to empty strings.
var requiredColumns = []string{
	colTxnID, colValueDate, colDescription,
	colDebit, colCredit, colBalance, colTxnType,
}

// Format returns the parser name.
func (p *BankExportParser) Format() string { return "bank-export" }

// Parse reads a bank export CSV and returns its rows as raw named fields.
// Per-row value errors are not detected here; Normalize owns those.
func (p *BankExportParser) Parse(r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading export CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		idx[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("export header missing column %q", name)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var rows []RawRow
	for i, rec := range records[1:] {
		rows = append(rows, RawRow{
			Line:          i + 2,
			TxnID:         field(rec, colTxnID),
			ValueDate:     field(rec, colValueDate),
			PostDate:      field(rec, colPostDate),
			Description:   field(rec, colDescription),
			ReferenceNo:   field(rec, colReferenceNo),
			Debit:         field(rec, colDebit),
			Credit:        field(rec, colCredit),
			Balance:       field(rec, colBalance),
			TxnType:       field(rec, colTxnType),
			AccountSource: field(rec, colAccountSource),
			ImportedAt:    field(rec, colImportedAt),
			Hash:          field(rec, colHash),
		})
	}
	return rows, nil
}
