package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// Monetary values serialize as bare decimal numbers rendered from their
// exact text form. Quoted strings would break downstream numeric
// consumers; float64 round-trips would break the audit trail.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// WriteJSON encodes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
