package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnType is the transaction direction as reported by the bank export.
type TxnType string

const (
	TypeCredit TxnType = "credit"
	TypeDebit  TxnType = "debit"
)

// Transaction is one normalized bank-statement row. Amounts are exact
// decimals; Balance is the account balance after this transaction was
// applied. Type is trusted as exported, never re-derived from the
// debit/credit columns.
type Transaction struct {
	ID          string
	ValueDate   time.Time // midnight UTC, authoritative for ordering
	PostDate    string    // carried through from the export, not parsed
	Description string
	Reference   string
	Debit       decimal.Decimal // zero if credit side
	Credit      decimal.Decimal // zero if debit side
	Balance     decimal.Decimal
	Type        TxnType
	Source      string // account_source column
	ImportedAt  string
	Hash        string
}

// PriorBalance returns the balance implied immediately before this
// transaction: Balance - Credit + Debit. It seeds the verifier's running
// balance and the monthly opening balances.
func (t Transaction) PriorBalance() decimal.Decimal {
	return t.Balance.Sub(t.Credit).Add(t.Debit)
}

// Amount returns the side matching Type: Debit for debit rows, Credit
// otherwise.
func (t Transaction) Amount() decimal.Decimal {
	if t.Type == TypeDebit {
		return t.Debit
	}
	return t.Credit
}

// Month returns the calendar-month grouping key, e.g. "2026-01".
func (t Transaction) Month() string {
	return t.ValueDate.Format("2006-01")
}

// Classification is the merchant/category assignment for one transaction.
// Exactly one merchant and one category; unmatched descriptions get the
// classifier's OTHER sentinel.
type Classification struct {
	Merchant string
	Category string
}

// ClassifiedTransaction joins a transaction with its classification.
// This is the read-only input shared by all aggregation passes.
type ClassifiedTransaction struct {
	Transaction
	Merchant string
	Category string
}
