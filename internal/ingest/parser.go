package ingest

import (
	"io"
	"strings"
)

// RawRow is one statement row as named text fields, exactly as exported.
// All parsing and validation happens in Normalize, not here.
type RawRow struct {
	Line          int // 1-based line number in the source file
	TxnID         string
	ValueDate     string
	PostDate      string
	Description   string
	ReferenceNo   string
	Debit         string
	Credit        string
	Balance       string
	TxnType       string
	AccountSource string
	ImportedAt    string
	Hash          string
}

// Parser converts a statement export into raw rows.
type Parser interface {
	Parse(r io.Reader) ([]RawRow, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&BankExportParser{})
	return r
}
