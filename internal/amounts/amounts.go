// Package amounts derives a row's monetary amount from resolved columns,
// following the spec's declared candidate priority.
package amounts

import (
	"github.com/shopspring/decimal"

	"ledgerlens/statement-extractor/internal/columns"
	"ledgerlens/statement-extractor/internal/models"
	"ledgerlens/statement-extractor/internal/spec"
)

// Source identifies which column family yielded the amount. The sign
// classifier's columns method keys off this.
type Source string

const (
	SourceAmount Source = "amount"
	SourceDebit  Source = "debit"
	SourceCredit Source = "credit"
	SourceNone   Source = ""
)

var sourceRoles = map[string]columns.Role{
	"amount": columns.RoleAmount,
	"debit":  columns.RoleDebit,
	"credit": columns.RoleCredit,
}

// Resolution is the outcome of amount resolution for one row. Negative
// preserves the raw cell's sign even after absolute-value normalization,
// so the sign classifier can still key off it.
type Resolution struct {
	Amount   decimal.Decimal
	Source   Source
	Negative bool
}

// Resolve evaluates the configured candidate fields in priority order
// against one row and returns the first non-empty parseable value,
// normalized to absolute value when so configured. ok is false when no
// candidate yields a number; the caller drops the row, not the document.
func Resolve(table models.Table, row []string, resolved columns.Resolved, res spec.AmountResolution) (Resolution, bool) {
	for _, field := range res.EffectivePriority() {
		role, known := sourceRoles[field]
		if !known {
			continue
		}
		idx, found := resolved.Index(role)
		if !found {
			continue
		}
		cell := table.Cell(row, idx)
		dec, err := models.ParseAmount(cell)
		if err != nil {
			continue
		}
		negative := dec.IsNegative()
		if res.Absolute() {
			dec = dec.Abs()
		}
		return Resolution{Amount: dec, Source: Source(field), Negative: negative}, true
	}
	return Resolution{Amount: decimal.Zero, Source: SourceNone}, false
}
