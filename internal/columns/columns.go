// Package columns maps table headers onto canonical column roles using the
// alias groups declared in an extraction spec.
package columns

import (
	"strings"

	"ledgerlens/statement-extractor/internal/spec"
)

// Role is one of the fixed semantic column types every table is mapped
// onto before further processing.
type Role string

const (
	RoleDate        Role = "date"
	RoleDescription Role = "description"
	RoleAmount      Role = "amount"
	RoleDebit       Role = "debit"
	RoleCredit      Role = "credit"
	RoleType        Role = "type"
)

// Resolved maps canonical roles to physical column indexes for one table.
// Built fresh per table and never persisted.
type Resolved map[Role]int

// Index returns the column index for a role and whether it resolved.
func (r Resolved) Index(role Role) (int, bool) {
	i, ok := r[role]
	return i, ok
}

// Usable reports whether the table can feed extraction: date, description,
// and either a single amount column or the debit/credit pair.
func (r Resolved) Usable() bool {
	if _, ok := r[RoleDate]; !ok {
		return false
	}
	if _, ok := r[RoleDescription]; !ok {
		return false
	}
	if _, ok := r[RoleAmount]; ok {
		return true
	}
	_, debit := r[RoleDebit]
	_, credit := r[RoleCredit]
	return debit && credit
}

// Resolve matches a header row against the spec's alias groups. Aliases
// match case-insensitively and may be substrings of the header cell; the
// first matching alias in declared order wins, and within one alias the
// first matching header column wins. Unresolvable roles are simply absent
// from the result.
func Resolve(header []string, cols spec.Columns) Resolved {
	lowered := make([]string, len(header))
	for i, h := range header {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	resolved := make(Resolved)
	assign := func(role Role, cs *spec.ColumnSpec) {
		if cs == nil {
			return
		}
		for _, alias := range cs.Aliases {
			needle := strings.ToLower(alias)
			for i, cell := range lowered {
				if strings.Contains(cell, needle) {
					resolved[role] = i
					return
				}
			}
		}
	}

	assign(RoleDate, cols.Date)
	assign(RoleDescription, cols.Description)
	assign(RoleAmount, cols.Amount)
	assign(RoleDebit, cols.Debit)
	assign(RoleCredit, cols.Credit)
	assign(RoleType, cols.Type)
	return resolved
}
