// Package filters drops whole tables and individual rows before they reach
// classification, so summary and footer lines never pollute the output.
package filters

import (
	"regexp"
	"strings"

	"ledgerlens/statement-extractor/internal/spec"
	"ledgerlens/statement-extractor/internal/textutils"
)

// SkipTable reports whether a table header satisfies any skip predicate:
// the header must contain every Contains entry and none of the NotContains
// entries, case-insensitively. Typical use is dropping deposit-only
// ledgers that lack a withdrawal column.
func SkipTable(header []string, predicates []spec.HeaderPredicate) bool {
	joined := textutils.Normalize(strings.Join(header, " "))
	for _, pred := range predicates {
		if matchesPredicate(joined, pred) {
			return true
		}
	}
	return false
}

func matchesPredicate(header string, pred spec.HeaderPredicate) bool {
	if len(pred.Contains) == 0 && len(pred.NotContains) == 0 {
		return false
	}
	for _, c := range pred.Contains {
		if !strings.Contains(header, textutils.Normalize(c)) {
			return false
		}
	}
	for _, nc := range pred.NotContains {
		if strings.Contains(header, textutils.Normalize(nc)) {
			return false
		}
	}
	return true
}

// RowFilter drops rows whose normalized description exactly matches a
// configured literal or matches any configured pattern.
type RowFilter struct {
	exact    map[string]struct{}
	patterns []*regexp.Regexp
}

// NewRowFilter compiles the row filter rules of a spec.
func NewRowFilter(rules spec.RowFilters) (*RowFilter, error) {
	patterns, err := textutils.CompilePatterns(rules.SkipDescriptionsPattern)
	if err != nil {
		return nil, err
	}

	exact := make(map[string]struct{}, len(rules.SkipDescriptionsExact))
	for _, lit := range rules.SkipDescriptionsExact {
		exact[textutils.Normalize(lit)] = struct{}{}
	}
	return &RowFilter{exact: exact, patterns: patterns}, nil
}

// Skip reports whether a description should be dropped.
func (f *RowFilter) Skip(description string) bool {
	normalized := textutils.Normalize(description)
	if _, ok := f.exact[normalized]; ok {
		return true
	}
	for _, re := range f.patterns {
		if re.MatchString(normalized) {
			return true
		}
	}
	return false
}
