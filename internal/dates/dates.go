// Package dates parses statement date cells against an ordered list of Go
// reference layouts and infers missing years from statement metadata or
// document text.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ledgerlens/statement-extractor/internal/spec"
)

// defaultMonthThreshold is used when year_boundary is enabled without an
// explicit month_threshold.
const defaultMonthThreshold = 6

// defaultTextPattern finds a month-name / 4-digit-year pair in document
// header text, e.g. "January 2024" or "Dec 31, 2023".
const defaultTextPattern = `(?i)(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+(?:\d{1,2},?\s+)?(\d{4})`

// Reference is the year/month context used to complete dates whose layout
// omits the year. Zero values mean unknown.
type Reference struct {
	Year  int
	Month time.Month
}

// Known reports whether the reference carries a usable year.
func (r Reference) Known() bool { return r.Year > 0 }

// Parser parses date cells for one extraction spec.
type Parser struct {
	formats  []string
	infer    spec.InferYear
	boundary spec.YearBoundary
	textRe   *regexp.Regexp
}

// New compiles the date rules of a spec. Rules are assumed to have passed
// spec validation; a broken text pattern still surfaces as an error here.
func New(rules spec.DateRules) (*Parser, error) {
	p := &Parser{
		formats:  rules.Formats,
		infer:    rules.InferYear,
		boundary: rules.YearBoundary,
	}
	pattern := rules.InferYear.TextPattern
	if pattern == "" {
		pattern = defaultTextPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("infer_year.text_pattern: %w", err)
	}
	p.textRe = re
	return p, nil
}

// LayoutHasYear reports whether a Go reference layout carries a year
// component.
func LayoutHasYear(layout string) bool {
	return strings.Contains(layout, "2006") || strings.Contains(layout, "06")
}

// Reference derives the year-inference context. Source selection follows
// the spec: "statement_period" reads the already-extracted period end,
// "document_text" scans the document text; an empty source tries the
// period first and falls back to the text.
func (p *Parser) Reference(periodEnd *time.Time, docText string) Reference {
	fromPeriod := func() Reference {
		if periodEnd == nil {
			return Reference{}
		}
		return Reference{Year: periodEnd.Year(), Month: periodEnd.Month()}
	}
	fromText := func() Reference {
		m := p.textRe.FindStringSubmatch(docText)
		if len(m) < 3 {
			return Reference{}
		}
		month := monthFromName(m[1])
		var year int
		if _, err := fmt.Sscanf(m[2], "%d", &year); err != nil {
			return Reference{}
		}
		return Reference{Year: year, Month: month}
	}

	switch p.infer.Source {
	case "statement_period":
		return fromPeriod()
	case "document_text":
		return fromText()
	default:
		if ref := fromPeriod(); ref.Known() {
			return ref
		}
		return fromText()
	}
}

// Parse tries each configured layout in order; first success wins. When
// the winning layout omits the year, the reference year is applied along
// with year-boundary correction. An unresolvable cell returns an error;
// the caller records a row rejection and moves on.
func (p *Parser) Parse(cell string, ref Reference) (time.Time, error) {
	cleaned := strings.TrimSpace(cell)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date cell")
	}

	for _, layout := range p.formats {
		t, err := time.Parse(layout, cleaned)
		if err != nil {
			continue
		}
		if LayoutHasYear(layout) {
			return t, nil
		}
		if !p.infer.Enabled {
			return time.Time{}, fmt.Errorf("layout %q omits year and infer_year is disabled", layout)
		}
		if !ref.Known() {
			return time.Time{}, fmt.Errorf("cannot infer year for %q: no reference year", cell)
		}
		t = time.Date(ref.Year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return p.correctYearBoundary(t, ref), nil
	}
	return time.Time{}, fmt.Errorf("no configured format matches date %q", cell)
}

// correctYearBoundary rolls the year back by one when the transaction
// month runs ahead of the statement month by more than the threshold. The
// year guard makes the correction idempotent: an already-corrected date no
// longer carries the reference year and passes through unchanged.
func (p *Parser) correctYearBoundary(t time.Time, ref Reference) time.Time {
	if !p.boundary.Enabled || ref.Month == 0 || t.Year() != ref.Year {
		return t
	}
	threshold := p.boundary.MonthThreshold
	if threshold <= 0 {
		threshold = defaultMonthThreshold
	}
	if int(t.Month())-int(ref.Month) > threshold {
		return t.AddDate(-1, 0, 0)
	}
	return t
}

// monthFromName resolves a captured month reference. Custom text patterns
// may capture numeric months, so "05" is as valid as "May"; anything
// unrecognized is reported as unknown rather than guessed.
func monthFromName(name string) time.Month {
	if n, err := strconv.Atoi(name); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n)
		}
		return 0
	}
	if len(name) < 3 {
		return 0
	}
	switch strings.ToLower(name[:3]) {
	case "jan":
		return time.January
	case "feb":
		return time.February
	case "mar":
		return time.March
	case "apr":
		return time.April
	case "may":
		return time.May
	case "jun":
		return time.June
	case "jul":
		return time.July
	case "aug":
		return time.August
	case "sep":
		return time.September
	case "oct":
		return time.October
	case "nov":
		return time.November
	case "dec":
		return time.December
	}
	return 0
}
