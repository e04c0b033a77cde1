package dates

import (
	"testing"
	"time"

	"ledgerlens/statement-extractor/internal/spec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T, rules spec.DateRules) *Parser {
	t.Helper()
	p, err := New(rules)
	require.NoError(t, err)
	return p
}

func TestParse_FormatOrder(t *testing.T) {
	p := newParser(t, spec.DateRules{Formats: []string{"01/02/2006", "2006-01-02"}})

	got, err := p.Parse("01/15/2024", Reference{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = p.Parse("2024-02-29", Reference{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	_, err = p.Parse("15.01.2024", Reference{})
	assert.Error(t, err)
}

func TestParse_YearInference(t *testing.T) {
	p := newParser(t, spec.DateRules{
		Formats:   []string{"01/02"},
		InferYear: spec.InferYear{Enabled: true, Source: "statement_period"},
	})

	got, err := p.Parse("01/15", Reference{Year: 2024, Month: time.January})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParse_YearInferenceDisabled(t *testing.T) {
	p := newParser(t, spec.DateRules{Formats: []string{"01/02"}})

	_, err := p.Parse("01/15", Reference{Year: 2024, Month: time.January})
	assert.Error(t, err)
}

func TestParse_YearBoundaryCorrection(t *testing.T) {
	p := newParser(t, spec.DateRules{
		Formats:      []string{"01/02"},
		InferYear:    spec.InferYear{Enabled: true, Source: "statement_period"},
		YearBoundary: spec.YearBoundary{Enabled: true, MonthThreshold: 6},
	})
	// January statement containing a December transaction.
	ref := Reference{Year: 2024, Month: time.January}

	got, err := p.Parse("12/28", ref)
	require.NoError(t, err)
	assert.Equal(t, 2023, got.Year(), "December entry on a January statement rolls back")

	got, err = p.Parse("01/15", ref)
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())
}

func TestCorrectYearBoundary_Idempotent(t *testing.T) {
	p := newParser(t, spec.DateRules{
		Formats:      []string{"01/02"},
		InferYear:    spec.InferYear{Enabled: true},
		YearBoundary: spec.YearBoundary{Enabled: true, MonthThreshold: 6},
	})
	ref := Reference{Year: 2024, Month: time.January}

	once := p.correctYearBoundary(time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC), ref)
	assert.Equal(t, 2023, once.Year())

	twice := p.correctYearBoundary(once, ref)
	assert.Equal(t, once, twice, "already-corrected date must not move again")
}

func TestReference_Sources(t *testing.T) {
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	text := "Statement for January 2024\nAccount ending 1234"

	periodParser := newParser(t, spec.DateRules{
		Formats:   []string{"01/02"},
		InferYear: spec.InferYear{Enabled: true, Source: "statement_period"},
	})
	ref := periodParser.Reference(&end, text)
	assert.Equal(t, Reference{Year: 2024, Month: time.January}, ref)

	textParser := newParser(t, spec.DateRules{
		Formats:   []string{"01/02"},
		InferYear: spec.InferYear{Enabled: true, Source: "document_text"},
	})
	ref = textParser.Reference(nil, text)
	assert.Equal(t, Reference{Year: 2024, Month: time.January}, ref)

	// Fallback order: period first, then text.
	fallback := newParser(t, spec.DateRules{
		Formats:   []string{"01/02"},
		InferYear: spec.InferYear{Enabled: true},
	})
	ref = fallback.Reference(nil, "Period ending December 2023")
	assert.Equal(t, Reference{Year: 2023, Month: time.December}, ref)
}

func TestReference_CustomTextPatterns(t *testing.T) {
	// Custom patterns may capture the month numerically.
	numeric := newParser(t, spec.DateRules{
		Formats:   []string{"01/02"},
		InferYear: spec.InferYear{Enabled: true, Source: "document_text", TextPattern: `(\d{2})/(\d{4})`},
	})
	ref := numeric.Reference(nil, "Statement for 05/2024")
	assert.Equal(t, Reference{Year: 2024, Month: time.May}, ref)

	// A capture too short to name a month resolves without a month, not
	// with a crash.
	short := newParser(t, spec.DateRules{
		Formats:   []string{"01/02"},
		InferYear: spec.InferYear{Enabled: true, Source: "document_text", TextPattern: `(xx) (\d{4})`},
	})
	ref = short.Reference(nil, "issued xx 2024")
	assert.Equal(t, Reference{Year: 2024, Month: time.Month(0)}, ref)

	// Out-of-range numeric captures are unknown months.
	ref = numeric.Reference(nil, "Statement for 13/2024")
	assert.Equal(t, Reference{Year: 2024, Month: time.Month(0)}, ref)
}

func TestLayoutHasYear(t *testing.T) {
	assert.True(t, LayoutHasYear("01/02/2006"))
	assert.True(t, LayoutHasYear("01/02/06"))
	assert.False(t, LayoutHasYear("01/02"))
	assert.False(t, LayoutHasYear("2 Jan"))
}
