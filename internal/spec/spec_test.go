package spec

import (
	"errors"
	"strings"
	"testing"

	"ledgerlens/statement-extractor/internal/extracterror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullSpecYAML = `name: chase-visa
institution: Chase
account_type: credit_card
columns:
  date:
    aliases: ["transaction date", "date"]
  description:
    aliases: ["description", "merchant"]
  amount:
    aliases: ["amount"]
amount_resolution:
  priority: ["amount"]
  take_absolute: true
statement_period:
  patterns:
    - regex: '(\d{2}/\d{2}/\d{4})\s*-\s*(\d{2}/\d{2}/\d{4})'
      start_group: 1
      end_group: 2
      format: "01/02/2006"
dates:
  formats: ["01/02", "01/02/2006"]
  infer_year:
    enabled: true
    source: statement_period
  year_boundary:
    enabled: true
    month_threshold: 6
sign_classification:
  method: keywords
  credit_keywords: ["payment", "refund"]
  interest_keywords: ["interest charge"]
row_filters:
  skip_descriptions_exact: ["total", "previous balance"]
  spend_only: true
multiline:
  enabled: true
  skip_append_if_summary: true
merchant_cleanup:
  remove_patterns: ['(?i)continued on next page']
  trim: true
account_name_inference:
  patterns:
    - pattern: 'Card ending in (\d{4})'
      name: "Chase Visa $1"
  default: "Chase Visa"
detection:
  keywords_all: ["chase"]
  table_required: true
`

func TestLoad_FullSpec(t *testing.T) {
	s, err := Load(strings.NewReader(fullSpecYAML), "chase.yaml")
	require.NoError(t, err)

	assert.Equal(t, "chase-visa", s.Name)
	assert.Equal(t, "Chase", s.Institution)
	assert.Equal(t, []string{"transaction date", "date"}, s.Columns.Date.Aliases)
	assert.Equal(t, []string{"amount"}, s.AmountResolution.EffectivePriority())
	assert.True(t, s.AmountResolution.Absolute())
	assert.True(t, s.Dates.InferYear.Enabled)
	assert.Equal(t, 6, s.Dates.YearBoundary.MonthThreshold)
	assert.True(t, s.RowFilters.SpendOnly)
	assert.Equal(t, "Chase Visa", s.AccountNameInference.Default)
}

func TestLoad_RoundTrip(t *testing.T) {
	s, err := Load(strings.NewReader(fullSpecYAML), "chase.yaml")
	require.NoError(t, err)

	out, err := Marshal(s)
	require.NoError(t, err)

	reloaded, err := Load(strings.NewReader(string(out)), "chase.yaml")
	require.NoError(t, err)
	assert.Equal(t, s, reloaded)
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	s := &ExtractionSpec{
		SignClassification: SignRules{Method: "magic"},
		RowFilters:         RowFilters{SkipDescriptionsPattern: []string{"("}},
	}

	err := Validate(s, "broken.yaml")
	require.Error(t, err)

	var verr *extracterror.SpecValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "broken.yaml", verr.File)

	joined := strings.Join(verr.Problems, "\n")
	assert.Contains(t, joined, "name is required")
	assert.Contains(t, joined, "institution is required")
	assert.Contains(t, joined, "columns.date is required")
	assert.Contains(t, joined, "columns.description is required")
	assert.Contains(t, joined, "either amount or both debit and credit")
	assert.Contains(t, joined, "dates.formats")
	assert.Contains(t, joined, `method must be keywords, columns, or hybrid`)
	assert.Contains(t, joined, "does not compile")
}

func TestValidate_DebitCreditPair(t *testing.T) {
	s := &ExtractionSpec{
		Name:        "bank",
		Institution: "Bank",
		Columns: Columns{
			Date:        &ColumnSpec{Aliases: []string{"date"}},
			Description: &ColumnSpec{Aliases: []string{"description"}},
			Debit:       &ColumnSpec{Aliases: []string{"withdrawals"}},
			Credit:      &ColumnSpec{Aliases: []string{"deposits"}},
		},
		Dates:              DateRules{Formats: []string{"01/02/2006"}},
		SignClassification: SignRules{Method: MethodColumns},
	}
	assert.NoError(t, Validate(s, "bank.yaml"))

	s.Columns.Credit = nil
	err := Validate(s, "bank.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either amount or both debit and credit")
}

func TestValidate_PeriodGroups(t *testing.T) {
	s := &ExtractionSpec{
		Name:        "bank",
		Institution: "Bank",
		Columns: Columns{
			Date:        &ColumnSpec{Aliases: []string{"date"}},
			Description: &ColumnSpec{Aliases: []string{"description"}},
			Amount:      &ColumnSpec{Aliases: []string{"amount"}},
		},
		Dates:              DateRules{Formats: []string{"01/02/2006"}},
		SignClassification: SignRules{Method: MethodKeywords},
		StatementPeriod: StatementPeriod{Patterns: []PeriodPattern{
			{Regex: `(\d+)`, StartGroup: 1, EndGroup: 2, Format: "01/02/2006"},
		}},
	}

	err := Validate(s, "bank.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end_group 2 out of range")
}

func TestAmountResolutionDefaults(t *testing.T) {
	var a AmountResolution
	assert.Equal(t, DefaultPriority, a.EffectivePriority())
	assert.True(t, a.Absolute())

	no := false
	a = AmountResolution{Priority: []string{"debit", "credit"}, TakeAbsolute: &no}
	assert.Equal(t, []string{"debit", "credit"}, a.EffectivePriority())
	assert.False(t, a.Absolute())
}
