// Package spec defines the declarative extraction specification: the rule
// document that maps an institution's statement layout onto the canonical
// transaction schema. Specs are loaded once, validated in full, and never
// mutated afterwards.
package spec

// ExtractionSpec is the in-memory form of one rule document. Field names
// mirror the YAML schema one-to-one so a spec serialized and reloaded is
// identical.
type ExtractionSpec struct {
	Name        string `yaml:"name"`
	Institution string `yaml:"institution"`
	AccountType string `yaml:"account_type"`

	Columns              Columns              `yaml:"columns"`
	AmountResolution     AmountResolution     `yaml:"amount_resolution"`
	StatementPeriod      StatementPeriod      `yaml:"statement_period"`
	Dates                DateRules            `yaml:"dates"`
	SignClassification   SignRules            `yaml:"sign_classification"`
	TableFilters         TableFilters         `yaml:"table_filters"`
	RowFilters           RowFilters           `yaml:"row_filters"`
	Multiline            Multiline            `yaml:"multiline"`
	MerchantCleanup      MerchantCleanup      `yaml:"merchant_cleanup"`
	AccountNameInference AccountNameInference `yaml:"account_name_inference"`
	Detection            Detection            `yaml:"detection"`
}

// ColumnSpec lists the header aliases that resolve to one canonical role.
// Aliases match case-insensitively as substrings of the header cell, first
// alias in declared order wins.
type ColumnSpec struct {
	Aliases []string `yaml:"aliases"`
}

// Columns maps canonical roles to their alias groups. A spec must define
// date and description, and either amount or both debit and credit.
type Columns struct {
	Date        *ColumnSpec `yaml:"date,omitempty"`
	Description *ColumnSpec `yaml:"description,omitempty"`
	Amount      *ColumnSpec `yaml:"amount,omitempty"`
	Debit       *ColumnSpec `yaml:"debit,omitempty"`
	Credit      *ColumnSpec `yaml:"credit,omitempty"`
	Type        *ColumnSpec `yaml:"type,omitempty"`
}

// AmountResolution controls how a row's amount is derived: candidate
// fields are tried in priority order, the first non-empty parseable value
// wins, and the result is normalized to absolute value when TakeAbsolute
// is set (the default).
type AmountResolution struct {
	Priority     []string `yaml:"priority,omitempty"`
	TakeAbsolute *bool    `yaml:"take_absolute,omitempty"`
}

// DefaultPriority is the amount candidate order used when a spec does not
// declare one.
var DefaultPriority = []string{"amount", "debit", "credit"}

// EffectivePriority returns the declared priority or the default.
func (a AmountResolution) EffectivePriority() []string {
	if len(a.Priority) > 0 {
		return a.Priority
	}
	return DefaultPriority
}

// Absolute reports the take_absolute setting, defaulting to true.
func (a AmountResolution) Absolute() bool {
	if a.TakeAbsolute == nil {
		return true
	}
	return *a.TakeAbsolute
}

// PeriodPattern extracts the statement period from document text: the
// regex's start and end capture groups are parsed with Format.
type PeriodPattern struct {
	Regex      string `yaml:"regex"`
	StartGroup int    `yaml:"start_group"`
	EndGroup   int    `yaml:"end_group"`
	Format     string `yaml:"format"`
}

// StatementPeriod lists period patterns tried in order; the first pattern
// whose groups both parse wins.
type StatementPeriod struct {
	Patterns []PeriodPattern `yaml:"patterns,omitempty"`
}

// InferYear controls year inference for date formats that omit the year.
// Source selects where the reference year comes from: "statement_period"
// or "document_text".
type InferYear struct {
	Enabled     bool   `yaml:"enabled"`
	Source      string `yaml:"source,omitempty"`
	TextPattern string `yaml:"text_pattern,omitempty"`
}

// YearBoundary rolls the inferred year back by one when a transaction
// month exceeds the statement month by more than MonthThreshold. Handles
// December statements containing January transactions.
type YearBoundary struct {
	Enabled        bool `yaml:"enabled"`
	MonthThreshold int  `yaml:"month_threshold,omitempty"`
}

// DateRules lists the date layouts tried in order (Go reference layouts,
// e.g. "01/02/2006"; a layout without "2006" triggers year inference).
type DateRules struct {
	Formats      []string     `yaml:"formats"`
	InferYear    InferYear    `yaml:"infer_year,omitempty"`
	YearBoundary YearBoundary `yaml:"year_boundary,omitempty"`
}

// Sign classification methods.
const (
	MethodKeywords = "keywords"
	MethodColumns  = "columns"
	MethodHybrid   = "hybrid"
)

// SignRules configures sign classification. Keyword sets are tested in a
// fixed precedence order: interest, card_payment, transfer, credit, then
// charge keywords defaulting to spend.
type SignRules struct {
	Method               string   `yaml:"method"`
	ChargeKeywords       []string `yaml:"charge_keywords,omitempty"`
	CreditKeywords       []string `yaml:"credit_keywords,omitempty"`
	TransferKeywords     []string `yaml:"transfer_keywords,omitempty"`
	InterestKeywords     []string `yaml:"interest_keywords,omitempty"`
	CardPaymentKeywords  []string `yaml:"card_payment_keywords,omitempty"`
	ColumnDeterminesSign *bool    `yaml:"column_determines_sign,omitempty"`
}

// ColumnAuthoritative reports whether column provenance decides the sign
// under the columns and hybrid methods, defaulting to true. When false,
// the debit/credit pair carries signed values and the value's own sign
// decides instead.
func (s SignRules) ColumnAuthoritative() bool {
	if s.ColumnDeterminesSign == nil {
		return true
	}
	return *s.ColumnDeterminesSign
}

// HeaderPredicate skips a whole table when its header contains every
// Contains entry and none of the NotContains entries.
type HeaderPredicate struct {
	Contains    []string `yaml:"contains,omitempty"`
	NotContains []string `yaml:"not_contains,omitempty"`
}

// TableFilters lists table-level skip predicates.
type TableFilters struct {
	SkipIfAll []HeaderPredicate `yaml:"skip_if_all,omitempty"`
}

// RowFilters drops rows before classification: exact normalized
// description matches, pattern matches, and the spend-only output gate.
type RowFilters struct {
	SkipDescriptionsExact   []string `yaml:"skip_descriptions_exact,omitempty"`
	SkipDescriptionsPattern []string `yaml:"skip_descriptions_pattern,omitempty"`
	SpendOnly               bool     `yaml:"spend_only,omitempty"`
}

// Multiline controls continuation-row merging. AppendTo names the target
// field ("description" is the only supported value and the default).
type Multiline struct {
	Enabled             bool   `yaml:"enabled"`
	AppendTo            string `yaml:"append_to,omitempty"`
	SkipAppendIfSummary bool   `yaml:"skip_append_if_summary,omitempty"`
}

// MerchantCleanup strips noise patterns from final merchant text.
type MerchantCleanup struct {
	RemovePatterns []string `yaml:"remove_patterns,omitempty"`
	Trim           bool     `yaml:"trim,omitempty"`
}

// AccountPattern is one account-name inference rule: either a keyword set
// that must all appear in the document text, or a regex whose capture
// groups are substituted into Name (e.g. "Card ending $1"). It may
// override the spec's default account type.
type AccountPattern struct {
	Keywords    []string `yaml:"keywords,omitempty"`
	Pattern     string   `yaml:"pattern,omitempty"`
	Name        string   `yaml:"name"`
	AccountType string   `yaml:"account_type,omitempty"`
}

// AccountNameInference lists rules tried in order; first match wins, no
// match falls back to Default.
type AccountNameInference struct {
	Patterns []AccountPattern `yaml:"patterns,omitempty"`
	Default  string           `yaml:"default,omitempty"`
}

// Detection decides whether this spec supports a document: every
// KeywordsAll entry must appear in the document text, at least one
// KeywordsAny entry when the set is non-empty, every HeaderRequires entry
// must appear in some table header, and TableRequired demands at least one
// table resolving all required canonical roles.
type Detection struct {
	KeywordsAll    []string `yaml:"keywords_all,omitempty"`
	KeywordsAny    []string `yaml:"keywords_any,omitempty"`
	TableRequired  bool     `yaml:"table_required,omitempty"`
	HeaderRequires []string `yaml:"header_requires,omitempty"`
}
