package spec

import (
	"fmt"
	"regexp"
	"strings"

	"ledgerlens/statement-extractor/internal/extracterror"
)

var validAmountFields = map[string]bool{"amount": true, "debit": true, "credit": true}

// Validate checks a spec's structure in a single pass and reports every
// problem found, not just the first. A nil return means the spec is usable
// as loaded.
func Validate(s *ExtractionSpec, file string) error {
	var problems []string

	if strings.TrimSpace(s.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(s.Institution) == "" {
		problems = append(problems, "institution is required")
	}

	problems = append(problems, validateColumns(s.Columns)...)
	problems = append(problems, validateAmountResolution(s.AmountResolution)...)
	problems = append(problems, validateDates(s.Dates)...)
	problems = append(problems, validateSignRules(s.SignClassification)...)
	problems = append(problems, validatePatterns("row_filters.skip_descriptions_pattern", s.RowFilters.SkipDescriptionsPattern)...)
	problems = append(problems, validatePatterns("merchant_cleanup.remove_patterns", s.MerchantCleanup.RemovePatterns)...)
	problems = append(problems, validatePeriod(s.StatementPeriod)...)
	problems = append(problems, validateAccountInference(s.AccountNameInference)...)
	problems = append(problems, validateMultiline(s.Multiline)...)

	if len(problems) > 0 {
		return &extracterror.SpecValidationError{File: file, Problems: problems}
	}
	return nil
}

func validateColumns(c Columns) []string {
	var problems []string

	check := func(name string, col *ColumnSpec, required bool) {
		if col == nil {
			if required {
				problems = append(problems, fmt.Sprintf("columns.%s is required", name))
			}
			return
		}
		if len(col.Aliases) == 0 {
			problems = append(problems, fmt.Sprintf("columns.%s.aliases must not be empty", name))
		}
	}

	check("date", c.Date, true)
	check("description", c.Description, true)
	check("amount", c.Amount, false)
	check("debit", c.Debit, false)
	check("credit", c.Credit, false)
	check("type", c.Type, false)

	hasAmount := c.Amount != nil
	hasPair := c.Debit != nil && c.Credit != nil
	if !hasAmount && !hasPair {
		problems = append(problems, "columns must define either amount or both debit and credit")
	}
	return problems
}

func validateAmountResolution(a AmountResolution) []string {
	var problems []string
	for _, field := range a.Priority {
		if !validAmountFields[field] {
			problems = append(problems, fmt.Sprintf("amount_resolution.priority contains unknown field %q", field))
		}
	}
	return problems
}

func validateDates(d DateRules) []string {
	var problems []string
	if len(d.Formats) == 0 {
		problems = append(problems, "dates.formats must define at least one format")
	}
	if d.InferYear.Enabled {
		switch d.InferYear.Source {
		case "", "statement_period", "document_text":
		default:
			problems = append(problems, fmt.Sprintf("dates.infer_year.source must be statement_period or document_text, got %q", d.InferYear.Source))
		}
		if d.InferYear.TextPattern != "" {
			if _, err := regexp.Compile(d.InferYear.TextPattern); err != nil {
				problems = append(problems, fmt.Sprintf("dates.infer_year.text_pattern does not compile: %v", err))
			}
		}
	}
	if d.YearBoundary.Enabled && d.YearBoundary.MonthThreshold < 0 {
		problems = append(problems, "dates.year_boundary.month_threshold must not be negative")
	}
	return problems
}

func validateSignRules(r SignRules) []string {
	var problems []string
	switch r.Method {
	case MethodKeywords, MethodColumns, MethodHybrid:
	case "":
		problems = append(problems, "sign_classification.method is required")
	default:
		problems = append(problems, fmt.Sprintf("sign_classification.method must be keywords, columns, or hybrid, got %q", r.Method))
	}
	return problems
}

func validatePatterns(section string, patterns []string) []string {
	var problems []string
	for _, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			problems = append(problems, fmt.Sprintf("%s: pattern %q does not compile: %v", section, p, err))
		}
	}
	return problems
}

func validatePeriod(p StatementPeriod) []string {
	var problems []string
	for i, pat := range p.Patterns {
		re, err := regexp.Compile(pat.Regex)
		if err != nil {
			problems = append(problems, fmt.Sprintf("statement_period.patterns[%d].regex does not compile: %v", i, err))
			continue
		}
		if pat.StartGroup < 1 || pat.StartGroup > re.NumSubexp() {
			problems = append(problems, fmt.Sprintf("statement_period.patterns[%d].start_group %d out of range", i, pat.StartGroup))
		}
		if pat.EndGroup < 1 || pat.EndGroup > re.NumSubexp() {
			problems = append(problems, fmt.Sprintf("statement_period.patterns[%d].end_group %d out of range", i, pat.EndGroup))
		}
		if pat.Format == "" {
			problems = append(problems, fmt.Sprintf("statement_period.patterns[%d].format is required", i))
		}
	}
	return problems
}

func validateAccountInference(a AccountNameInference) []string {
	var problems []string
	for i, rule := range a.Patterns {
		if len(rule.Keywords) == 0 && rule.Pattern == "" {
			problems = append(problems, fmt.Sprintf("account_name_inference.patterns[%d] needs keywords or pattern", i))
		}
		if rule.Pattern != "" {
			if _, err := regexp.Compile(rule.Pattern); err != nil {
				problems = append(problems, fmt.Sprintf("account_name_inference.patterns[%d].pattern does not compile: %v", i, err))
			}
		}
		if rule.Name == "" {
			problems = append(problems, fmt.Sprintf("account_name_inference.patterns[%d].name is required", i))
		}
	}
	return problems
}

func validateMultiline(m Multiline) []string {
	if m.Enabled && m.AppendTo != "" && m.AppendTo != "description" {
		return []string{fmt.Sprintf("multiline.append_to must be description, got %q", m.AppendTo)}
	}
	return nil
}
