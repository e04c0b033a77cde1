package engine

import (
	"regexp"
	"time"

	"ledgerlens/statement-extractor/internal/spec"
)

// periodRule is one compiled statement-period pattern.
type periodRule struct {
	re         *regexp.Regexp
	startGroup int
	endGroup   int
	format     string
}

func compilePeriodRules(period spec.StatementPeriod) ([]periodRule, error) {
	rules := make([]periodRule, 0, len(period.Patterns))
	for _, p := range period.Patterns {
		re, err := regexp.Compile(p.Regex)
		if err != nil {
			return nil, err
		}
		rules = append(rules, periodRule{
			re:         re,
			startGroup: p.StartGroup,
			endGroup:   p.EndGroup,
			format:     p.Format,
		})
	}
	return rules, nil
}

// extractPeriod tries each pattern in declared order against the document
// text; the first pattern whose start and end groups both parse wins.
func (e *Engine) extractPeriod(text string) (start, end *time.Time) {
	for _, rule := range e.period {
		m := rule.re.FindStringSubmatch(text)
		if m == nil || rule.startGroup >= len(m) || rule.endGroup >= len(m) {
			continue
		}
		s, errS := time.Parse(rule.format, m[rule.startGroup])
		en, errE := time.Parse(rule.format, m[rule.endGroup])
		if errS != nil || errE != nil {
			continue
		}
		return &s, &en
	}
	return nil, nil
}
