package engine

import (
	"regexp"
	"strings"

	"ledgerlens/statement-extractor/internal/spec"
)

// accountRule is one compiled account-name inference rule: a keyword set
// that must all appear in the document text, or a pattern whose capture
// groups substitute into the name template.
type accountRule struct {
	keywords    []string
	pattern     *regexp.Regexp
	name        string
	accountType string
}

func compileAccountRules(inference spec.AccountNameInference) ([]accountRule, error) {
	rules := make([]accountRule, 0, len(inference.Patterns))
	for _, p := range inference.Patterns {
		rule := accountRule{
			keywords:    p.Keywords,
			name:        p.Name,
			accountType: p.AccountType,
		}
		if p.Pattern != "" {
			re, err := regexp.Compile(p.Pattern)
			if err != nil {
				return nil, err
			}
			rule.pattern = re
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// inferAccountName scans the document text against the ordered rules;
// first match wins. No match falls back to the spec's default name and
// keeps the default account type.
func (e *Engine) inferAccountName(text string) (name, accountType string) {
	lower := strings.ToLower(text)
	for _, rule := range e.account {
		if rule.pattern != nil {
			m := rule.pattern.FindStringSubmatchIndex(text)
			if m == nil {
				continue
			}
			expanded := rule.pattern.ExpandString(nil, rule.name, text, m)
			return string(expanded), rule.accountType
		}
		if len(rule.keywords) > 0 && containsAllKeywords(lower, rule.keywords) {
			return rule.name, rule.accountType
		}
	}
	return e.spec.AccountNameInference.Default, ""
}

func containsAllKeywords(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(lower, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}
