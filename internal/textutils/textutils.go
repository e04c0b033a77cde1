// Package textutils provides text normalization and cleanup utilities
// shared by the classification and filtering layers.
package textutils

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize lowercases a description, trims it, and collapses interior
// whitespace runs to single spaces. All keyword and filter matching runs
// over normalized text so spec authors do not need to anticipate spacing.
func Normalize(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(strings.ToLower(s)), " ")
}

// CollapseWhitespace collapses whitespace runs without changing case.
func CollapseWhitespace(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ApplyCleanup removes every pattern match from s and optionally trims the
// result. Used for merchant cleanup and continuation-line stripping.
func ApplyCleanup(s string, patterns []*regexp.Regexp, trim bool) string {
	for _, re := range patterns {
		s = re.ReplaceAllString(s, "")
	}
	s = whitespaceRe.ReplaceAllString(s, " ")
	if trim {
		s = strings.TrimSpace(s)
	}
	return s
}

// CompilePatterns compiles a list of regular expressions, returning the
// first compile error with the offending pattern.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}
