// Package classify labels rows as spend, credit, transfer, interest, or
// card_payment. Precedence is an explicit ordered list, not nested
// conditionals, so tests can enumerate it exhaustively.
package classify

import (
	"github.com/cloudflare/ahocorasick"

	"ledgerlens/statement-extractor/internal/amounts"
	"ledgerlens/statement-extractor/internal/models"
	"ledgerlens/statement-extractor/internal/spec"
	"ledgerlens/statement-extractor/internal/textutils"
)

// keywordSet matches one tag's keyword list against normalized text.
// Aho-Corasick keeps multi-keyword scans linear in the text length.
type keywordSet struct {
	tag     models.Tag
	matcher *ahocorasick.Matcher
}

func newKeywordSet(tag models.Tag, keywords []string) keywordSet {
	if len(keywords) == 0 {
		return keywordSet{tag: tag}
	}
	normalized := make([][]byte, len(keywords))
	for i, kw := range keywords {
		normalized[i] = []byte(textutils.Normalize(kw))
	}
	return keywordSet{tag: tag, matcher: ahocorasick.NewMatcher(normalized)}
}

func (k keywordSet) matches(normalized []byte) bool {
	// Match mutates matcher-internal counters; MatchThreadSafe keeps a
	// shared Classifier safe across batch workers.
	return k.matcher != nil && len(k.matcher.MatchThreadSafe(normalized)) > 0
}

// Classifier decides a row's tag from its description and the column its
// amount came from, per the spec's configured method.
type Classifier struct {
	method string
	// columnAuthoritative makes column provenance the verdict for the
	// columns and hybrid methods; when false the raw value's sign decides.
	columnAuthoritative bool
	// sets holds the keyword precedence chain: interest > card_payment >
	// transfer > credit > charge. First match wins; no match is spend.
	sets []keywordSet
}

// New builds a classifier from validated sign rules.
func New(rules spec.SignRules) *Classifier {
	return &Classifier{
		method:              rules.Method,
		columnAuthoritative: rules.ColumnAuthoritative(),
		sets: []keywordSet{
			newKeywordSet(models.TagInterest, rules.InterestKeywords),
			newKeywordSet(models.TagCardPayment, rules.CardPaymentKeywords),
			newKeywordSet(models.TagTransfer, rules.TransferKeywords),
			newKeywordSet(models.TagCredit, rules.CreditKeywords),
			newKeywordSet(models.TagSpend, rules.ChargeKeywords),
		},
	}
}

// Classify runs the state machine for one row: unclassified in, terminal
// tag out.
func (c *Classifier) Classify(description string, amount amounts.Resolution) models.Tag {
	switch c.method {
	case spec.MethodColumns:
		return c.fromColumns(description, amount, false)
	case spec.MethodHybrid:
		return c.fromColumns(description, amount, true)
	default:
		return c.fromKeywords(description)
	}
}

func (c *Classifier) fromColumns(description string, amount amounts.Resolution, keywordFallback bool) models.Tag {
	switch amount.Source {
	case amounts.SourceDebit, amounts.SourceCredit:
		if !c.columnAuthoritative {
			// The pair carries signed values; the value's sign outranks
			// the column it sits in.
			if amount.Negative {
				return models.TagCredit
			}
			return models.TagSpend
		}
		if amount.Source == amounts.SourceDebit {
			return models.TagSpend
		}
		return models.TagCredit
	}
	// Amount came from a single shared column; the column carries no sign
	// information.
	if keywordFallback {
		return c.fromKeywords(description)
	}
	return models.TagSpend
}

func (c *Classifier) fromKeywords(description string) models.Tag {
	normalized := []byte(textutils.Normalize(description))
	for _, set := range c.sets {
		if set.matches(normalized) {
			return set.tag
		}
	}
	return models.TagSpend
}
