// Package dispatch selects exactly one extractor for a document by running
// each candidate's detection in deterministic precedence order.
package dispatch

import (
	"strings"

	"ledgerlens/statement-extractor/internal/extracterror"
	"ledgerlens/statement-extractor/internal/extractor"
	"ledgerlens/statement-extractor/internal/logging"
	"ledgerlens/statement-extractor/internal/models"
	"ledgerlens/statement-extractor/internal/registry"
)

// Options are per-run dispatch controls.
type Options struct {
	// Only restricts the dispatch pool to these extractor names for this
	// run, overriding the registry's persisted allow/deny outcome.
	// Shadowed extractors stay excluded.
	Only   []string
	Logger logging.Logger
}

// Select asks each candidate whether it supports the document and returns
// the first match. Candidates are visited in precedence order (built-ins,
// then user-declarative, then user-native, then registration order), so
// ties resolve deterministically; additional matches are reported in the
// log rather than silently ignored.
func Select(reg *registry.Registry, doc models.Document, opts Options) (extractor.Registration, error) {
	log := opts.Logger
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}

	pool := reg.Candidates()
	if len(opts.Only) > 0 {
		pool = restrictPool(reg, opts.Only)
	}

	var matches []extractor.Registration
	for _, candidate := range pool {
		if candidate.Extractor.Supports(doc) {
			matches = append(matches, candidate)
		}
	}

	if len(matches) == 0 {
		return extractor.Registration{}, &extracterror.NoExtractorFoundError{Candidates: len(pool)}
	}
	if len(matches) > 1 {
		log.Warn("Multiple extractors match document, selecting by precedence",
			logging.Field{Key: logging.FieldExtractor, Value: matches[0].Name()},
			logging.Field{Key: "also_matched", Value: matchNames(matches[1:])})
	}

	log.Info("Selected extractor",
		logging.Field{Key: logging.FieldExtractor, Value: matches[0].Name()},
		logging.Field{Key: logging.FieldOrigin, Value: matches[0].Origin.String()})
	return matches[0], nil
}

// Run dispatches and extracts in one step.
func Run(reg *registry.Registry, doc models.Document, opts Options) (models.ExtractionResult, error) {
	selected, err := Select(reg, doc, opts)
	if err != nil {
		return models.ExtractionResult{}, err
	}
	return selected.Extractor.Extract(doc)
}

// restrictPool builds the run-scoped pool from an explicit name list:
// blocked extractors become eligible again, shadowed ones never do.
func restrictPool(reg *registry.Registry, only []string) []extractor.Registration {
	wanted := make(map[string]struct{}, len(only))
	for _, n := range only {
		wanted[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}

	var pool []extractor.Registration
	for _, r := range reg.Registrations() {
		if r.Status == extractor.StatusShadowed {
			continue
		}
		if _, ok := wanted[strings.ToLower(r.Name())]; ok {
			pool = append(pool, r)
		}
	}
	return pool
}

func matchNames(regs []extractor.Registration) []string {
	names := make([]string, len(regs))
	for i, r := range regs {
		names[i] = r.Name()
	}
	return names
}
