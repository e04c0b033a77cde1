// Package extracterror defines the typed errors produced by the extraction
// engine. Row-level failures never abort table processing, table-level
// failures never abort document processing, and single-plugin failures
// never abort the registry build; only the errors in this package surface
// to callers.
package extracterror

import (
	"fmt"
	"strings"
)

// SpecValidationError reports every structural problem found in one
// extraction specification. Validation is total: all problems are
// collected in a single pass so spec authors get one fix cycle.
type SpecValidationError struct {
	File     string
	Problems []string
}

func (e *SpecValidationError) Error() string {
	return fmt.Sprintf("invalid extraction spec %s: %s",
		e.File, strings.Join(e.Problems, "; "))
}

// NoExtractorFoundError means no registered, non-blocked extractor's
// detection accepted the document.
type NoExtractorFoundError struct {
	Candidates int
}

func (e *NoExtractorFoundError) Error() string {
	return fmt.Sprintf("no extractor found for document (%d candidates checked)", e.Candidates)
}

// AmbiguousColumnError means a required canonical role could not be
// resolved in any table of the document. The document still yields an
// empty result; this error is carried as a diagnostic.
type AmbiguousColumnError struct {
	Role   string
	Tables int
}

func (e *AmbiguousColumnError) Error() string {
	return fmt.Sprintf("no table resolves required column role %q (%d tables scanned)", e.Role, e.Tables)
}

// PluginLoadError means one plugin file or module failed to load or failed
// interface conformance. The plugin is skipped; discovery continues.
type PluginLoadError struct {
	Path string
	Err  error
}

func (e *PluginLoadError) Error() string {
	return fmt.Sprintf("failed to load plugin %s: %v", e.Path, e.Err)
}

func (e *PluginLoadError) Unwrap() error {
	return e.Err
}
