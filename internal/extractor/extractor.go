// Package extractor defines the two-capability contract every statement
// extractor satisfies, and the registration record the governance layer
// keeps for each one. Declarative and native extractors are
// indistinguishable behind this interface.
package extractor

import "ledgerlens/statement-extractor/internal/models"

// Extractor is the dispatch contract: Supports decides whether the
// extractor can process a document, Extract produces the normalized
// result. Implementations must be safe for concurrent use; documents are
// immutable inputs.
type Extractor interface {
	Name() string
	Supports(doc models.Document) bool
	Extract(doc models.Document) (models.ExtractionResult, error)
}

// Origin orders extractors for dispatch precedence and name-collision
// shadowing: built-ins beat user declarative specs beat user native code.
type Origin int

const (
	OriginBuiltin Origin = iota
	OriginDeclarative
	OriginNative
)

func (o Origin) String() string {
	switch o {
	case OriginBuiltin:
		return "built-in"
	case OriginDeclarative:
		return "user-declarative"
	case OriginNative:
		return "user-native"
	}
	return "unknown"
}

// Status is the governance outcome for a registered extractor.
type Status int

const (
	// StatusActive extractors are dispatch candidates.
	StatusActive Status = iota
	// StatusShadowed extractors lost a name collision to a
	// higher-precedence registration. They stay inspectable but are never
	// dispatched.
	StatusShadowed
	// StatusBlocked extractors were removed from the dispatch pool by the
	// allow/deny configuration.
	StatusBlocked
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusShadowed:
		return "shadowed"
	case StatusBlocked:
		return "blocked"
	}
	return "unknown"
}

// Registration couples an extractor with its origin and governance
// outcome. Registrations are built once per registry build and read-only
// afterwards.
type Registration struct {
	Extractor Extractor
	Origin    Origin
	Status    Status
	// Source records where the extractor came from: a spec file path, or
	// "built-in" / "registered" for code-backed extractors.
	Source string
}

// Name is a convenience accessor.
func (r Registration) Name() string { return r.Extractor.Name() }
