// Package builtin bundles the extraction specs shipped with the binary.
// They sit at the highest governance precedence and can only be replaced
// by disabling them through allow/deny, never by a same-named plugin.
package builtin

import (
	"bytes"
	"embed"
	"fmt"
	"sort"

	"ledgerlens/statement-extractor/internal/engine"
	"ledgerlens/statement-extractor/internal/extractor"
	"ledgerlens/statement-extractor/internal/logging"
	"ledgerlens/statement-extractor/internal/spec"
)

//go:embed specs/*.yaml
var specFS embed.FS

// Extractors builds an engine for every bundled spec. A broken bundled
// spec is a build defect, so any error here is fatal to the caller.
func Extractors(log logging.Logger) ([]extractor.Extractor, error) {
	entries, err := specFS.ReadDir("specs")
	if err != nil {
		return nil, fmt.Errorf("reading bundled specs: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var extractors []extractor.Extractor
	for _, name := range names {
		data, err := specFS.ReadFile("specs/" + name)
		if err != nil {
			return nil, fmt.Errorf("reading bundled spec %s: %w", name, err)
		}
		s, err := spec.Load(bytes.NewReader(data), name)
		if err != nil {
			return nil, fmt.Errorf("bundled spec %s: %w", name, err)
		}
		eng, err := engine.New(s, log)
		if err != nil {
			return nil, fmt.Errorf("bundled spec %s: %w", name, err)
		}
		extractors = append(extractors, eng)
	}
	return extractors, nil
}
