package registry

import (
	"fmt"
	"plugin"

	"ledgerlens/statement-extractor/internal/extractor"
)

// nativeSymbol is the exported symbol a native extractor module must
// provide. Its value must satisfy the extractor.Extractor interface; that
// type assertion is the conformance check.
const nativeSymbol = "Extractor"

// loadNativeModule opens a compiled extractor module (built with
// -buildmode=plugin) and checks interface conformance.
func loadNativeModule(path string) (extractor.Extractor, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening native module: %w", err)
	}
	sym, err := p.Lookup(nativeSymbol)
	if err != nil {
		return nil, fmt.Errorf("native module missing %s symbol: %w", nativeSymbol, err)
	}

	ext, ok := sym.(extractor.Extractor)
	if !ok {
		// Modules typically export a pointer to their extractor value.
		if ptr, isPtr := sym.(*extractor.Extractor); isPtr {
			return *ptr, nil
		}
		return nil, fmt.Errorf("native module symbol %s does not implement the extractor contract", nativeSymbol)
	}
	return ext, nil
}
