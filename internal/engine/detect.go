package engine

import (
	"strings"

	"ledgerlens/statement-extractor/internal/columns"
	"ledgerlens/statement-extractor/internal/models"
	"ledgerlens/statement-extractor/internal/textutils"
)

// Supports implements the spec's detection rules: every keywords_all entry
// present in the document text, at least one keywords_any entry when the
// set is non-empty, every header_requires entry present in some table
// header, and, when table_required is set, at least one table resolving
// all required canonical roles.
func (e *Engine) Supports(doc models.Document) bool {
	det := e.spec.Detection

	if !doc.ContainsAll(det.KeywordsAll) {
		return false
	}
	if !doc.ContainsAny(det.KeywordsAny) {
		return false
	}

	for _, required := range det.HeaderRequires {
		if !anyHeaderContains(doc.Tables, required) {
			return false
		}
	}

	if det.TableRequired {
		found := false
		for _, table := range doc.Tables {
			if columns.Resolve(table.Header, e.spec.Columns).Usable() {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func anyHeaderContains(tables []models.Table, needle string) bool {
	normalized := textutils.Normalize(needle)
	for _, table := range tables {
		header := textutils.Normalize(strings.Join(table.Header, " "))
		if strings.Contains(header, normalized) {
			return true
		}
	}
	return false
}
