package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerlens/statement-extractor/internal/logging"
	"ledgerlens/statement-extractor/internal/models"
)

func TestExtractors_AllBundledSpecsCompile(t *testing.T) {
	extractors, err := Extractors(&logging.MockLogger{})
	require.NoError(t, err)
	require.Len(t, extractors, 2)

	names := []string{extractors[0].Name(), extractors[1].Name()}
	assert.Equal(t, []string{"revolut-account", "viseca-card"}, names)
}

func TestExtractors_DetectionIsSpecific(t *testing.T) {
	extractors, err := Extractors(&logging.MockLogger{})
	require.NoError(t, err)

	doc := models.Document{Text: "some unrelated grocery list"}
	for _, ext := range extractors {
		assert.False(t, ext.Supports(doc), "bundled spec %s matched unrelated text", ext.Name())
	}
}

func TestExtractors_VisecaDetection(t *testing.T) {
	extractors, err := Extractors(&logging.MockLogger{})
	require.NoError(t, err)

	doc := models.Document{
		Text: "Viseca card statement\nInvoice period: 01.01.2024 - 31.01.2024",
		Tables: []models.Table{{
			Header: []string{"Date", "Details", "Amount"},
			Rows:   [][]string{{"15.01.", "COFFEE SHOP", "4.50"}},
		}},
	}

	var matched []string
	for _, ext := range extractors {
		if ext.Supports(doc) {
			matched = append(matched, ext.Name())
		}
	}
	assert.Equal(t, []string{"viseca-card"}, matched)
}
