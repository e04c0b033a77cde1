package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentContainsAll(t *testing.T) {
	doc := Document{Text: "First National Bank\nStatement Period: 01/01/2024 - 01/31/2024"}

	assert.True(t, doc.ContainsAll(nil))
	assert.True(t, doc.ContainsAll([]string{"first national", "STATEMENT PERIOD"}))
	assert.False(t, doc.ContainsAll([]string{"first national", "brokerage"}))
}

func TestDocumentContainsAny(t *testing.T) {
	doc := Document{Text: "Everyday Checking summary"}

	assert.True(t, doc.ContainsAny(nil))
	assert.True(t, doc.ContainsAny([]string{"savings", "checking"}))
	assert.False(t, doc.ContainsAny([]string{"savings", "brokerage"}))
}

func TestTableCell(t *testing.T) {
	table := Table{
		Header: []string{"Date", "Description", "Amount"},
		Rows:   [][]string{{"01/15", "AMAZON.COM"}},
	}

	row := table.Rows[0]
	assert.Equal(t, "AMAZON.COM", table.Cell(row, 1))
	assert.Equal(t, "", table.Cell(row, 2), "short row yields empty cell")
	assert.Equal(t, "", table.Cell(row, -1))
}
