// Package models defines the core data structures shared across the
// extraction engine: the document abstraction handed over by the decoding
// collaborator, the canonical transaction schema, and the extraction result.
package models

import "strings"

// Table is a detected table from a statement document: a header row plus
// data rows of string cells. Rows are not required to have the same width
// as the header; cell access goes through Cell to stay in bounds.
type Table struct {
	Header []string   `json:"header" yaml:"header"`
	Rows   [][]string `json:"rows" yaml:"rows"`
}

// Cell returns the cell at the given column of a row, or "" when the row is
// shorter than the header.
func (t Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// Document is the input boundary of the engine. It is produced by an
// external decoding collaborator (PDF text extraction, fixtures) and is
// immutable during processing.
type Document struct {
	// Text is the full page text of the document, all pages concatenated.
	Text string `json:"text" yaml:"text"`
	// Tables are the detected tables in document order.
	Tables []Table `json:"tables" yaml:"tables"`
}

// ContainsAll reports whether every needle occurs in the document text,
// case-insensitively.
func (d Document) ContainsAll(needles []string) bool {
	text := strings.ToLower(d.Text)
	for _, n := range needles {
		if !strings.Contains(text, strings.ToLower(n)) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether at least one needle occurs in the document
// text, case-insensitively. An empty needle list matches.
func (d Document) ContainsAny(needles []string) bool {
	if len(needles) == 0 {
		return true
	}
	text := strings.ToLower(d.Text)
	for _, n := range needles {
		if strings.Contains(text, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
