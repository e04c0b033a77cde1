// Package pdfsource turns input files into documents. PDF pages are read
// with the ledongthuc/pdf library and scanned for whitespace-aligned
// tables; JSON files are treated as pre-decoded document fixtures.
package pdfsource

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"ledgerlens/statement-extractor/internal/models"
)

// Load reads a document from path, dispatching on the file extension.
// ".json" files must contain a serialized Document; everything else is
// treated as a PDF.
func Load(path string) (models.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(path)
	}
	return LoadPDF(path)
}

// LoadJSON reads a pre-decoded Document fixture.
func LoadJSON(path string) (models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("reading document fixture %s: %w", path, err)
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Document{}, fmt.Errorf("decoding document fixture %s: %w", path, err)
	}
	return doc, nil
}

// LoadPDF extracts page text row by row and detects tables in it.
func LoadPDF(path string) (doc models.Document, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading PDF %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, rowErr := page.GetTextByRow()
		if rowErr != nil {
			continue
		}
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	doc = models.Document{
		Text:   strings.Join(lines, "\n"),
		Tables: DetectTables(lines),
	}
	return doc, nil
}

// minTableColumns is the smallest cell count a line must split into before
// it can start or extend a table.
const minTableColumns = 2

// minTableRows is the smallest run of same-shaped lines treated as a table
// (header plus at least one data row).
const minTableRows = 2

// DetectTables finds runs of consecutive lines that split into the same
// number of cells on two-or-more-space gaps. The first line of each run
// becomes the table header.
func DetectTables(lines []string) []models.Table {
	var tables []models.Table
	var run [][]string

	flush := func() {
		if len(run) >= minTableRows {
			tables = append(tables, models.Table{
				Header: run[0],
				Rows:   run[1:],
			})
		}
		run = nil
	}

	for _, line := range lines {
		cells := SplitCells(line)
		if len(cells) < minTableColumns {
			flush()
			continue
		}
		if len(run) > 0 && len(cells) != len(run[len(run)-1]) {
			flush()
		}
		run = append(run, cells)
	}
	flush()

	return tables
}

// SplitCells breaks a line into cells on runs of two or more spaces or a
// tab. Single spaces stay inside a cell so multi-word descriptions survive.
func SplitCells(line string) []string {
	var cells []string
	var cell strings.Builder
	spaces := 0

	commit := func() {
		if s := strings.TrimSpace(cell.String()); s != "" {
			cells = append(cells, s)
		}
		cell.Reset()
	}

	for _, r := range line {
		switch {
		case r == '\t':
			commit()
			spaces = 0
		case r == ' ':
			spaces++
			cell.WriteRune(r)
		default:
			if spaces >= 2 {
				// Strip the separating spaces from the finished cell.
				trimmed := strings.TrimRight(cell.String(), " ")
				cell.Reset()
				cell.WriteString(trimmed)
				commit()
			}
			spaces = 0
			cell.WriteRune(r)
		}
	}
	commit()

	return cells
}
