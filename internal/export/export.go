// Package export writes extraction results to CSV or JSON files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"ledgerlens/statement-extractor/internal/logging"
	"ledgerlens/statement-extractor/internal/models"
)

// Format names an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or json)", s)
	}
}

// Delimiter is the CSV output delimiter.
var Delimiter rune = ','

// csvRow flattens a transaction with its statement context for CSV output.
// Dates are formatted here because time.Time has no useful gocsv default.
type csvRow struct {
	ID          string `csv:"id"`
	Date        string `csv:"date"`
	Merchant    string `csv:"merchant"`
	Amount      string `csv:"amount"`
	Tag         string `csv:"tag"`
	Institution string `csv:"institution"`
	AccountName string `csv:"account_name"`
	Raw         string `csv:"raw_description"`
}

// Write encodes the result to path in the given format.
func Write(result models.ExtractionResult, path string, format Format, log logging.Logger) error {
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}

	switch format {
	case FormatJSON:
		return writeJSON(result, path, log)
	case FormatCSV:
		return writeCSV(result, path, log)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func writeJSON(result models.ExtractionResult, path string, log logging.Logger) error {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer closeFile(file, log)

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("error writing JSON data: %w", err)
	}

	log.Info("Wrote extraction result",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)})
	return nil
}

func writeCSV(result models.ExtractionResult, path string, log logging.Logger) error {
	rows := make([]csvRow, 0, len(result.Transactions))
	for _, tx := range result.Transactions {
		rows = append(rows, csvRow{
			ID:          tx.ID,
			Date:        tx.Date.Format("2006-01-02"),
			Merchant:    tx.Merchant,
			Amount:      tx.Amount.StringFixed(2),
			Tag:         string(tx.Tag),
			Institution: result.Metadata.Institution,
			AccountName: result.Metadata.AccountName,
			Raw:         tx.RawDescription,
		})
	}

	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer closeFile(file, log)

	w := csv.NewWriter(file)
	w.Comma = Delimiter
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(w)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.Info("Wrote extraction result",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("error creating directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating output file: %w", err)
	}
	return file, nil
}

func closeFile(f *os.File, log logging.Logger) {
	if err := f.Close(); err != nil {
		log.WithError(err).Warn("Failed to close output file")
	}
}
