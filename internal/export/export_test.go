package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerlens/statement-extractor/internal/logging"
	"ledgerlens/statement-extractor/internal/models"
)

func sampleResult() models.ExtractionResult {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return models.ExtractionResult{
		Metadata: models.StatementMetadata{
			Institution: "Test Bank",
			AccountName: "Test Visa 9876",
		},
		Transactions: []models.Transaction{
			models.NewTransaction(date, "COFFEE SHOP", decimal.RequireFromString("4.50"), "COFFEE SHOP SEATTLE", models.TagSpend),
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "transactions.csv")
	require.NoError(t, Write(sampleResult(), path, FormatCSV, &logging.MockLogger{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "merchant")
	assert.Contains(t, lines[1], "2024-01-15")
	assert.Contains(t, lines[1], "COFFEE SHOP")
	assert.Contains(t, lines[1], "4.50")
	assert.Contains(t, lines[1], "Test Bank")
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.json")
	require.NoError(t, Write(sampleResult(), path, FormatJSON, &logging.MockLogger{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var result models.ExtractionResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "Test Bank", result.Metadata.Institution)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "COFFEE SHOP", result.Transactions[0].Merchant)
}

func TestWriteCSV_EmptyResultStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, Write(models.ExtractionResult{}, path, FormatCSV, &logging.MockLogger{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "id")
}
