// Package batch processes directories of statements concurrently. The
// registry is built once and shared read-only across workers.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"ledgerlens/statement-extractor/internal/dispatch"
	"ledgerlens/statement-extractor/internal/export"
	"ledgerlens/statement-extractor/internal/logging"
	"ledgerlens/statement-extractor/internal/pdfsource"
	"ledgerlens/statement-extractor/internal/registry"
)

// DefaultWorkers is used when Options.Workers is zero or negative.
const DefaultWorkers = 4

// Options configure a batch run.
type Options struct {
	Workers  int
	Format   export.Format
	Dispatch dispatch.Options
	Logger   logging.Logger
}

// FileResult records the outcome for one input file.
type FileResult struct {
	Input        string
	Output       string
	Transactions int
	Err          error
}

// Run extracts every supported file in inputDir and writes one output file
// per input into outputDir. A failing file is recorded in its FileResult
// and never aborts the rest of the batch.
func Run(reg *registry.Registry, inputDir, outputDir string, opts Options) ([]FileResult, error) {
	log := opts.Logger
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	format := opts.Format
	if format == "" {
		format = export.FormatCSV
	}

	inputs, err := listInputs(inputDir)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		log.Warn("No supported files found in input directory",
			logging.Field{Key: logging.FieldInputFile, Value: inputDir})
		return nil, nil
	}

	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	log.Info("Starting batch extraction",
		logging.Field{Key: logging.FieldCount, Value: len(inputs)},
		logging.Field{Key: logging.FieldWorkers, Value: workers})

	var mu sync.Mutex
	results := make([]FileResult, 0, len(inputs))

	p := pool.New().WithMaxGoroutines(workers)
	for _, input := range inputs {
		input := input
		p.Go(func() {
			result := processFile(reg, input, outputDir, format, opts.Dispatch, log)
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		})
	}
	p.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Input < results[j].Input })

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	log.Info("Batch extraction finished",
		logging.Field{Key: logging.FieldCount, Value: len(results)},
		logging.Field{Key: "failed", Value: failed})

	return results, nil
}

func processFile(reg *registry.Registry, input, outputDir string, format export.Format, dispatchOpts dispatch.Options, log logging.Logger) FileResult {
	result := FileResult{Input: input}

	doc, err := pdfsource.Load(input)
	if err != nil {
		log.WithError(err).Error("Failed to load document",
			logging.Field{Key: logging.FieldInputFile, Value: input})
		result.Err = err
		return result
	}

	extraction, err := dispatch.Run(reg, doc, dispatchOpts)
	if err != nil {
		log.WithError(err).Error("Extraction failed",
			logging.Field{Key: logging.FieldInputFile, Value: input})
		result.Err = err
		return result
	}

	result.Output = outputPath(input, outputDir, format)
	result.Transactions = len(extraction.Transactions)
	if err := export.Write(extraction, result.Output, format, log); err != nil {
		result.Err = err
		return result
	}

	log.Info("Processed file",
		logging.Field{Key: logging.FieldInputFile, Value: input},
		logging.Field{Key: logging.FieldOutputFile, Value: result.Output},
		logging.Field{Key: logging.FieldCount, Value: result.Transactions})
	return result
}

// listInputs returns the PDF and JSON fixture files in dir, sorted by name.
func listInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pdf", ".json":
			inputs = append(inputs, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(inputs)
	return inputs, nil
}

func outputPath(input, outputDir string, format export.Format) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+"."+string(format))
}
