// Package batch handles batch processing of statement directories
package batch

import (
	"github.com/spf13/cobra"

	"ledgerlens/statement-extractor/cmd/root"
	"ledgerlens/statement-extractor/internal/batch"
	"ledgerlens/statement-extractor/internal/export"
)

var (
	workers int
	format  string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Extract every statement in a directory",
	Long: `Extract every supported statement file in an input directory and
write one output file per statement into the output directory. Files are
processed concurrently; a failing file is reported and skipped.

Example:
  statement-extractor batch -i statements/ -o out/`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent workers (default from config)")
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: csv or json (default from config)")
}

func batchFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()

	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		root.Log.Fatal("Input and output directories must be specified")
	}

	formatName := format
	if formatName == "" {
		formatName = root.Cfg.Export.Format
	}
	outFormat, err := export.ParseFormat(formatName)
	if err != nil {
		root.Log.Fatalf("%v", err)
	}

	workerCount := workers
	if workerCount <= 0 {
		workerCount = root.Cfg.Batch.Workers
	}

	reg, err := root.BuildRegistry()
	if err != nil {
		root.Log.Fatalf("Failed to build extractor registry: %v", err)
	}

	results, err := batch.Run(reg, inputDir, outputDir, batch.Options{
		Workers: workerCount,
		Format:  outFormat,
		Logger:  logger,
	})
	if err != nil {
		root.Log.Fatalf("Batch extraction failed: %v", err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	root.Log.Infof("Batch finished: %d files processed, %d failed", len(results), failed)
	if failed > 0 {
		for _, r := range results {
			if r.Err != nil {
				root.Log.Warnf("  %s: %v", r.Input, r.Err)
			}
		}
	}
}
