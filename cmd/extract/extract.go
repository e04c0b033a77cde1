// Package extract handles single-document extraction
package extract

import (
	"github.com/spf13/cobra"

	"ledgerlens/statement-extractor/cmd/root"
	"ledgerlens/statement-extractor/internal/dispatch"
	"ledgerlens/statement-extractor/internal/export"
	"ledgerlens/statement-extractor/internal/pdfsource"
)

var (
	format string
	only   []string
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract transactions from one statement",
	Long: `Extract transactions from a single statement file.

The document is matched against every registered extractor's detection
rules; the first match in precedence order wins. PDF input is decoded
with the bundled text extraction; .json input is read as a pre-decoded
document.

Example:
  statement-extractor extract -i statement.pdf -o transactions.csv`,
	Run: extractFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: csv or json (default from config)")
	Cmd.Flags().StringSliceVar(&only, "extractor", nil, "Restrict matching to the named extractors for this run")
}

func extractFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()

	input := root.SharedFlags.Input
	output := root.SharedFlags.Output
	if input == "" || output == "" {
		root.Log.Fatal("Input and output files must be specified")
	}

	formatName := format
	if formatName == "" {
		formatName = root.Cfg.Export.Format
	}
	outFormat, err := export.ParseFormat(formatName)
	if err != nil {
		root.Log.Fatalf("%v", err)
	}

	reg, err := root.BuildRegistry()
	if err != nil {
		root.Log.Fatalf("Failed to build extractor registry: %v", err)
	}

	doc, err := pdfsource.Load(input)
	if err != nil {
		root.Log.Fatalf("Failed to load document: %v", err)
	}

	result, err := dispatch.Run(reg, doc, dispatch.Options{Only: only, Logger: logger})
	if err != nil {
		root.Log.Fatalf("Extraction failed: %v", err)
	}

	if err := export.Write(result, output, outFormat, logger); err != nil {
		root.Log.Fatalf("Failed to write output: %v", err)
	}

	root.Log.Infof("Extracted %d transactions (%d rows rejected)",
		len(result.Transactions), len(result.Rejections))
}
