// Package validate handles extraction spec validation
package validate

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ledgerlens/statement-extractor/cmd/root"
	"ledgerlens/statement-extractor/internal/engine"
	"ledgerlens/statement-extractor/internal/extracterror"
	"ledgerlens/statement-extractor/internal/spec"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate <spec-file>...",
	Short: "Validate extraction spec files",
	Long: `Validate one or more extraction spec files. Every problem in a
file is reported in a single pass, not just the first one.

Example:
  statement-extractor validate plugins/mybank.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) {
	failed := 0
	for _, path := range args {
		if err := validateFile(path); err != nil {
			failed++
			var verr *extracterror.SpecValidationError
			if errors.As(err, &verr) {
				fmt.Printf("%s: %d problem(s)\n", path, len(verr.Problems))
				for _, p := range verr.Problems {
					fmt.Printf("  - %s\n", p)
				}
				continue
			}
			fmt.Printf("%s: %v\n", path, err)
			continue
		}
		fmt.Printf("%s: OK\n", path)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// validateFile checks schema validity and that the spec actually compiles
// into an engine (regexes, date layouts).
func validateFile(path string) error {
	s, err := spec.LoadFile(path)
	if err != nil {
		return err
	}
	if _, err := engine.New(s, root.GetLogger()); err != nil {
		return err
	}
	return nil
}
