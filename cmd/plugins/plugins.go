// Package plugins handles registry inspection commands
package plugins

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ledgerlens/statement-extractor/cmd/root"
)

// Cmd represents the plugins command
var Cmd = &cobra.Command{
	Use:   "plugins",
	Short: "Inspect registered extractors",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every registered extractor with origin and status",
	Long: `List every registered extractor, including shadowed and blocked
ones, in dispatch precedence order. Plugins that failed to load are
reported separately.`,
	Run: listFunc,
}

func init() {
	Cmd.AddCommand(listCmd)
}

func listFunc(cmd *cobra.Command, args []string) {
	reg, err := root.BuildRegistry()
	if err != nil {
		root.Log.Fatalf("Failed to build extractor registry: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tORIGIN\tSTATUS\tSOURCE")
	for _, r := range reg.Registrations() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name(), r.Origin, r.Status, r.Source)
	}
	if err := w.Flush(); err != nil {
		root.Log.Warnf("Failed to flush output: %v", err)
	}

	if loadErrs := reg.LoadErrors(); len(loadErrs) > 0 {
		fmt.Println()
		fmt.Printf("%d plugin(s) failed to load:\n", len(loadErrs))
		for _, e := range loadErrs {
			fmt.Printf("  %v\n", e)
		}
	}
}
