// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ledgerlens/statement-extractor/internal/builtin"
	"ledgerlens/statement-extractor/internal/config"
	"ledgerlens/statement-extractor/internal/logging"
	"ledgerlens/statement-extractor/internal/registry"
)

// CommonFlags are the flags shared by multiple commands.
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the resolved application configuration, set before any
	// subcommand runs.
	Cfg *config.Config

	// SharedFlags are common flags accessible to all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "statement-extractor",
		Short: "Extract normalized transactions from bank and card statements.",
		Long: `statement-extractor converts bank and brokerage statements into
normalized transaction lists. Institutions are described by declarative
YAML specs; a bundled set ships with the binary and more can be dropped
into configured plugin directories.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)
		},
	}
)

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file (or directory for batch)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (or directory for batch)")
}

// GetLogger wraps the shared logrus instance in the logging abstraction.
func GetLogger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// BuildRegistry assembles the extractor registry from bundled specs, the
// configured plugin directories, and the allow/deny lists.
func BuildRegistry() (*registry.Registry, error) {
	logger := GetLogger()
	builtins, err := builtin.Extractors(logger)
	if err != nil {
		return nil, err
	}
	return registry.Build(builtins, nil, registry.Options{
		Dirs:             Cfg.Plugins.Dirs,
		Allow:            Cfg.Plugins.Allow,
		Deny:             Cfg.Plugins.Deny,
		DisableDiscovery: Cfg.Plugins.DisableDiscovery,
		Logger:           logger,
	}), nil
}
