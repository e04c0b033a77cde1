package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"ledgerlens/statement-extractor/cmd/batch"
	"ledgerlens/statement-extractor/cmd/extract"
	"ledgerlens/statement-extractor/cmd/plugins"
	"ledgerlens/statement-extractor/cmd/root"
	"ledgerlens/statement-extractor/cmd/validate"
)

func init() {
	// Load environment variables silently before any logging happens.
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	// Set the global log level early so every logger created later
	// inherits it; config may refine it once parsed.
	configureLogLevel()

	root.Init()

	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(plugins.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
}

func configureLogLevel() {
	levelStr := os.Getenv("LLENS_LOG_LEVEL")
	if levelStr == "" {
		levelStr = "info"
	}
	level, err := logrus.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
