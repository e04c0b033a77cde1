// Package config provides Viper-based hierarchical configuration:
// defaults, then an optional config file, then LLENS_* environment
// variables, with a .env file loaded first when present.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Plugins struct {
		Dirs             []string `mapstructure:"dirs" yaml:"dirs"`
		DisableDiscovery bool     `mapstructure:"disable_discovery" yaml:"disable_discovery"`
		Allow            []string `mapstructure:"allow" yaml:"allow"`
		Deny             []string `mapstructure:"deny" yaml:"deny"`
	} `mapstructure:"plugins" yaml:"plugins"`

	Batch struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"batch" yaml:"batch"`

	Export struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"export" yaml:"export"`
}

var envOnce sync.Once

// LoadEnv loads a .env file from the working directory if one exists.
func LoadEnv() {
	envOnce.Do(func() {
		if _, err := os.Stat(".env"); err != nil {
			return
		}
		_ = godotenv.Load(".env")
	})
}

// Load initializes Viper and returns the resolved configuration.
func Load() (*Config, error) {
	LoadEnv()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.statement-extractor")
	v.AddConfigPath(".statement-extractor")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LLENS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("plugins.dirs", []string{})
	v.SetDefault("plugins.disable_discovery", false)
	v.SetDefault("plugins.allow", []string{})
	v.SetDefault("plugins.deny", []string{})

	v.SetDefault("batch.workers", 4)

	v.SetDefault("export.format", "csv")
}

func validate(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if config.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got: %d", config.Batch.Workers)
	}
	if f := strings.ToLower(config.Export.Format); f != "csv" && f != "json" {
		return fmt.Errorf("invalid export format: %s (must be 'csv' or 'json')", config.Export.Format)
	}
	return nil
}

// ConfigureLogging builds a logrus logger from the config.
func ConfigureLogging(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
