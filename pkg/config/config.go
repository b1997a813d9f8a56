// Package config provides configuration management for gnblob.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Log: level, format, destination
//   - Store: compress
//   - General: jobs_number, taxdump_dir
//
// Runtime-only fields (CLI flags only):
//   - Add.Create, Add.Replace (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNBLOB_ prefix with underscores for nesting:
//
//	GNBLOB_LOG_LEVEL=info
//	GNBLOB_JOBS_NUMBER=8
//	GNBLOB_STORE_COMPRESS=true
//	GNBLOB_TAXDUMP_DIR=/data/new_taxdump
package config

import (
	"runtime"
)

// Config represents the complete gnblob configuration.
type Config struct {
	// Store contains settings of BlobDir units on disk.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// Add contains settings specific to the add command.
	Add AddConfig `mapstructure:"add" yaml:"add"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// TaxdumpDir is a directory with an NCBI new_taxdump, it is needed
	// to resolve ranks of a taxon ID.
	TaxdumpDir string `mapstructure:"taxdump_dir" yaml:"taxdump_dir"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// StoreConfig describes how field and metadata units are written.
type StoreConfig struct {
	// Compress writes units gzipped (<id>.json.gz). Reading supports both
	// plain and compressed units regardless of this setting.
	Compress bool `mapstructure:"compress" yaml:"compress"`
}

// AddConfig contains settings specific to the add command.
type AddConfig struct {
	// Create allows to start a new BlobDir if there is no metadata yet.
	Create bool `mapstructure:"create" yaml:"create"`

	// Replace allows to overwrite fields that are already registered,
	// and to recreate an existing BlobDir together with Create.
	Replace bool `mapstructure:"replace" yaml:"replace"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), stderr or stdout
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
