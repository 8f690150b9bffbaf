// Package config loads pdfsift configuration from command line flags and
// PDFSIFT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeScrape = "scrape"
	ModeServe  = "serve"

	// Source constants
	SourceCharGeometry = "chargeo"
	SourcePlainText    = "plaintext"

	// Default values
	DefaultOutput      = "extracted_data.tsv"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
)

// Config holds all configuration for pdfsift
type Config struct {
	// Mode is "scrape" (batch extraction) or "serve" (MCP stdio server)
	Mode string

	// Extraction rules
	Patterns     []string
	PatternsFile string
	DumpText     bool
	Headers      []string

	// Output configuration
	Output      string
	SplitOutput bool

	// Geometry source configuration
	Source           string
	AddSpaceRatio    float64
	MinSpaceRatio    float64
	AddSpaceDistance float64
	MinSpaceDistance float64
	LineTolerance    float64
	SmartSpacing     bool

	// Application configuration
	Version     string
	MaxFileSize int64
	Verbose     bool
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:         ModeScrape,
		Output:       DefaultOutput,
		Source:       SourceCharGeometry,
		SmartSpacing: true,
		Version:      "1.0.0",
		MaxFileSize:  DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
// along with the positional file arguments.
func LoadFromFlags() (*Config, []string, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, pflag.Args(), nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PDFSIFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("output", cfg.Output)
	viper.SetDefault("source", cfg.Source)
	viper.SetDefault("smart-spacing", cfg.SmartSpacing)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'scrape' for batch extraction, 'serve' for MCP stdio server")
	pflag.StringArray("pattern", nil, "Extraction pattern 'keyword:direction:distance:type' (repeatable)")
	pflag.String("patterns-file", "", "File containing extraction patterns, one per line")
	pflag.Bool("dump-text", false, "Extract and output all text content (default when no patterns given)")
	pflag.StringSlice("headers", nil, "Custom column headers (default: pattern keywords)")
	pflag.StringP("output", "o", cfg.Output, "Output file name (ignored with --split-output)")
	pflag.Bool("split-output", false, "Create a separate TSV file per input PDF (invoice.pdf -> invoice.tsv)")
	pflag.String("source", cfg.Source, "Geometry source: 'chargeo' (character positions) or 'plaintext' (degraded)")
	pflag.Float64("add-space-ratio", 0, "Gap-to-spacing ratio above which a missing space is inserted (adaptive mode)")
	pflag.Float64("min-space-ratio", 0, "Gap-to-spacing ratio a literal space must exceed to be kept (adaptive mode)")
	pflag.Float64("add-space-distance", 0, "Fixed add-space distance in page units (legacy mode)")
	pflag.Float64("min-space-distance", 0, "Fixed minimum-space distance in page units (legacy mode)")
	pflag.Float64("line-tolerance", 0, "Fixed vertical line-grouping tolerance (default: adapts to font size)")
	pflag.Bool("smart-spacing", cfg.SmartSpacing, "Apply regex spacing repairs in plaintext mode")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.BoolP("verbose", "v", false, "Show detailed processing information")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{
		"mode", "pattern", "patterns-file", "dump-text", "headers",
		"output", "split-output", "source",
		"add-space-ratio", "min-space-ratio", "add-space-distance", "min-space-distance",
		"line-tolerance", "smart-spacing", "maxfilesize", "verbose",
	} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\npdfsift - Extract targeted text fields from machine-generated PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s invoice.pdf                                            # dump all text\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s invoice.pdf --pattern \"Invoice Number:right:0:word\"   # one field\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s *.pdf --patterns-file rules.txt -o results.tsv         # batch\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s *.pdf --patterns-file rules.txt --split-output         # per-file TSVs\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nPattern format: keyword:direction:distance:type\n")
		fmt.Fprintf(os.Stderr, "  direction: left, right, above, below\n")
		fmt.Fprintf(os.Stderr, "  type:      word, number, line, text\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Patterns = viper.GetStringSlice("pattern")
	cfg.PatternsFile = viper.GetString("patterns-file")
	cfg.DumpText = viper.GetBool("dump-text")
	cfg.Headers = viper.GetStringSlice("headers")
	cfg.Output = viper.GetString("output")
	cfg.SplitOutput = viper.GetBool("split-output")
	cfg.Source = viper.GetString("source")
	cfg.AddSpaceRatio = viper.GetFloat64("add-space-ratio")
	cfg.MinSpaceRatio = viper.GetFloat64("min-space-ratio")
	cfg.AddSpaceDistance = viper.GetFloat64("add-space-distance")
	cfg.MinSpaceDistance = viper.GetFloat64("min-space-distance")
	cfg.LineTolerance = viper.GetFloat64("line-tolerance")
	cfg.SmartSpacing = viper.GetBool("smart-spacing")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.Verbose = viper.GetBool("verbose")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeScrape && c.Mode != ModeServe {
		return errors.New("mode must be either 'scrape' or 'serve'")
	}

	if c.Source != SourceCharGeometry && c.Source != SourcePlainText {
		return errors.New("source must be either 'chargeo' or 'plaintext'")
	}

	if len(c.Patterns) > 0 && c.PatternsFile != "" {
		return errors.New("--pattern and --patterns-file are mutually exclusive")
	}

	if c.DumpText && (len(c.Patterns) > 0 || c.PatternsFile != "") {
		return errors.New("--dump-text cannot be combined with patterns")
	}

	if c.AddSpaceRatio < 0 || c.MinSpaceRatio < 0 {
		return errors.New("spacing ratios cannot be negative")
	}

	if c.AddSpaceDistance < 0 || c.MinSpaceDistance < 0 {
		return errors.New("spacing distances cannot be negative")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	return nil
}

// UseAbsoluteSpacing reports whether legacy fixed-distance thresholds were
// requested. Ratio mode is preferred whenever no fixed distance is set.
func (c *Config) UseAbsoluteSpacing() bool {
	return c.AddSpaceDistance > 0 || c.MinSpaceDistance > 0
}

// IsServeMode returns true when running as an MCP stdio server
func (c *Config) IsServeMode() bool {
	return c.Mode == ModeServe
}

// TextDumpMode returns true when no patterns were supplied and the full
// text should be dumped instead.
func (c *Config) TextDumpMode() bool {
	return c.DumpText || (len(c.Patterns) == 0 && c.PatternsFile == "")
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Source: %s, Output: %s, SplitOutput: %t, Patterns: %d, Verbose: %t}",
		c.Mode, c.Source, c.Output, c.SplitOutput, len(c.Patterns), c.Verbose)
}
