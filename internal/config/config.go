// Package config loads the project configuration from classc.yaml or
// classc.toml. Every field has a default, so a missing file is not an error
// for the driver: it falls back to Default().
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the top-level project configuration.
type Config struct {
	Sources Sources `yaml:"sources" toml:"sources"`

	// Workers bounds the number of files processed concurrently.
	// Defaults to the number of CPUs.
	Workers int `yaml:"workers" toml:"workers"`

	// FailFast stops the run after the first file with errors instead of
	// collecting the diagnostics of every file.
	FailFast bool `yaml:"fail_fast" toml:"fail_fast"`

	Symbols Symbols `yaml:"symbols" toml:"symbols"`
	Output  Output  `yaml:"output" toml:"output"`
	Log     Log     `yaml:"log" toml:"log"`
	Watch   Watch   `yaml:"watch" toml:"watch"`
	Metrics Metrics `yaml:"metrics" toml:"metrics"`
}

type Sources struct {
	// Include lists root directories or files. Defaults to ".".
	Include []string `yaml:"include" toml:"include"`
	// Exclude lists glob patterns matched against slash-separated paths.
	Exclude []string `yaml:"exclude" toml:"exclude"`
}

type Symbols struct {
	// Duplicates is "warn" (default) or "error".
	Duplicates string `yaml:"duplicates" toml:"duplicates"`
}

type Output struct {
	// Format of the symbol table written by "classc symbols".
	Format string `yaml:"format" toml:"format"`
	// Path of the export; empty means stdout.
	Path string `yaml:"path" toml:"path"`
	// SQLite database receiving a copy of every successful run.
	SQLite string `yaml:"sqlite" toml:"sqlite"`
}

type Log struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // text or json
	File   string `yaml:"file" toml:"file"`
}

type Watch struct {
	Debounce time.Duration `yaml:"debounce" toml:"debounce"`
}

type Metrics struct {
	// Addr enables the Prometheus endpoint, e.g. ":9464".
	Addr string `yaml:"addr" toml:"addr"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads a classc.yaml or classc.toml file. The format is chosen by
// extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data, path)
	}
	return Parse(data, path)
}

// Parse parses YAML configuration content.
// The path argument is used only for error messages.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return finish(&cfg, path)
}

// ParseTOML parses TOML configuration content.
func ParseTOML(data []byte, path string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return finish(&cfg, path)
}

func finish(cfg *Config, path string) (*Config, error) {
	cfg.setDefaults()
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfig searches for a config file starting from dir and walking up to
// the filesystem root. It returns "" and a nil error when none exists.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) setDefaults() {
	if len(c.Sources.Include) == 0 {
		c.Sources.Include = []string{"."}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Symbols.Duplicates == "" {
		c.Symbols.Duplicates = DuplicatesWarn
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
}

// Validate re-checks the configuration once command-line overrides are applied.
func (c *Config) Validate() error {
	c.setDefaults()
	return c.validate("command line")
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	switch c.Symbols.Duplicates {
	case DuplicatesWarn, DuplicatesError:
	default:
		return fmt.Errorf("%s: symbols.duplicates: must be %q or %q, got %q",
			path, DuplicatesWarn, DuplicatesError, c.Symbols.Duplicates)
	}
	if !slices.Contains(OutputFormats, c.Output.Format) {
		return fmt.Errorf("%s: output.format: unknown format %q (want one of %s)",
			path, c.Output.Format, strings.Join(OutputFormats, ", "))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%s: log.level: unknown level %q", path, c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%s: log.format: must be text or json, got %q", path, c.Log.Format)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("%s: watch.debounce: must not be negative", path)
	}
	return nil
}

// IsSourceFile reports whether path carries one of SourceFileExtensions.
func IsSourceFile(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
