package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/funvibe/classc/internal/config"
	"github.com/funvibe/classc/internal/diagnostics"
	"github.com/funvibe/classc/internal/logger"
)

// options holds the command-line flags. Only flags given explicitly override
// the configuration file.
type options struct {
	configPath  string
	format      string
	output      string
	sqlite      string
	workers     int
	failFast    bool
	duplicates  string
	exclude     string
	logLevel    string
	logFormat   string
	logFile     string
	metricsAddr string
	debounce    time.Duration
	noColor     bool

	set   map[string]bool
	paths []string
}

func parseOptions(command string, args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet("classc "+command, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "path to classc.yaml or classc.toml (default: search upwards)")
	fs.IntVar(&opts.workers, "workers", 0, "files processed concurrently")
	fs.BoolVar(&opts.failFast, "fail-fast", false, "stop at the first file with errors")
	fs.StringVar(&opts.duplicates, "duplicates", "", "duplicate declarations: warn or error")
	fs.StringVar(&opts.exclude, "exclude", "", "comma-separated glob patterns to skip")
	fs.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&opts.logFormat, "log-format", "", "text or json")
	fs.StringVar(&opts.logFile, "log-file", "", "append logs to this file")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.StringVar(&opts.sqlite, "sqlite", "", "save the symbol table of successful runs to this SQLite database")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored diagnostics")
	switch command {
	case "symbols":
		fs.StringVar(&opts.format, "format", "", "output format: "+strings.Join(config.OutputFormats, ", "))
		fs.StringVar(&opts.output, "o", "", "write the symbol table to this file instead of stdout")
	case "watch":
		fs.DurationVar(&opts.debounce, "debounce", 0, "quiet period before re-running")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	opts.paths = fs.Args()
	return opts, nil
}

// loadConfig reads the configuration file and applies the flags on top.
func (o *options) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if len(o.paths) > 0 {
		cfg.Sources.Include = o.paths
	}
	if o.set["exclude"] {
		for _, p := range strings.Split(o.exclude, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Sources.Exclude = append(cfg.Sources.Exclude, p)
			}
		}
	}
	if o.set["workers"] {
		cfg.Workers = o.workers
	}
	if o.set["fail-fast"] {
		cfg.FailFast = o.failFast
	}
	if o.set["duplicates"] {
		cfg.Symbols.Duplicates = o.duplicates
	}
	if o.set["format"] {
		cfg.Output.Format = o.format
	}
	if o.set["o"] {
		cfg.Output.Path = o.output
	}
	if o.set["sqlite"] {
		cfg.Output.SQLite = o.sqlite
	}
	if o.set["log-level"] {
		cfg.Log.Level = o.logLevel
	}
	if o.set["log-format"] {
		cfg.Log.Format = o.logFormat
	}
	if o.set["log-file"] {
		cfg.Log.File = o.logFile
	}
	if o.set["metrics-addr"] {
		cfg.Metrics.Addr = o.metricsAddr
	}
	if o.set["debounce"] {
		cfg.Watch.Debounce = o.debounce
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *options) formatter(stderr io.Writer) *diagnostics.Formatter {
	color := false
	if f, ok := stderr.(*os.File); ok && !o.noColor {
		color = diagnostics.IsTerminal(f)
	}
	return diagnostics.NewFormatter(stderr, color)
}

// env is what every command needs once flags and configuration are resolved.
type env struct {
	cfg       *config.Config
	log       *slog.Logger
	formatter *diagnostics.Formatter
	close     func()
}

func setup(command string, args []string, stderr io.Writer) (*env, int) {
	opts, err := parseOptions(command, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exitOK
		}
		return nil, exitUsage
	}
	cfg, err := opts.loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return nil, exitUsage
	}

	log, closer, err := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  stderr,
		LogFile: cfg.Log.File,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return nil, exitUsage
	}
	slog.SetDefault(log)

	return &env{
		cfg:       cfg,
		log:       log,
		formatter: opts.formatter(stderr),
		close:     func() { _ = closer.Close() },
	}, exitOK
}
