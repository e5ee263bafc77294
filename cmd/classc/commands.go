package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/funvibe/classc/internal/analyzer"
	"github.com/funvibe/classc/internal/backend"
	"github.com/funvibe/classc/internal/observability"
	"github.com/funvibe/classc/internal/pipeline"
	"github.com/funvibe/classc/internal/prettyprinter"
	"github.com/funvibe/classc/internal/source"
	"github.com/funvibe/classc/internal/transform"
	"github.com/funvibe/classc/internal/watcher"
)

// frontEnd lists the stages shared by every command, up to normalization.
func frontEnd() []pipeline.Processor {
	return []pipeline.Processor{
		&source.LoadProcessor{},
		&analyzer.ValidationProcessor{},
		&transform.NormalizeProcessor{},
	}
}

// newPipeline builds the full chain: front end, symbol tables, then the
// given backends.
func newPipeline(backends ...backend.Backend) *pipeline.Pipeline {
	processors := append(frontEnd(), &analyzer.SymbolTableProcessor{})
	if len(backends) > 0 {
		processors = append(processors, backend.NewHandoffProcessor(backends...))
	}
	return pipeline.New(processors...)
}

// storeBackends returns the SQLite backend when one is configured.
func (e *env) storeBackends() []backend.Backend {
	if e.cfg.Output.SQLite == "" {
		return nil
	}
	return []backend.Backend{backend.NewStore(e.cfg.Output.SQLite)}
}

// execute runs p once and prints the diagnostics. It returns the exit code.
func (e *env) execute(ctx context.Context, p *pipeline.Pipeline) (*pipeline.PipelineContext, int) {
	ctx, stage := observability.StartStage(ctx, "run")
	pctx := pipeline.NewPipelineContext(ctx, e.cfg, e.log)
	stage.Span().SetAttributes(attribute.String("run", pctx.RunID))
	start := time.Now()

	pctx = p.Run(pctx)

	diags := pctx.Diagnostics.Sorted()
	e.formatter.PrintAll(diags)

	outcome := "ok"
	code := exitOK
	switch {
	case pctx.HasErrors():
		outcome, code = "error", exitDiagnostics
	case pctx.Context.Err() != nil:
		outcome, code = "cancelled", exitDiagnostics
	}
	observability.RunsTotal.WithLabelValues(outcome).Inc()
	stage.End(nil)

	pctx.Logger.Info("run finished",
		"outcome", outcome,
		"files", len(pctx.Files),
		"diagnostics", len(diags),
		"duration", time.Since(start))
	return pctx, code
}

// startMetrics serves Prometheus metrics when metrics.addr is set. The
// returned function stops the server.
func (e *env) startMetrics() (func(), error) {
	if e.cfg.Metrics.Addr == "" {
		return func() {}, nil
	}
	srv := observability.NewServer(e.cfg.Metrics.Addr)
	if err := srv.Start(); err != nil {
		return nil, fmt.Errorf("metrics server: %w", err)
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	}, nil
}

func runCheck(args []string, stdout, stderr io.Writer) int {
	e, code := setup("check", args, stderr)
	if e == nil {
		return code
	}
	defer e.close()

	pctx, code := e.execute(context.Background(), newPipeline(e.storeBackends()...))
	if code == exitOK {
		fmt.Fprintf(stdout, "%d files, %d namespaces, %d symbols: ok\n",
			len(pctx.Files), len(pctx.SymbolTable), pctx.SymbolTable.Count())
	}
	return code
}

func runSymbols(args []string, stdout, stderr io.Writer) int {
	e, code := setup("symbols", args, stderr)
	if e == nil {
		return code
	}
	defer e.close()

	backends := append([]backend.Backend{
		backend.NewExport(e.cfg.Output.Format, e.cfg.Output.Path, stdout),
	}, e.storeBackends()...)
	_, code = e.execute(context.Background(), newPipeline(backends...))
	return code
}

func runDump(args []string, stdout, stderr io.Writer) int {
	e, code := setup("dump", args, stderr)
	if e == nil {
		return code
	}
	defer e.close()

	pctx, code := e.execute(context.Background(), pipeline.New(frontEnd()...))
	if code != exitOK {
		return code
	}
	for i, f := range pctx.Files {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		fmt.Fprintf(stdout, "// %s\n", f.Path)
		fmt.Fprint(stdout, prettyprinter.Print(f))
	}
	return exitOK
}

func runWatch(args []string, stdout, stderr io.Writer) int {
	e, code := setup("watch", args, stderr)
	if e == nil {
		return code
	}
	defer e.close()

	stopMetrics, err := e.startMetrics()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return exitUsage
	}
	defer stopMetrics()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	p := newPipeline(e.storeBackends()...)
	rerun := func() {
		if _, code := e.execute(ctx, p); code == exitOK {
			fmt.Fprintln(stdout, "ok")
		}
	}
	rerun()

	w, err := watcher.NewWatcher(e.cfg.Watch.Debounce, e.cfg.Sources.Exclude, func(paths []string) {
		e.log.Info("change detected", "files", paths)
		rerun()
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return exitUsage
	}
	defer w.Close()
	w.SetLogger(e.log)

	if err := w.Watch(e.cfg.Sources.Include); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return exitUsage
	}
	e.log.Info("watching for changes", "paths", e.cfg.Sources.Include, "debounce", e.cfg.Watch.Debounce)

	<-ctx.Done()
	return exitOK
}
