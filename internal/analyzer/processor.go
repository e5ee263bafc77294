package analyzer

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/funvibe/classc/internal/ast"
	"github.com/funvibe/classc/internal/config"
	"github.com/funvibe/classc/internal/diagnostics"
	"github.com/funvibe/classc/internal/observability"
	"github.com/funvibe/classc/internal/pipeline"
	"github.com/funvibe/classc/internal/source"
	"github.com/funvibe/classc/internal/symbols"
)

// ValidationProcessor runs the attribute validators over every loaded file.
type ValidationProcessor struct{}

func (vp *ValidationProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.Files) == 0 {
		return ctx
	}
	_, stage := observability.StartStage(ctx.Context, "validate", attribute.Int("files", len(ctx.Files)))
	log := ctx.StageLogger("validate")

	ctx.ForEachFile("validate", func(_ context.Context, f *ast.File) []*diagnostics.DiagnosticError {
		errs := Validate(f)
		log.Debug("validated file", "path", f.Path, "errors", len(errs))
		return errs
	})

	stage.End(nil)
	return ctx
}

// SymbolTableProcessor builds the global symbol table, one worker per
// namespace. It only runs when no error was reported so far: a run with
// errors produces no table.
type SymbolTableProcessor struct{}

func (sp *SymbolTableProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.Files) == 0 || ctx.HasErrors() {
		return ctx
	}
	_, stage := observability.StartStage(ctx.Context, "symbols", attribute.Int("files", len(ctx.Files)))
	log := ctx.StageLogger("symbols")

	groups := source.GroupByNamespace(ctx.Files)
	gst := make(symbols.GlobalSymbolTable, len(groups))
	conflicts := make(map[string][]symbols.Conflict, len(groups))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx.Context)
	if ctx.Config.Workers > 0 {
		g.SetLimit(ctx.Config.Workers)
	}
	for ns, files := range groups {
		ns, files := ns, files
		g.Go(func() error {
			nst, c := symbols.BuildNamespace(ns, files)
			log.Debug("built namespace", "namespace", ns, "files", len(files), "symbols", len(nst))

			mu.Lock()
			defer mu.Unlock()
			gst[ns] = nst
			conflicts[ns] = c
			return nil
		})
	}
	_ = g.Wait()

	ctx.Conflicts = ctx.Conflicts[:0]
	for _, ns := range gst.Namespaces() {
		ctx.Conflicts = append(ctx.Conflicts, conflicts[ns]...)
	}
	ctx.Report(conflictDiagnostics(ctx.Conflicts, ctx.Config.Symbols.Duplicates)...)
	observability.DuplicateSymbolsTotal.Add(float64(len(ctx.Conflicts)))

	if ctx.HasErrors() {
		stage.End(fmt.Errorf("%d duplicate declarations", len(ctx.Conflicts)))
		return ctx
	}

	ctx.SymbolTable = gst
	observability.NamespacesTotal.Set(float64(len(gst)))
	observability.SymbolsTotal.Set(float64(gst.Count()))
	log.Info("symbol table built", "namespaces", len(gst), "symbols", gst.Count(), "duplicates", len(ctx.Conflicts))
	stage.End(nil)
	return ctx
}

// conflictDiagnostics turns redeclarations into D001 diagnostics, warnings
// unless policy is config.DuplicatesError.
func conflictDiagnostics(conflicts []symbols.Conflict, policy string) []*diagnostics.DiagnosticError {
	out := make([]*diagnostics.DiagnosticError, 0, len(conflicts))
	for _, c := range conflicts {
		d := diagnostics.NewError(diagnostics.ErrD001, c.Current.GetPos(), c.File)
		d.Namespace = c.Namespace
		d.Message = fmt.Sprintf("%s: %s", d.Message, c)
		if policy != config.DuplicatesError {
			d.Warning()
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out
}
