package source

import (
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/funvibe/classc/internal/ast"
	"github.com/funvibe/classc/internal/diagnostics"
	"github.com/funvibe/classc/internal/observability"
	"github.com/funvibe/classc/internal/pipeline"
)

// LoadProcessor decodes the documents listed in ctx.Paths. When Paths is
// empty it discovers them from the configured sources first.
type LoadProcessor struct{}

func (lp *LoadProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	_, stage := observability.StartStage(ctx.Context, "load")
	log := ctx.StageLogger("load")

	if len(ctx.Paths) == 0 {
		paths, err := Discover(ctx.Config.Sources.Include, ctx.Config.Sources.Exclude)
		if err != nil {
			ctx.Report(diagnostics.NewFileError(diagnostics.ErrI001, "", err))
			stage.End(err)
			return ctx
		}
		ctx.Paths = paths
	}
	stage.Span().SetAttributes(attribute.Int("files", len(ctx.Paths)))
	if len(ctx.Paths) == 0 {
		log.Warn("no AST documents found", "include", ctx.Config.Sources.Include)
		stage.End(nil)
		return ctx
	}

	files := make([]*ast.File, len(ctx.Paths))
	var mu sync.Mutex
	var diags []*diagnostics.DiagnosticError

	g, gctx := errgroup.WithContext(ctx.Context)
	if ctx.Config.Workers > 0 {
		g.SetLimit(ctx.Config.Workers)
	}
	for i, path := range ctx.Paths {
		i, path := i, path
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			f, diag := Load(path)
			observability.FilesProcessedTotal.WithLabelValues("load").Inc()
			if diag != nil {
				mu.Lock()
				diags = append(diags, diag)
				mu.Unlock()
				if ctx.Config.FailFast {
					return diag
				}
				return nil
			}
			files[i] = f
			log.Debug("loaded file", "path", path, "namespace", f.Namespace, "entities", len(f.Entities))
			return nil
		})
	}
	err := g.Wait()

	ctx.Report(diags...)
	ctx.Files = ctx.Files[:0]
	for _, f := range files {
		if f != nil {
			ctx.Files = append(ctx.Files, f)
		}
	}
	if len(diags) > 0 {
		err = fmt.Errorf("%d documents failed to load", len(diags))
	}
	stage.End(err)
	return ctx
}
