package transform

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/funvibe/classc/internal/ast"
	"github.com/funvibe/classc/internal/diagnostics"
	"github.com/funvibe/classc/internal/observability"
	"github.com/funvibe/classc/internal/pipeline"
)

// NormalizeProcessor flattens the blocks of every file that passed
// validation. Files are rewritten in place, each by a single worker.
type NormalizeProcessor struct{}

func (np *NormalizeProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.Files) == 0 {
		return ctx
	}
	_, stage := observability.StartStage(ctx.Context, "normalize", attribute.Int("files", len(ctx.Files)))
	log := ctx.StageLogger("normalize")

	ctx.ForEachFile("normalize", func(_ context.Context, f *ast.File) []*diagnostics.DiagnosticError {
		ExpandBlocks(f)
		log.Debug("normalized file", "path", f.Path)
		return nil
	})

	stage.End(nil)
	return ctx
}
