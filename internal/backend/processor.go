package backend

import (
	"github.com/funvibe/classc/internal/diagnostics"
	"github.com/funvibe/classc/internal/observability"
	"github.com/funvibe/classc/internal/pipeline"
)

// HandoffProcessor implements pipeline.Processor to run backends.
type HandoffProcessor struct {
	Backends []Backend
}

// NewHandoffProcessor creates a new pipeline step for the given backends
func NewHandoffProcessor(backends ...Backend) *HandoffProcessor {
	return &HandoffProcessor{Backends: backends}
}

func (p *HandoffProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// No partial output: a run with errors hands nothing off.
	if ctx.SymbolTable == nil || ctx.HasErrors() {
		return ctx
	}

	for _, b := range p.Backends {
		_, stage := observability.StartStage(ctx.Context, "handoff")
		err := b.Emit(ctx)
		stage.End(err)
		if err != nil {
			ctx.Report(diagnostics.NewFileError(diagnostics.ErrO001, b.Name(), err))
			continue
		}
		ctx.StageLogger("handoff").Info("symbol table handed off", "backend", b.Name())
	}
	return ctx
}
