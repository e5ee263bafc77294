// Package pipeline chains the front-end stages. Each stage is a Processor
// that reads and extends a shared PipelineContext.
package pipeline

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		if ctx.Stopped() {
			break
		}
		ctx = processor.Process(ctx)
		// Stages continue on errors to collect the diagnostics of every file,
		// unless the run is configured to stop at the first failing file.
		if ctx.Config.FailFast && ctx.Diagnostics.HasErrors() {
			ctx.Stop()
		}
	}
	return ctx
}
