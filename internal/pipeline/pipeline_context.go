package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/funvibe/classc/internal/ast"
	"github.com/funvibe/classc/internal/config"
	"github.com/funvibe/classc/internal/diagnostics"
	"github.com/funvibe/classc/internal/observability"
	"github.com/funvibe/classc/internal/symbols"
)

// PipelineContext carries the state of one run through every stage.
type PipelineContext struct {
	Context context.Context
	RunID   string
	Config  *config.Config
	Logger  *slog.Logger

	// Paths lists the documents to load, sorted.
	Paths []string
	// Files holds the decoded trees, in Paths order. Normalization replaces
	// them with their block-free form.
	Files []*ast.File

	Diagnostics *diagnostics.List

	SymbolTable symbols.GlobalSymbolTable
	Conflicts   []symbols.Conflict

	mu      sync.Mutex
	failed  map[string]bool
	stopped bool
}

// NewPipelineContext starts a run with a fresh run ID.
func NewPipelineContext(ctx context.Context, cfg *config.Config, logger *slog.Logger) *PipelineContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.NewString()
	return &PipelineContext{
		Context:     ctx,
		RunID:       runID,
		Config:      cfg,
		Logger:      logger.With("run", runID),
		Diagnostics: &diagnostics.List{},
		failed:      make(map[string]bool),
	}
}

// Report records diagnostics. Error-severity diagnostics mark their file as
// failed so later per-file stages skip it.
func (c *PipelineContext) Report(diags ...*diagnostics.DiagnosticError) {
	if len(diags) == 0 {
		return
	}
	c.Diagnostics.Add(diags...)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range diags {
		if d == nil {
			continue
		}
		observability.DiagnosticsTotal.WithLabelValues(string(d.Code), d.Severity.String()).Inc()
		if d.Severity == diagnostics.SeverityError && d.File != "" {
			c.failed[d.File] = true
		}
	}
}

// Failed reports whether an error was recorded against path.
func (c *PipelineContext) Failed(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed[path]
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (c *PipelineContext) HasErrors() bool {
	return c.Diagnostics.HasErrors()
}

// Stop ends the run after the current stage.
func (c *PipelineContext) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
}

// Stopped reports whether the run was stopped or its context cancelled.
func (c *PipelineContext) Stopped() bool {
	c.mu.Lock()
	stopped := c.stopped
	c.mu.Unlock()
	return stopped || c.Context.Err() != nil
}

// StageLogger returns the run logger tagged with a stage name.
func (c *PipelineContext) StageLogger(stage string) *slog.Logger {
	return c.Logger.With("stage", stage)
}
