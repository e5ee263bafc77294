package pipeline

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/funvibe/classc/internal/ast"
	"github.com/funvibe/classc/internal/diagnostics"
	"github.com/funvibe/classc/internal/observability"
)

var errFailFast = errors.New("stopping at first file with errors")

// FileFunc runs one per-file stage on one tree and returns its diagnostics.
// It must not touch state shared with other files.
type FileFunc func(ctx context.Context, f *ast.File) []*diagnostics.DiagnosticError

// ForEachFile runs fn over every file not already failed, at most
// Config.Workers at a time. Diagnostics are reported as files complete.
// With fail_fast, the first file reporting an error cancels the files not yet
// started.
func (c *PipelineContext) ForEachFile(stage string, fn FileFunc) {
	g, gctx := errgroup.WithContext(c.Context)
	if c.Config.Workers > 0 {
		g.SetLimit(c.Config.Workers)
	}

	for _, f := range c.Files {
		if c.Failed(f.Path) {
			continue
		}
		f := f
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			diags := fn(gctx, f)
			observability.FilesProcessedTotal.WithLabelValues(stage).Inc()
			c.Report(diags...)
			if c.Config.FailFast && hasError(diags) {
				return errFailFast
			}
			return nil
		})
	}

	if err := g.Wait(); errors.Is(err, errFailFast) {
		c.Stop()
	}
}

func hasError(diags []*diagnostics.DiagnosticError) bool {
	for _, d := range diags {
		if d != nil && d.Severity == diagnostics.SeverityError {
			return true
		}
	}
	return false
}

// Healthy returns the files that have no error recorded against them.
func (c *PipelineContext) Healthy() []*ast.File {
	out := make([]*ast.File, 0, len(c.Files))
	for _, f := range c.Files {
		if !c.Failed(f.Path) {
			out = append(out, f)
		}
	}
	return out
}
