// Package backend hands the finished symbol table to its consumers. This
// allows switching between writing an export and persisting to SQLite, or
// doing both.
package backend

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/funvibe/classc/internal/export"
	"github.com/funvibe/classc/internal/pipeline"
	"github.com/funvibe/classc/internal/symstore"
)

// Backend is the interface for symbol table consumers
type Backend interface {
	// Emit consumes ctx.SymbolTable
	Emit(ctx *pipeline.PipelineContext) error

	// Name returns the backend name for display
	Name() string
}

// ExportBackend writes the table in an export format, to a file or a writer.
type ExportBackend struct {
	Format string
	Path   string    // written atomically when set
	Writer io.Writer // used when Path is empty
}

func NewExport(format, path string, w io.Writer) *ExportBackend {
	return &ExportBackend{Format: format, Path: path, Writer: w}
}

func (b *ExportBackend) Name() string { return "export:" + b.Format }

func (b *ExportBackend) Emit(ctx *pipeline.PipelineContext) error {
	if b.Path == "" {
		w := b.Writer
		if w == nil {
			w = os.Stdout
		}
		return export.Encode(w, ctx.SymbolTable, b.Format)
	}

	if dir := filepath.Dir(b.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", dir, err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(b.Path), ".classc-*")
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := export.Encode(tmp, ctx.SymbolTable, b.Format); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", b.Path, err)
	}
	if err := os.Rename(tmp.Name(), b.Path); err != nil {
		return fmt.Errorf("write %s: %w", b.Path, err)
	}
	return nil
}

// StoreBackend saves the table in a SQLite snapshot keyed by the run ID.
type StoreBackend struct {
	Path string
}

func NewStore(path string) *StoreBackend {
	return &StoreBackend{Path: path}
}

func (b *StoreBackend) Name() string { return "sqlite" }

func (b *StoreBackend) Emit(ctx *pipeline.PipelineContext) error {
	store, err := symstore.Open(b.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(ctx.Context, ctx.RunID, ctx.SymbolTable)
}
