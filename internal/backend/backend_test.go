package backend

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/classc/internal/ast"
	at "github.com/funvibe/classc/internal/ast/asttest"
	"github.com/funvibe/classc/internal/config"
	"github.com/funvibe/classc/internal/diagnostics"
	"github.com/funvibe/classc/internal/logger"
	"github.com/funvibe/classc/internal/pipeline"
	"github.com/funvibe/classc/internal/symbols"
	"github.com/funvibe/classc/internal/symstore"
	"github.com/funvibe/classc/internal/token"
)

func newContext(t *testing.T) *pipeline.PipelineContext {
	t.Helper()
	file := at.File("geo", at.Class("Shape", at.Attrs("abstract"),
		at.Func("area", "int", []string{"abstract"}, at.Params("scale", "int")),
	))
	gst, _ := symbols.Build(map[string][]*ast.File{"geo": {file}})
	ctx := pipeline.NewPipelineContext(context.Background(), config.Default(), logger.Discard())
	ctx.SymbolTable = gst
	return ctx
}

type failingBackend struct{}

func (failingBackend) Name() string                          { return "broken" }
func (failingBackend) Emit(*pipeline.PipelineContext) error { return errors.New("disk full") }

func TestExportBackend_Writer(t *testing.T) {
	ctx := newContext(t)
	var buf bytes.Buffer
	NewHandoffProcessor(NewExport(config.FormatText, "", &buf)).Process(ctx)

	var want bytes.Buffer
	require.NoError(t, ctx.SymbolTable.Render(&want))
	assert.Equal(t, want.String(), buf.String())
	assert.False(t, ctx.HasErrors())
}

func TestExportBackend_PathCreatesDirectories(t *testing.T) {
	ctx := newContext(t)
	path := filepath.Join(t.TempDir(), "out", "symbols.yaml")

	require.NoError(t, NewExport(config.FormatYAML, path, nil).Emit(ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Shape:")
	assert.Contains(t, string(data), "scale:")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestStoreBackend_SavesRun(t *testing.T) {
	ctx := newContext(t)
	path := filepath.Join(t.TempDir(), "symbols.db")

	NewHandoffProcessor(NewStore(path)).Process(ctx)
	require.False(t, ctx.HasErrors())

	store, err := symstore.Open(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Load(context.Background(), ctx.RunID)
	require.NoError(t, err)
	assert.Equal(t, ctx.SymbolTable, got)
}

func TestHandoffProcessor_SkipsOnErrors(t *testing.T) {
	ctx := newContext(t)
	ctx.Report(diagnostics.NewError(diagnostics.ErrC004, token.Position{}, "geo.ast.yaml"))

	var buf bytes.Buffer
	NewHandoffProcessor(NewExport(config.FormatText, "", &buf)).Process(ctx)
	assert.Empty(t, buf.String())
}

func TestHandoffProcessor_SkipsWithoutTable(t *testing.T) {
	ctx := newContext(t)
	ctx.SymbolTable = nil

	var buf bytes.Buffer
	NewHandoffProcessor(NewExport(config.FormatText, "", &buf)).Process(ctx)
	assert.Empty(t, buf.String())
}

func TestHandoffProcessor_ReportsFailures(t *testing.T) {
	ctx := newContext(t)
	var buf bytes.Buffer
	NewHandoffProcessor(failingBackend{}, NewExport(config.FormatText, "", &buf)).Process(ctx)

	diags := ctx.Diagnostics.Sorted()
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.ErrO001, diags[0].Code)
	assert.Contains(t, diags[0].Message, "disk full")
	assert.NotEmpty(t, buf.String(), "later backends still run")
}
