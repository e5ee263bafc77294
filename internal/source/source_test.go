package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/funvibe/classc/internal/ast"
	"github.com/funvibe/classc/internal/config"
	"github.com/funvibe/classc/internal/diagnostics"
	"github.com/funvibe/classc/internal/logger"
	"github.com/funvibe/classc/internal/pipeline"
	"github.com/funvibe/classc/internal/token"
)

const shapesDoc = `
namespace: geo
imports: [std]
entities:
  - class:
      pos: [1, 1]
      attributes: [{name: abstract, pos: [1, 1]}]
      name: Shape
      super: Object
      interfaces: [Drawable]
      members:
        - field: {pos: [2, 5], name: id, type: int}
        - function: {pos: [3, 5], attributes: [abstract], name: area, return_type: int}
        - block:
            pos: [4, 5]
            attributes: [native]
            members:
              - method:
                  pos: [5, 9]
                  name: draw
                  params: [{pos: [5, 18], name: scale, type: int}]
                  return_type: bool
  - function:
      pos: [8, 1]
      name: main
      return_type: int
      statements:
        - let:
            pos: [9, 5]
            name: f
            type: Fn
            value:
              qualified:
                pos: [9, 13]
                parts:
                  - closure:
                      pos: [9, 13]
                      params: [{pos: [9, 15], name: x, type: int}]
                      return_type: int
                      statements:
                        - return:
                            pos: [9, 30]
                            value:
                              operation:
                                pos: [9, 37]
                                op: "*"
                                left: {qualified: {pos: [9, 37], parts: [{identifier: {pos: [9, 37], name: x}}]}}
                                right: {qualified: {pos: [9, 41], parts: [{int: {pos: [9, 41], value: 2}}]}}
        - assign:
            pos: [10, 5]
            receiver: {pos: [10, 5], parts: [{identifier: {pos: [10, 5], name: out}}]}
            value:
              qualified:
                pos: [10, 11]
                parts:
                  - call: {pos: [10, 11], name: print, args: [{qualified: {pos: [10, 17], parts: [{string: {pos: [10, 17], value: hi}}]}}]}
                  - char: {pos: [10, 25], value: "c"}
                  - bool: {pos: [10, 29], value: true}
                  - null: {pos: [10, 35]}
                  - paren: {pos: [10, 40], expr: {qualified: {pos: [10, 41], parts: [{identifier: {pos: [10, 41], name: y}}]}}}
        - qualified: {pos: [11, 5], parts: [{call: {pos: [11, 5], name: flush}}]}
        - return: {pos: [12, 5]}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDecode_FullDocument(t *testing.T) {
	f, err := Decode([]byte(shapesDoc), "shapes.ast.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Namespace != "geo" || f.Path != "shapes.ast.yaml" || len(f.Imports) != 1 {
		t.Fatalf("unexpected file header: %+v", f)
	}
	if len(f.Entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(f.Entities))
	}

	class := f.Classes()[0]
	if class.Name != "Shape" || class.SuperName != "Object" || class.Interfaces[0] != "Drawable" {
		t.Errorf("unexpected class header: %+v", class)
	}
	if !class.IsAbstract() || class.Pos != token.Pos(1, 1) {
		t.Errorf("expected abstract class at 1,1, got %v at %s", ast.AttributeNames(class.Attributes), class.Pos)
	}
	if len(class.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(class.Members))
	}
	area := class.Members[1].(*ast.Function)
	if area.HasBody() || !ast.HasAttribute(area.Attributes, ast.AttrAbstract) {
		t.Errorf("expected a bodyless abstract method, got %+v", area)
	}
	block := class.Members[2].(*ast.Block)
	draw := block.Members[0].(*ast.Function)
	if draw.Params[0].Name != "scale" || draw.Params[0].Pos != token.Pos(5, 18) {
		t.Errorf("unexpected param %+v", draw.Params[0])
	}

	main := f.Functions()[0]
	if len(main.Statements) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(main.Statements))
	}
	let := main.Statements[0].(*ast.VariableDeclaration)
	closure := let.Value.(*ast.QualifiedExpression).Parts[0].(*ast.Closure)
	ret := closure.Statements[0].(*ast.ReturnStatement)
	op := ret.Value.(*ast.Operation)
	if op.Op != ast.OpTimes {
		t.Errorf("expected *, got %s", op.Op)
	}

	assign := main.Statements[1].(*ast.VariableAffectation)
	parts := assign.Value.(*ast.QualifiedExpression).Parts
	if len(parts) != 5 {
		t.Fatalf("expected 5 parts, got %d", len(parts))
	}
	if c := parts[1].(*ast.CharLiteral); c.Value != 'c' {
		t.Errorf("expected char c, got %q", c.Value)
	}
	if _, ok := parts[3].(*ast.NullLiteral); !ok {
		t.Errorf("expected null literal, got %T", parts[3])
	}
	if _, ok := main.Statements[2].(*ast.QualifiedExpression); !ok {
		t.Errorf("expected expression statement, got %T", main.Statements[2])
	}
	if r := main.Statements[3].(*ast.ReturnStatement); r.Value != nil {
		t.Errorf("expected bare return, got %v", r.Value)
	}
}

func TestDecode_JSON(t *testing.T) {
	doc := `{"namespace": "n", "entities": [{"function": {"pos": [1, 1], "name": "f", "attributes": ["native"], "return_type": "int"}}]}`
	f, err := Decode([]byte(doc), "f.ast.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := f.Functions()[0]
	if fn.Name != "f" || !ast.HasAttribute(fn.Attributes, ast.AttrNative) {
		t.Errorf("unexpected function %+v", fn)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing namespace", "entities: []"},
		{"unknown entity", "namespace: n\nentities: [{struct: {name: S}}]"},
		{"two keys", "namespace: n\nentities: [{class: {name: C}, function: {name: f}}]"},
		{"bad position", "namespace: n\nentities: [{class: {name: C, pos: [1]}}]"},
		{"unknown operator", "namespace: n\nentities: [{function: {name: f, statements: [{return: {value: {operation: {op: '^'}}}}]}}]"},
		{"long char", "namespace: n\nentities: [{function: {name: f, statements: [{qualified: {parts: [{char: {value: ab}}]}}]}}]"},
		{"syntax", "namespace: [n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.doc), "x.ast.yaml"); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoad_Diagnostics(t *testing.T) {
	dir := t.TempDir()

	_, diag := Load(filepath.Join(dir, "missing.ast.yaml"))
	if diag == nil || diag.Code != diagnostics.ErrI001 {
		t.Fatalf("expected I001, got %v", diag)
	}

	bad := writeFile(t, dir, "bad.ast.yaml", "namespace: n\nentities: [{struct: {}}]")
	_, diag = Load(bad)
	if diag == nil || diag.Code != diagnostics.ErrI002 {
		t.Fatalf("expected I002, got %v", diag)
	}
	if diag.File != bad {
		t.Errorf("expected file %s, got %s", bad, diag.File)
	}

	good := writeFile(t, dir, "good.ast.yaml", shapesDoc)
	f, diag := Load(good)
	if diag != nil {
		t.Fatalf("unexpected diagnostic: %v", diag)
	}
	if f.Namespace != "geo" || f.Path != good {
		t.Errorf("unexpected file header %s %s", f.Namespace, f.Path)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.ast.yaml", "")
	writeFile(t, dir, "a.ast.json", "")
	writeFile(t, dir, "notes.yaml", "")
	writeFile(t, dir, "sub/c.ast.yml", "")
	writeFile(t, dir, "generated/d.ast.yaml", "")
	writeFile(t, dir, "sub/skip_me.ast.yaml", "")

	files, err := Discover([]string{dir, filepath.Join(dir, "b.ast.yaml")}, []string{"generated", "skip_*"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.ast.json"),
		filepath.Join(dir, "b.ast.yaml"),
		filepath.Join(dir, "sub", "c.ast.yml"),
	}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("file %d: expected %s, got %s", i, want[i], files[i])
		}
	}

	if _, err := Discover([]string{filepath.Join(dir, "nope")}, nil); err == nil {
		t.Error("expected an error for a missing root")
	}
	if _, err := Discover([]string{dir}, []string{"[unclosed"}); err == nil {
		t.Error("expected an error for a bad pattern")
	}
}

func TestGroupByNamespace_SortsByPath(t *testing.T) {
	mk := func(path, ns string) *ast.File {
		return &ast.File{Path: path, Namespace: ns}
	}
	groups := GroupByNamespace([]*ast.File{
		mk("z.ast.yaml", "a"),
		mk("m.ast.yaml", "b"),
		mk("c.ast.yaml", "a"),
	})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	a := groups["a"]
	if a[0].Path != "c.ast.yaml" || a[1].Path != "z.ast.yaml" {
		t.Errorf("expected files sorted by path, got %s, %s", a[0].Path, a[1].Path)
	}
}

func TestLoadProcessor_DiscoversAndDecodes(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "geo.ast.yaml", shapesDoc)
	bad := writeFile(t, dir, "bad.ast.yaml", "namespace: n\nentities: [{struct: {}}]")

	cfg := config.Default()
	cfg.Sources.Include = []string{dir}
	cfg.Workers = 2
	ctx := pipeline.NewPipelineContext(context.Background(), cfg, logger.Discard())

	ctx = (&LoadProcessor{}).Process(ctx)

	if len(ctx.Paths) != 2 {
		t.Fatalf("expected 2 discovered paths, got %v", ctx.Paths)
	}
	if len(ctx.Files) != 1 || ctx.Files[0].Path != good {
		t.Fatalf("expected only %s to load, got %d files", good, len(ctx.Files))
	}
	diags := ctx.Diagnostics.Sorted()
	if len(diags) != 1 || diags[0].Code != diagnostics.ErrI002 || diags[0].File != bad {
		t.Fatalf("expected one I002 for %s, got %v", bad, diags)
	}
	if !ctx.HasErrors() {
		t.Error("expected the run to carry errors")
	}
}

func TestLoadProcessor_NoDocuments(t *testing.T) {
	cfg := config.Default()
	cfg.Sources.Include = []string{t.TempDir()}
	ctx := pipeline.NewPipelineContext(context.Background(), cfg, logger.Discard())

	ctx = (&LoadProcessor{}).Process(ctx)

	if len(ctx.Files) != 0 || ctx.HasErrors() {
		t.Errorf("expected an empty, clean run, got %d files and errors=%v", len(ctx.Files), ctx.HasErrors())
	}
}
