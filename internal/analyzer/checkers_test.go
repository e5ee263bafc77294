package analyzer

import (
	"testing"

	"github.com/funvibe/classc/internal/ast"
	at "github.com/funvibe/classc/internal/ast/asttest"
	"github.com/funvibe/classc/internal/diagnostics"
)

func codes(errs []*diagnostics.DiagnosticError) []diagnostics.ErrorCode {
	out := make([]diagnostics.ErrorCode, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func expectCodes(t *testing.T, errs []*diagnostics.DiagnosticError, want ...diagnostics.ErrorCode) {
	t.Helper()
	got := codes(errs)
	if len(got) != len(want) {
		t.Fatalf("expected codes %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected codes %v, got %v", want, got)
		}
	}
}

func TestValidate_AcceptanceTable(t *testing.T) {
	body := func() []ast.Statement { return []ast.Statement{at.ReturnInt(0)} }
	method := func(attrs []string, withBody bool) *ast.Function {
		if withBody {
			return at.Func("m", "int", attrs, nil, body()...)
		}
		return at.Func("m", "int", attrs, nil)
	}

	tests := []struct {
		name string
		file *ast.File
		want []diagnostics.ErrorCode
	}{
		{
			name: "abstract method in abstract class",
			file: at.File("n", at.Class("C", at.Attrs("abstract"), method([]string{"abstract"}, false))),
		},
		{
			name: "abstract method in plain class",
			file: at.File("n", at.Class("C", nil, method([]string{"abstract"}, false))),
			want: []diagnostics.ErrorCode{diagnostics.ErrC002},
		},
		{
			name: "interface method with body",
			file: at.File("n", at.Class("I", at.Attrs("interface"), method(nil, true))),
			want: []diagnostics.ErrorCode{diagnostics.ErrC005},
		},
		{
			name: "interface method without body",
			file: at.File("n", at.Class("I", at.Attrs("interface"), method(nil, false))),
		},
		{
			name: "native method without body",
			file: at.File("n", at.Class("C", nil, method([]string{"native"}, false))),
		},
		{
			name: "native method with body",
			file: at.File("n", at.Class("C", nil, method([]string{"native"}, true))),
			want: []diagnostics.ErrorCode{diagnostics.ErrC006},
		},
		{
			name: "plain bodyless method",
			file: at.File("n", at.Class("C", nil, method(nil, false))),
			want: []diagnostics.ErrorCode{diagnostics.ErrC004},
		},
		{
			name: "plain method with body",
			file: at.File("n", at.Class("C", nil, method(nil, true))),
		},
		{
			name: "abstract and interface class",
			file: at.File("n", at.Class("C", at.Attrs("abstract", "interface"), method(nil, true))),
			want: []diagnostics.ErrorCode{diagnostics.ErrC001},
		},
		{
			name: "abstract native method",
			file: at.File("n", at.Class("C", at.Attrs("abstract"), method([]string{"abstract", "native"}, false))),
			want: []diagnostics.ErrorCode{diagnostics.ErrC003},
		},
		{
			name: "abstract method with body",
			file: at.File("n", at.Class("C", at.Attrs("abstract"), method([]string{"abstract"}, true))),
			want: []diagnostics.ErrorCode{diagnostics.ErrC007},
		},
		{
			name: "bodyless unmarked method in abstract class",
			file: at.File("n", at.Class("C", at.Attrs("abstract"), method(nil, false))),
		},
		{
			name: "native freestanding function with body",
			file: at.File("n", at.Func("f", "int", []string{"native"}, nil, body()...)),
			want: []diagnostics.ErrorCode{diagnostics.ErrF002},
		},
		{
			name: "native freestanding function without body",
			file: at.File("n", at.Func("f", "int", []string{"native"}, nil)),
		},
		{
			name: "abstract freestanding function without body",
			file: at.File("n", at.Func("f", "int", []string{"abstract"}, nil)),
			want: []diagnostics.ErrorCode{diagnostics.ErrF001},
		},
		{
			name: "abstract freestanding function with body",
			file: at.File("n", at.Func("f", "int", []string{"abstract"}, nil, body()...)),
			want: []diagnostics.ErrorCode{diagnostics.ErrF001},
		},
		{
			name: "freestanding function without body",
			file: at.File("n", at.Func("f", "int", nil, nil)),
			want: []diagnostics.ErrorCode{diagnostics.ErrF003},
		},
		{
			name: "freestanding function with body",
			file: at.File("n", at.Func("f", "int", nil, nil, body()...)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectCodes(t, Validate(tt.file), tt.want...)
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	f := at.File("geo", at.Class("Shape", nil, at.Func("area", "int", []string{"abstract"}, nil)))
	errs := Validate(f)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	e := errs[0]
	if e.Namespace != "geo" || e.Class != "Shape" || e.Member != "area" {
		t.Errorf("unexpected location %s.%s.%s", e.Namespace, e.Class, e.Member)
	}
	if e.File != "geo.ast.yaml" {
		t.Errorf("expected file geo.ast.yaml, got %q", e.File)
	}
	if e.Message != "no abstract methods allowed in non-abstract classes" {
		t.Errorf("unexpected message %q", e.Message)
	}
	fn := f.Classes()[0].Members[0].(*ast.Function)
	if e.Pos != fn.Pos {
		t.Errorf("expected position %s, got %s", fn.Pos, e.Pos)
	}
}

func TestValidate_BlockAttributesApply(t *testing.T) {
	// class C { native { int a(); abstract { int b(); } } }
	f := at.File("n", at.Class("C", nil,
		at.Block([]string{"native"},
			at.Func("a", "int", nil, nil),
			at.Block([]string{"abstract"}, at.Func("b", "int", nil, nil)),
		),
	))
	errs := Validate(f)
	// a is native via its block; b is abstract in a plain class.
	expectCodes(t, errs, diagnostics.ErrC002)
	if errs[0].Member != "b" {
		t.Errorf("expected the violation on b, got %q", errs[0].Member)
	}
}

func TestValidate_BlockAttributesDoNotLeak(t *testing.T) {
	// The native block must not cover the method declared after it.
	f := at.File("n", at.Class("C", nil,
		at.Block([]string{"native"}, at.Func("a", "int", nil, nil)),
		at.Func("b", "int", nil, nil),
	))
	errs := Validate(f)
	expectCodes(t, errs, diagnostics.ErrC004)
	if errs[0].Member != "b" {
		t.Errorf("expected the violation on b, got %q", errs[0].Member)
	}
}

func TestValidate_AccumulatesAcrossEntities(t *testing.T) {
	f := at.File("n",
		at.Class("A", nil, at.Func("x", "int", nil, nil), at.Func("y", "int", []string{"native"}, nil, at.ReturnInt(1))),
		at.Class("B", at.Attrs("interface"), at.Func("z", "int", nil, nil, at.ReturnInt(2))),
		at.Func("f", "int", []string{"abstract"}, nil),
	)
	expectCodes(t, Validate(f),
		diagnostics.ErrC004,
		diagnostics.ErrC006,
		diagnostics.ErrC005,
		diagnostics.ErrF001,
	)
}

func TestValidate_ClassStateResetsBetweenClasses(t *testing.T) {
	f := at.File("n",
		at.Class("A", at.Attrs("abstract"), at.Func("x", "int", []string{"abstract"}, nil)),
		at.Class("B", nil, at.Func("y", "int", []string{"abstract"}, nil)),
	)
	errs := Validate(f)
	expectCodes(t, errs, diagnostics.ErrC002)
	if errs[0].Class != "B" {
		t.Errorf("expected the violation in B, got %q", errs[0].Class)
	}
}

func TestValidate_FieldsIgnored(t *testing.T) {
	f := at.File("n", at.Class("C", nil, at.Field("f", "int", "abstract", "native")))
	expectCodes(t, Validate(f))
}

func TestReporter_Deduplicates(t *testing.T) {
	var r reporter
	r.currentFile = "a.ast.yaml"
	d := diagnostics.NewMemberError(diagnostics.ErrC004, "n", "C", "m", "", at.Func("m", "int", nil, nil).Pos)
	r.addError(d)
	r.addError(d)
	if len(r.errors) != 1 {
		t.Fatalf("expected 1 error after dedup, got %d", len(r.errors))
	}
	if r.errors[0].File != "a.ast.yaml" {
		t.Errorf("expected the current file to be filled in, got %q", r.errors[0].File)
	}
}
