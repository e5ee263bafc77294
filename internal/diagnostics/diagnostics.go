// Package diagnostics defines the structured records produced by the
// front-end passes and the accumulator the driver collects them in.
package diagnostics

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/funvibe/classc/internal/token"
)

type ErrorCode string

const (
	// Class and method attribute violations
	ErrC001 ErrorCode = "C001"
	ErrC002 ErrorCode = "C002"
	ErrC003 ErrorCode = "C003"
	ErrC004 ErrorCode = "C004"
	ErrC005 ErrorCode = "C005"
	ErrC006 ErrorCode = "C006"
	ErrC007 ErrorCode = "C007"

	// Freestanding function attribute violations
	ErrF001 ErrorCode = "F001"
	ErrF002 ErrorCode = "F002"
	ErrF003 ErrorCode = "F003"

	// Source loading
	ErrI001 ErrorCode = "I001"
	ErrI002 ErrorCode = "I002"

	// Symbol tables
	ErrD001 ErrorCode = "D001"

	// Output
	ErrO001 ErrorCode = "O001"
)

var messages = map[ErrorCode]string{
	ErrC001: "cannot be abstract and interface at the same time",
	ErrC002: "no abstract methods allowed in non-abstract classes",
	ErrC003: "cannot be abstract and native at the same time",
	ErrC004: "bodyless methods in normal classes are only allowed if natives",
	ErrC005: "interfaces can only have bodyless methods",
	ErrC006: "native methods cannot have a body",
	ErrC007: "abstract methods cannot have a body",
	ErrF001: "freestanding functions cannot be abstract",
	ErrF002: "native freestanding functions cannot have a body",
	ErrF003: "non-native freestanding functions must have a body",
	ErrI001: "file not found",
	ErrI002: "malformed AST document",
	ErrD001: "duplicate declaration",
	ErrO001: "cannot write output",
}

// Message returns the default message of a code.
func Message(code ErrorCode) string {
	return messages[code]
}

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "Warning"
	}
	return "Error"
}

// DiagnosticError locates a violation: namespace, optional class, optional
// member (method, field or freestanding function), file and position.
type DiagnosticError struct {
	Code      ErrorCode
	Severity  Severity
	Message   string
	Namespace string
	Class     string
	Member    string
	File      string
	Pos       token.Position
}

// NewError builds an error with the default message of code.
func NewError(code ErrorCode, pos token.Position, file string) *DiagnosticError {
	return &DiagnosticError{Code: code, Message: messages[code], File: file, Pos: pos}
}

// NewClassError reports a violation on the class itself.
func NewClassError(code ErrorCode, namespace, class, file string, pos token.Position) *DiagnosticError {
	d := NewError(code, pos, file)
	d.Namespace = namespace
	d.Class = class
	return d
}

// NewMemberError reports a violation on a class member.
func NewMemberError(code ErrorCode, namespace, class, member, file string, pos token.Position) *DiagnosticError {
	d := NewClassError(code, namespace, class, file, pos)
	d.Member = member
	return d
}

// NewFunctionError reports a violation on a freestanding function.
func NewFunctionError(code ErrorCode, namespace, function, file string, pos token.Position) *DiagnosticError {
	d := NewError(code, pos, file)
	d.Namespace = namespace
	d.Member = function
	return d
}

// NewFileError wraps a loading failure.
func NewFileError(code ErrorCode, file string, err error) *DiagnosticError {
	d := NewError(code, token.Position{}, file)
	if err != nil {
		d.Message = fmt.Sprintf("%s: %v", d.Message, err)
	}
	return d
}

// Warning downgrades the diagnostic and returns it.
func (e *DiagnosticError) Warning() *DiagnosticError {
	e.Severity = SeverityWarning
	return e
}

// Subject renders the located entity, e.g. "Class member ns.C.m".
func (e *DiagnosticError) Subject() string {
	switch {
	case e.Class != "" && e.Member != "":
		return fmt.Sprintf("Class member %s.%s.%s", e.Namespace, e.Class, e.Member)
	case e.Class != "":
		return fmt.Sprintf("Class %s.%s", e.Namespace, e.Class)
	case e.Member != "":
		return fmt.Sprintf("Function %s.%s", e.Namespace, e.Member)
	case e.Namespace != "":
		return fmt.Sprintf("Namespace %s", e.Namespace)
	default:
		return "File"
	}
}

// Location renders "file: line,col".
func (e *DiagnosticError) Location() string {
	if !e.Pos.IsValid() {
		return e.File
	}
	return fmt.Sprintf("%s: %s", e.File, e.Pos)
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("[%s] %s: %s\n%s", e.Severity, e.Subject(), e.Message, e.Location())
}

func (e *DiagnosticError) key() string {
	return fmt.Sprintf("%s:%d:%d:%s:%s.%s.%s", e.File, e.Pos.Line, e.Pos.Column, e.Code, e.Namespace, e.Class, e.Member)
}

// List accumulates diagnostics from concurrent passes, deduplicating by
// location and code.
type List struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	items []*DiagnosticError
}

func (l *List) Add(diags ...*DiagnosticError) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seen == nil {
		l.seen = make(map[string]struct{})
	}
	for _, d := range diags {
		if d == nil {
			continue
		}
		k := d.key()
		if _, dup := l.seen[k]; dup {
			continue
		}
		l.seen[k] = struct{}{}
		l.items = append(l.items, d)
	}
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// HasErrors reports whether any diagnostic has error severity.
func (l *List) HasErrors() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, d := range l.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Sorted returns a copy ordered by file, position and code.
func (l *List) Sorted() []*DiagnosticError {
	l.mu.Lock()
	out := append([]*DiagnosticError(nil), l.items...)
	l.mu.Unlock()
	Sort(out)
	return out
}

// Sort orders diagnostics by file, line, column and code.
func Sort(diags []*DiagnosticError) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Pos.Line != b.Pos.Line {
			return a.Pos.Line < b.Pos.Line
		}
		if a.Pos.Column != b.Pos.Column {
			return a.Pos.Column < b.Pos.Column
		}
		return a.Code < b.Code
	})
}

// Join renders diagnostics the way the CLI prints them, separated by blank lines.
func Join(diags []*DiagnosticError) string {
	parts := make([]string, 0, len(diags))
	for _, d := range diags {
		parts = append(parts, d.Error())
	}
	return strings.Join(parts, "\n\n")
}
