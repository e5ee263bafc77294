// Package token holds source positions shared by the AST and diagnostics.
package token

import "fmt"

// Position is a 1-based line/column pair attached by the parser to every
// position-bearing node. It is only used for reporting.
type Position struct {
	Line   int `yaml:"line" json:"line"`
	Column int `yaml:"column" json:"column"`
}

// Pos is a shorthand constructor used by fixtures and decoders.
func Pos(line, column int) Position {
	return Position{Line: line, Column: column}
}

// IsValid reports whether the position was set by a parser.
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.Line, p.Column)
}
