package source

import (
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/classc/internal/ast"
	"github.com/funvibe/classc/internal/token"
)

// The documents mirror the AST one to one. Union nodes (entities, members,
// statements, expressions, qualified-expression parts) are single-key
// mappings whose key names the variant:
//
//	entities:
//	  - class:
//	      pos: [1, 1]
//	      attributes: [{name: abstract, pos: [1, 1]}]
//	      name: Shape
//	      members:
//	        - function: {pos: [2, 5], name: area, return_type: int}

type position token.Position

func (p *position) UnmarshalYAML(n *yaml.Node) error {
	var pair []int
	if err := n.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: pos must be [line, column]", n.Line)
	}
	*p = position(token.Pos(pair[0], pair[1]))
	return nil
}

func (p position) pos() token.Position { return token.Position(p) }

// variant splits a single-key mapping into its key and value.
func variant(n *yaml.Node, what string) (string, *yaml.Node, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return "", nil, fmt.Errorf("line %d: %s must be a mapping with exactly one key", n.Line, what)
	}
	return n.Content[0].Value, n.Content[1], nil
}

func unknown(key *yaml.Node, what string) error {
	return fmt.Errorf("line %d: unknown %s %q", key.Line, what, key.Value)
}

type fileDoc struct {
	Namespace string      `yaml:"namespace"`
	Imports   []string    `yaml:"imports"`
	Entities  []entityDoc `yaml:"entities"`
}

func (d *fileDoc) build(path string) (*ast.File, error) {
	if d.Namespace == "" {
		return nil, fmt.Errorf("namespace is required")
	}
	f := &ast.File{Path: path, Namespace: d.Namespace, Imports: d.Imports}
	for _, e := range d.Entities {
		f.Entities = append(f.Entities, e.node)
	}
	return f, nil
}

type attributeDoc struct {
	node *ast.Attribute
}

// An attribute is {name, pos} or a bare name.
func (d *attributeDoc) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		d.node = &ast.Attribute{Name: n.Value}
		return nil
	}
	var raw struct {
		Pos  position `yaml:"pos"`
		Name string   `yaml:"name"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	d.node = &ast.Attribute{Pos: raw.Pos.pos(), Name: raw.Name}
	return nil
}

func attributes(docs []attributeDoc) []*ast.Attribute {
	out := make([]*ast.Attribute, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.node)
	}
	return out
}

type paramDoc struct {
	Pos  position `yaml:"pos"`
	Name string   `yaml:"name"`
	Type string   `yaml:"type"`
}

func params(docs []paramDoc) []*ast.Param {
	var out []*ast.Param
	for _, d := range docs {
		out = append(out, &ast.Param{Pos: d.Pos.pos(), Name: d.Name, TypeName: d.Type})
	}
	return out
}

type classDoc struct {
	Pos        position       `yaml:"pos"`
	Attributes []attributeDoc `yaml:"attributes"`
	Name       string         `yaml:"name"`
	Super      string         `yaml:"super"`
	Interfaces []string       `yaml:"interfaces"`
	Members    []memberDoc    `yaml:"members"`
}

func (d *classDoc) build() *ast.Class {
	c := &ast.Class{
		Pos:        d.Pos.pos(),
		Attributes: attributes(d.Attributes),
		Name:       d.Name,
		SuperName:  d.Super,
		Interfaces: d.Interfaces,
	}
	for _, m := range d.Members {
		c.Members = append(c.Members, m.node)
	}
	return c
}

type functionDoc struct {
	Pos        position       `yaml:"pos"`
	Attributes []attributeDoc `yaml:"attributes"`
	Name       string         `yaml:"name"`
	Params     []paramDoc     `yaml:"params"`
	ReturnType string         `yaml:"return_type"`
	Statements []statementDoc `yaml:"statements"`
}

func (d *functionDoc) build() *ast.Function {
	return &ast.Function{
		Pos:        d.Pos.pos(),
		Attributes: attributes(d.Attributes),
		Name:       d.Name,
		Params:     params(d.Params),
		ReturnType: d.ReturnType,
		Statements: statements(d.Statements),
	}
}

type entityDoc struct {
	node ast.Entity
}

func (d *entityDoc) UnmarshalYAML(n *yaml.Node) error {
	key, value, err := variant(n, "entity")
	if err != nil {
		return err
	}
	switch key {
	case "class":
		var c classDoc
		if err := value.Decode(&c); err != nil {
			return err
		}
		d.node = c.build()
	case "function":
		var f functionDoc
		if err := value.Decode(&f); err != nil {
			return err
		}
		d.node = f.build()
	default:
		return unknown(n.Content[0], "entity")
	}
	return nil
}

type fieldDoc struct {
	Pos        position       `yaml:"pos"`
	Attributes []attributeDoc `yaml:"attributes"`
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
}

type blockDoc struct {
	Pos        position       `yaml:"pos"`
	Attributes []attributeDoc `yaml:"attributes"`
	Members    []memberDoc    `yaml:"members"`
}

type memberDoc struct {
	node ast.ClassMember
}

func (d *memberDoc) UnmarshalYAML(n *yaml.Node) error {
	key, value, err := variant(n, "class member")
	if err != nil {
		return err
	}
	switch key {
	case "field":
		var f fieldDoc
		if err := value.Decode(&f); err != nil {
			return err
		}
		d.node = &ast.Field{Pos: f.Pos.pos(), Attributes: attributes(f.Attributes), Name: f.Name, TypeName: f.Type}
	case "function", "method":
		var f functionDoc
		if err := value.Decode(&f); err != nil {
			return err
		}
		d.node = f.build()
	case "block":
		var b blockDoc
		if err := value.Decode(&b); err != nil {
			return err
		}
		block := &ast.Block{Pos: b.Pos.pos(), Attributes: attributes(b.Attributes)}
		for _, m := range b.Members {
			block.Members = append(block.Members, m.node)
		}
		d.node = block
	default:
		return unknown(n.Content[0], "class member")
	}
	return nil
}

type statementDoc struct {
	node ast.Statement
}

func statements(docs []statementDoc) []ast.Statement {
	var out []ast.Statement
	for _, d := range docs {
		out = append(out, d.node)
	}
	return out
}

func (d *statementDoc) UnmarshalYAML(n *yaml.Node) error {
	key, value, err := variant(n, "statement")
	if err != nil {
		return err
	}
	switch key {
	case "return":
		var r struct {
			Pos   position `yaml:"pos"`
			Value *exprDoc `yaml:"value"`
		}
		if err := value.Decode(&r); err != nil {
			return err
		}
		d.node = &ast.ReturnStatement{Pos: r.Pos.pos(), Value: r.Value.expression()}
	case "let":
		var v struct {
			Pos   position `yaml:"pos"`
			Name  string   `yaml:"name"`
			Type  string   `yaml:"type"`
			Value *exprDoc `yaml:"value"`
		}
		if err := value.Decode(&v); err != nil {
			return err
		}
		d.node = &ast.VariableDeclaration{Pos: v.Pos.pos(), Name: v.Name, TypeName: v.Type, Value: v.Value.expression()}
	case "assign":
		var a struct {
			Pos      position     `yaml:"pos"`
			Receiver qualifiedDoc `yaml:"receiver"`
			Value    *exprDoc     `yaml:"value"`
		}
		if err := value.Decode(&a); err != nil {
			return err
		}
		if a.Value == nil {
			return fmt.Errorf("line %d: assign requires a value", value.Line)
		}
		d.node = &ast.VariableAffectation{Pos: a.Pos.pos(), Receiver: a.Receiver.build(), Value: a.Value.expression()}
	case "qualified":
		var q qualifiedDoc
		if err := value.Decode(&q); err != nil {
			return err
		}
		d.node = q.build()
	default:
		return unknown(n.Content[0], "statement")
	}
	return nil
}

type exprDoc struct {
	node ast.Expression
}

// expression returns nil for an absent optional expression.
func (d *exprDoc) expression() ast.Expression {
	if d == nil {
		return nil
	}
	return d.node
}

func (d *exprDoc) UnmarshalYAML(n *yaml.Node) error {
	key, value, err := variant(n, "expression")
	if err != nil {
		return err
	}
	switch key {
	case "operation":
		var o struct {
			Pos   position `yaml:"pos"`
			Op    string   `yaml:"op"`
			Left  exprDoc  `yaml:"left"`
			Right exprDoc  `yaml:"right"`
		}
		if err := value.Decode(&o); err != nil {
			return err
		}
		op, ok := ast.ParseOperationType(o.Op)
		if !ok {
			return fmt.Errorf("line %d: unknown operator %q", value.Line, o.Op)
		}
		if o.Left.node == nil || o.Right.node == nil {
			return fmt.Errorf("line %d: operation requires left and right operands", value.Line)
		}
		d.node = &ast.Operation{Pos: o.Pos.pos(), Op: op, Left: o.Left.node, Right: o.Right.node}
	case "qualified":
		var q qualifiedDoc
		if err := value.Decode(&q); err != nil {
			return err
		}
		d.node = q.build()
	default:
		return unknown(n.Content[0], "expression")
	}
	return nil
}

type qualifiedDoc struct {
	Pos   position  `yaml:"pos"`
	Parts []partDoc `yaml:"parts"`
}

func (d *qualifiedDoc) build() *ast.QualifiedExpression {
	q := &ast.QualifiedExpression{Pos: d.Pos.pos()}
	for _, p := range d.Parts {
		q.Parts = append(q.Parts, p.node)
	}
	return q
}

type literalDoc[T any] struct {
	Pos   position `yaml:"pos"`
	Value T        `yaml:"value"`
}

type partDoc struct {
	node ast.QualifiedExpressionPart
}

func (d *partDoc) UnmarshalYAML(n *yaml.Node) error {
	key, value, err := variant(n, "expression part")
	if err != nil {
		return err
	}
	switch key {
	case "identifier":
		var id struct {
			Pos  position `yaml:"pos"`
			Name string   `yaml:"name"`
		}
		if err := value.Decode(&id); err != nil {
			return err
		}
		d.node = &ast.Identifier{Pos: id.Pos.pos(), Name: id.Name}
	case "call":
		var c struct {
			Pos  position  `yaml:"pos"`
			Name string    `yaml:"name"`
			Args []exprDoc `yaml:"args"`
		}
		if err := value.Decode(&c); err != nil {
			return err
		}
		call := &ast.FunctionCall{Pos: c.Pos.pos(), Name: c.Name}
		for _, a := range c.Args {
			call.Args = append(call.Args, a.node)
		}
		d.node = call
	case "int":
		var l literalDoc[int32]
		if err := value.Decode(&l); err != nil {
			return err
		}
		d.node = &ast.IntegerLiteral{Pos: l.Pos.pos(), Value: l.Value}
	case "string":
		var l literalDoc[string]
		if err := value.Decode(&l); err != nil {
			return err
		}
		d.node = &ast.StringLiteral{Pos: l.Pos.pos(), Value: l.Value}
	case "char":
		var l literalDoc[string]
		if err := value.Decode(&l); err != nil {
			return err
		}
		r, size := utf8.DecodeRuneInString(l.Value)
		if size == 0 || size != len(l.Value) {
			return fmt.Errorf("line %d: char literal must be exactly one character, got %q", value.Line, l.Value)
		}
		d.node = &ast.CharLiteral{Pos: l.Pos.pos(), Value: r}
	case "bool":
		var l literalDoc[bool]
		if err := value.Decode(&l); err != nil {
			return err
		}
		d.node = &ast.BooleanLiteral{Pos: l.Pos.pos(), Value: l.Value}
	case "null":
		var l literalDoc[any]
		if err := value.Decode(&l); err != nil {
			return err
		}
		d.node = &ast.NullLiteral{Pos: l.Pos.pos()}
	case "closure":
		var c struct {
			Pos        position       `yaml:"pos"`
			Params     []paramDoc     `yaml:"params"`
			ReturnType string         `yaml:"return_type"`
			Statements []statementDoc `yaml:"statements"`
		}
		if err := value.Decode(&c); err != nil {
			return err
		}
		d.node = &ast.Closure{Pos: c.Pos.pos(), Params: params(c.Params), ReturnType: c.ReturnType, Statements: statements(c.Statements)}
	case "paren":
		var p struct {
			Pos  position `yaml:"pos"`
			Expr exprDoc  `yaml:"expr"`
		}
		if err := value.Decode(&p); err != nil {
			return err
		}
		if p.Expr.node == nil {
			return fmt.Errorf("line %d: paren requires an expression", value.Line)
		}
		d.node = &ast.ParenExpression{Pos: p.Pos.pos(), Expr: p.Expr.node}
	default:
		return unknown(n.Content[0], "expression part")
	}
	return nil
}

// Decode parses one AST document. path is recorded on the file and used in
// error messages.
func Decode(data []byte, path string) (*ast.File, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.build(path)
}
