package corelang

import (
	"fmt"
	"strings"

	yamp "github.com/FlorianRappl/YAMP-sub003"
)

// Position is a location in the input, counting lines and columns from 1.
type Position struct {
	Line, Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Expression is a node of the expression tree. Expressions are immutable
// once parsed.
type Expression interface {
	Interpret(ctx *Context) (yamp.Value, error) // evaluate within ctx
	Code() string                               // source code of the expression
	Pos() Position                              // source position
}

// --- Container -------------------------------------------------------------

// Container holds up to two child expressions and an optional operator.
// If an operator is present, the number of children equals the arity of the
// operator.
type Container struct {
	op       Operator
	children []Expression
	pos      Position
}

var _ Expression = &Container{}

// NewContainer creates a container. op may be nil for a container wrapping a
// single expression, or wrapping nothing (an empty statement).
func NewContainer(pos Position, op Operator, children ...Expression) *Container {
	return &Container{op: op, children: children, pos: pos}
}

// Operator returns the operator of c, or nil.
func (c *Container) Operator() Operator {
	return c.op
}

// Children returns the child expressions of c.
func (c *Container) Children() []Expression {
	return c.children
}

// IsEmpty is a predicate: does c contain nothing?
func (c *Container) IsEmpty() bool {
	return c.op == nil && len(c.children) == 0
}

// Interpret delegates to the operator, or to a single child. An empty
// container has no value: it returns nil without an error.
func (c *Container) Interpret(ctx *Context) (yamp.Value, error) {
	if c.op != nil {
		return c.op.Evaluate(c.children, ctx)
	}
	if len(c.children) == 1 {
		return c.children[0].Interpret(ctx)
	}
	return nil, nil
}

// Code returns the source code of c.
func (c *Container) Code() string {
	if c.op != nil {
		return c.op.Code(c.children)
	}
	if len(c.children) == 1 {
		return c.children[0].Code()
	}
	return ""
}

// Pos returns the source position of c.
func (c *Container) Pos() Position {
	return c.pos
}

// --- Literals --------------------------------------------------------------

// NumberLiteral is a literal number.
type NumberLiteral struct {
	value yamp.Number
	text  string
	pos   Position
}

// NewNumberLiteral creates a number literal for its source text.
func NewNumberLiteral(pos Position, value yamp.Number, text string) *NumberLiteral {
	return &NumberLiteral{value: value, text: text, pos: pos}
}

// Interpret returns the number.
func (n *NumberLiteral) Interpret(*Context) (yamp.Value, error) {
	return n.value, nil
}

// Code returns the source text of the number.
func (n *NumberLiteral) Code() string { return n.text }

// Pos returns the source position.
func (n *NumberLiteral) Pos() Position { return n.pos }

// StringLiteral is a literal string, either with escape sequences or verbatim.
type StringLiteral struct {
	value    string
	verbatim bool
	pos      Position
}

// NewStringLiteral creates a string literal. verbatim is true for the
// escape-free form @"…".
func NewStringLiteral(pos Position, value string, verbatim bool) *StringLiteral {
	return &StringLiteral{value: value, verbatim: verbatim, pos: pos}
}

// Interpret returns the string.
func (s *StringLiteral) Interpret(*Context) (yamp.Value, error) {
	return yamp.NewString(s.value), nil
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)

// Code returns the string in quotes.
func (s *StringLiteral) Code() string {
	if s.verbatim {
		return `@"` + s.value + `"`
	}
	return `"` + escaper.Replace(s.value) + `"`
}

// Pos returns the source position.
func (s *StringLiteral) Pos() Position { return s.pos }

// Symbol is a name: a variable, function or constant.
type Symbol struct {
	name string
	pos  Position
}

// NewSymbol creates a symbol expression.
func NewSymbol(pos Position, name string) *Symbol {
	return &Symbol{name: name, pos: pos}
}

// Name returns the name of the symbol.
func (s *Symbol) Name() string {
	return s.name
}

// Interpret resolves the symbol in ctx.
func (s *Symbol) Interpret(ctx *Context) (yamp.Value, error) {
	return ctx.Resolve(s.name)
}

// Code returns the name.
func (s *Symbol) Code() string { return s.name }

// Pos returns the source position.
func (s *Symbol) Pos() Position { return s.pos }

// --- Groups ----------------------------------------------------------------

// Group is a parenthesized expression. Its content may be empty, as in the
// argument list of a call without arguments.
type Group struct {
	inner Expression
	pos   Position
}

// NewGroup creates a group. inner may be nil.
func NewGroup(pos Position, inner Expression) *Group {
	return &Group{inner: inner, pos: pos}
}

// Inner returns the content of the group, or nil.
func (g *Group) Inner() Expression {
	return g.inner
}

// Interpret evaluates the content of the group.
func (g *Group) Interpret(ctx *Context) (yamp.Value, error) {
	if g.inner == nil {
		return nil, nil
	}
	return g.inner.Interpret(ctx)
}

// Code returns the content in parentheses.
func (g *Group) Code() string {
	if g.inner == nil {
		return "()"
	}
	return "(" + g.inner.Code() + ")"
}

// Pos returns the source position.
func (g *Group) Pos() Position { return g.pos }

// MatrixLiteral is a matrix in bracket notation. Its elements may be numbers
// or matrices, which are concatenated horizontally within a row and
// vertically across rows.
type MatrixLiteral struct {
	rows [][]Expression
	pos  Position
}

// NewMatrixLiteral creates a matrix literal from rows of expressions.
func NewMatrixLiteral(pos Position, rows [][]Expression) *MatrixLiteral {
	return &MatrixLiteral{rows: rows, pos: pos}
}

// Interpret evaluates the elements and assembles the matrix.
func (m *MatrixLiteral) Interpret(ctx *Context) (yamp.Value, error) {
	rows := make([]*yamp.Matrix, 0, len(m.rows))
	for _, row := range m.rows {
		parts := make([]*yamp.Matrix, 0, len(row))
		for _, e := range row {
			v, err := e.Interpret(ctx)
			if err != nil {
				return nil, err
			}
			part, err := yamp.AsMatrix(v)
			if _, isRange := v.(*yamp.Range); isRange && err != nil {
				return nil, err
			} else if err != nil {
				return nil, &yamp.ArgumentTypeError{Function: "[]", Index: len(parts) + 1,
					Actual: yamp.TypeName(v), Expected: yamp.NumericType.Name()}
			}
			parts = append(parts, part)
		}
		r, err := yamp.HorzCat(parts...)
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return yamp.VertCat(rows...)
}

// Code returns the matrix in bracket notation.
func (m *MatrixLiteral) Code() string {
	rows := make([]string, len(m.rows))
	for i, row := range m.rows {
		elems := make([]string, len(row))
		for j, e := range row {
			elems[j] = e.Code()
		}
		rows[i] = strings.Join(elems, ", ")
	}
	return "[" + strings.Join(rows, "; ") + "]"
}

// Pos returns the source position.
func (m *MatrixLiteral) Pos() Position { return m.pos }

// Abs is an expression in absolute-value bars.
type Abs struct {
	inner Expression
	pos   Position
}

// NewAbs creates an absolute-value expression.
func NewAbs(pos Position, inner Expression) *Abs {
	return &Abs{inner: inner, pos: pos}
}

// Interpret applies the unary operator "abs" to the content.
func (a *Abs) Interpret(ctx *Context) (yamp.Value, error) {
	v, err := a.inner.Interpret(ctx)
	if err != nil {
		return nil, err
	}
	return ctx.Registry().InvokeUnary("abs", v)
}

// Code returns the content in bars.
func (a *Abs) Code() string {
	return "|" + a.inner.Code() + "|"
}

// Pos returns the source position.
func (a *Abs) Pos() Position { return a.pos }

// --- Statements and blocks -------------------------------------------------

// Statement is a top-level expression of a query or a block. A muted
// statement is terminated by a semicolon; its value is not displayed.
type Statement struct {
	Expr  *Container
	Muted bool
}

// Interpret evaluates the statement.
func (s *Statement) Interpret(ctx *Context) (yamp.Value, error) {
	return s.Expr.Interpret(ctx)
}

// Block is a sequence of statements in braces, evaluated in the current
// scope. Its value is the value of the last statement.
type Block struct {
	statements []*Statement
	pos        Position
}

// NewBlock creates a block.
func NewBlock(pos Position, statements []*Statement) *Block {
	return &Block{statements: statements, pos: pos}
}

// Statements returns the statements of the block.
func (b *Block) Statements() []*Statement {
	return b.statements
}

// Interpret evaluates the statements in order. Evaluation stops early on
// break, continue and return.
func (b *Block) Interpret(ctx *Context) (yamp.Value, error) {
	var result yamp.Value
	for _, s := range b.statements {
		v, err := s.Interpret(ctx)
		if err != nil {
			return nil, err
		}
		if v != nil {
			result = v
		}
		if ctx.interrupted() {
			break
		}
	}
	return result, nil
}

// Code returns the statements in braces.
func (b *Block) Code() string {
	if len(b.statements) == 0 {
		return "{ }"
	}
	parts := make([]string, 0, len(b.statements))
	for _, s := range b.statements {
		if !s.Expr.IsEmpty() {
			parts = append(parts, s.Expr.Code())
		}
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// Pos returns the source position.
func (b *Block) Pos() Position { return b.pos }
