package grammar

import (
	"fmt"
	"strings"

	"github.com/FlorianRappl/YAMP-sub003/corelang"
	"github.com/emirpasic/gods/stacks/arraystack"
	"golang.org/x/text/unicode/norm"
)

// Query is the outcome of parsing an input text: a list of statements, and
// the errors found.
type Query struct {
	Input      string
	Statements []*corelang.Statement
	Errors     *ParseErrors
}

// Err returns the parse errors of q, or nil.
func (q *Query) Err() error {
	if q.Errors.Len() == 0 {
		return nil
	}
	return q.Errors
}

// Parser parses queries. A Parser holds no state of its own and may be used
// for any number of queries, concurrently.
type Parser struct {
	elements *Elements
}

// NewParser creates a parser for a registry of elements. If elements is nil,
// the standard elements are used.
func NewParser(elements *Elements) *Parser {
	if elements == nil {
		elements = StandardElements()
	}
	return &Parser{elements: elements}
}

// Parse splits a text into statements and parses each of them. Parse never
// fails; problems are reported in the Errors of the query.
func (ps *Parser) Parse(text string) *Query {
	text = norm.NFC.String(text)
	p := &parser{
		elements: ps.elements,
		cur:      newCursor(text),
		errs:     &ParseErrors{Input: text},
	}
	q := &Query{Input: text}
	q.Statements = p.statements(topScope, eof)
	q.Errors = p.errs
	tracer().Debugf("parsed %d statements with %d errors", len(q.Statements), q.Errors.Len())
	return q
}

// scope describes how an expression ends within its enclosing construct.
type scope struct {
	stops   string // runes ending an expression
	newline bool   // a newline ends an expression
	matrix  bool   // white space separates elements
	bar     bool   // a single '|' ends an expression
}

var (
	topScope    = scope{stops: ";", newline: true}
	blockScope  = scope{stops: ";}", newline: true}
	groupScope  = scope{stops: ")"}
	forScope    = scope{stops: ";)"}
	matrixScope = scope{stops: ",;]", newline: true, matrix: true}
	absScope    = scope{bar: true}
)

// parser is the state of parsing one query.
type parser struct {
	elements *Elements
	cur      *cursor
	errs     *ParseErrors
	stmt     scope // scope of the statement list being parsed
	ended    bool  // a keyword statement has ended the current expression
}

func (p *parser) error(kind ErrorKind, msg string) {
	p.errorAt(p.cur.position(), kind, msg)
}

func (p *parser) errorAt(pos corelang.Position, kind ErrorKind, msg string) {
	p.errs.add(&ParseError{Line: pos.Line, Column: pos.Column, Kind: kind, Msg: msg})
}

func (p *parser) stops(sc scope, r rune) bool {
	if r == eof || (sc.newline && r == '\n') {
		return true
	}
	if sc.bar && r == '|' {
		return !p.cur.hasPrefix("||")
	}
	return strings.ContainsRune(sc.stops, r)
}

// --- Statements ------------------------------------------------------------

// statements parses statements up to a closing rune, which is not consumed.
func (p *parser) statements(sc scope, closer rune) []*corelang.Statement {
	outer := p.stmt
	p.stmt = sc
	defer func() { p.stmt = outer }()
	var stmts []*corelang.Statement
	for {
		p.skipSpace(true)
		r := p.cur.peek()
		if r == eof || r == closer {
			return stmts
		}
		if r == ';' {
			p.cur.next()
			continue
		}
		start := p.cur.pos
		stmt := &corelang.Statement{Expr: p.expression(sc)}
		p.skipSpace(false)
		switch p.cur.peek() {
		case ';':
			p.cur.next()
			stmt.Muted = true
		case '\n':
			p.cur.next()
		}
		if !stmt.Expr.IsEmpty() {
			stmts = append(stmts, stmt)
		}
		if p.cur.pos == start { // no progress
			p.error(ExpressionUnexpected, fmt.Sprintf("unexpected %q", string(p.cur.next())))
		}
	}
}

// --- Expressions -----------------------------------------------------------

// expression parses an expression with operator precedence, up to the end
// of its scope.
func (p *parser) expression(sc scope) *corelang.Container {
	defer func(ended bool) { p.ended = ended }(p.ended)
	p.ended = false
	start := p.cur.position()
	operands, operators := arraystack.New(), arraystack.New()
	expectOperand := true
	for !p.ended {
		if expectOperand {
			p.skipSpace(!sc.newline || !operators.Empty())
			r := p.cur.peek()
			if p.stops(sc, r) {
				if !operators.Empty() {
					p.error(ExpressionMissing, "operand expected")
				}
				break
			}
			pos := p.cur.position()
			if op := p.elements.operator(p.cur.rest(), true); op != nil {
				p.cur.skip(len(op.Symbol()))
				operators.Push(op.Create(pos))
				continue
			}
			e := p.operand()
			if e == nil {
				p.error(ExpressionUnexpected, fmt.Sprintf("unexpected %q", string(r)))
				p.cur.next()
				continue
			}
			operands.Push(e)
			expectOperand = false
			continue
		}
		spaced := p.skipSpace(!sc.newline)
		r := p.cur.peek()
		if p.stops(sc, r) || p.keywordAhead() {
			break
		}
		if sc.matrix && spaced && p.startsElement() {
			break
		}
		pos := p.cur.position()
		op := p.elements.operator(p.cur.rest(), false)
		if op == nil {
			p.error(ExpressionUnexpected, fmt.Sprintf("operator expected, have %q", string(r)))
			if _, lexeme := literal(p.cur); lexeme != "" {
				p.cur.skip(len(lexeme))
			} else {
				p.cur.next()
			}
			continue
		}
		p.cur.skip(len(op.Symbol()))
		op = op.Create(pos)
		switch op.Fixity() {
		case corelang.Postfix:
			reduce(operands, operators, op)
			operands.Push(corelang.NewContainer(pos, op, pop(operands, pos)))
		case corelang.Apply:
			reduce(operands, operators, op)
			callee := pop(operands, pos)
			operands.Push(corelang.NewContainer(pos, op, callee, p.group(pos)))
		default:
			reduce(operands, operators, op)
			operators.Push(op)
			expectOperand = true
		}
	}
	reduce(operands, operators, nil)
	if operands.Empty() {
		return corelang.NewContainer(start, nil)
	}
	e := pop(operands, start)
	if c, ok := e.(*corelang.Container); ok {
		return c
	}
	return corelang.NewContainer(e.Pos(), nil, e)
}

// reduce combines pending operators binding at least as tight as op, with
// their operands. If op is nil, all pending operators are reduced.
func reduce(operands, operators *arraystack.Stack, op corelang.Operator) {
	for {
		top, ok := operators.Peek()
		if !ok {
			return
		}
		pending := top.(corelang.Operator)
		if op != nil {
			if pending.Level() < op.Level() {
				return
			}
			if pending.Level() == op.Level() && op.IsRightAssociative() {
				return
			}
		}
		operators.Pop()
		if pending.Arity() == 1 {
			operands.Push(corelang.NewContainer(pending.Pos(), pending, pop(operands, pending.Pos())))
			continue
		}
		right := pop(operands, pending.Pos())
		left := pop(operands, pending.Pos())
		operands.Push(corelang.NewContainer(pending.Pos(), pending, left, right))
	}
}

// pop removes the top operand. A missing operand, which has already been
// reported as an error, is replaced by an empty container.
func pop(operands *arraystack.Stack, pos corelang.Position) corelang.Expression {
	if e, ok := operands.Pop(); ok {
		return e.(corelang.Expression)
	}
	return corelang.NewContainer(pos, nil)
}

// operand tries the operand scanners in priority order.
func (p *parser) operand() corelang.Expression {
	for _, entry := range p.elements.operands {
		if e := entry.scan(p); e != nil {
			tracer().Debugf("scanned %s operand %s", entry.name, e.Code())
			return e
		}
	}
	return nil
}

// keywordAhead is a predicate: does a keyword start at the cursor?
func (p *parser) keywordAhead() bool {
	typ, lexeme := literal(p.cur)
	return typ == tokIdent && p.elements.IsKeyword(lexeme)
}

// startsElement is a predicate: does a new matrix element start at the
// cursor? A prefix operator directly followed by its operand starts an
// element, as in [1 -2].
func (p *parser) startsElement() bool {
	r := p.cur.peek()
	switch {
	case r == '.':
		n := p.cur.peekAt(1)
		return n >= '0' && n <= '9'
	case strings.ContainsRune("([{|\"@_", r):
		return true
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	}
	if p.elements.operator(p.cur.rest(), true) == nil {
		return false
	}
	if op := p.elements.operator(p.cur.rest(), false); op != nil && len(op.Symbol()) > 1 {
		return false
	}
	n := p.cur.peekAt(1)
	return n != ' ' && n != '\t' && n != eof
}

// --- Operands --------------------------------------------------------------

func scanNumber(p *parser) corelang.Expression {
	typ, lexeme := literal(p.cur)
	if typ != tokNumber {
		return nil
	}
	pos := p.cur.position()
	n, err := numberValue(lexeme)
	if err != nil {
		p.error(ExpressionUnexpected, fmt.Sprintf("malformed number %q", lexeme))
	}
	p.cur.skip(len(lexeme))
	return corelang.NewNumberLiteral(pos, n, lexeme)
}

// scanColon scans a lone ':' standing for all elements of an indexed
// dimension, as in m(:, 1).
func scanColon(p *parser) corelang.Expression {
	if p.cur.peek() != ':' {
		return nil
	}
	n := 1
	for r := p.cur.peekAt(n); r == ' ' || r == '\t'; r = p.cur.peekAt(n) {
		n++
	}
	if r := p.cur.peekAt(n); r != ',' && r != ')' {
		return nil
	}
	pos := p.cur.position()
	p.cur.next()
	return corelang.NewSymbol(pos, corelang.AllSymbol)
}

// scanSymbol scans a name, or a statement introduced by a keyword.
func scanSymbol(p *parser) corelang.Expression {
	typ, lexeme := literal(p.cur)
	if typ != tokIdent {
		return nil
	}
	pos := p.cur.position()
	p.cur.skip(len(lexeme))
	if kw, ok := p.elements.keywords[lexeme]; ok {
		e := kw(p, pos)
		p.ended = true
		return e
	}
	return corelang.NewSymbol(pos, lexeme)
}

func scanGroup(p *parser) corelang.Expression {
	if p.cur.peek() != '(' {
		return nil
	}
	pos := p.cur.position()
	p.cur.next()
	return p.group(pos)
}

// group parses the content of parentheses, after the opening parenthesis.
func (p *parser) group(pos corelang.Position) *corelang.Group {
	inner := p.expression(groupScope)
	p.expectCloser(pos, ')')
	if inner.IsEmpty() {
		return corelang.NewGroup(pos, nil)
	}
	return corelang.NewGroup(pos, inner)
}

// expectCloser consumes a closing rune, or reports it missing for the
// construct opened at pos.
func (p *parser) expectCloser(pos corelang.Position, closer rune) {
	p.skipSpace(true)
	if p.cur.peek() == closer {
		p.cur.next()
		return
	}
	p.errorAt(pos, TerminatorMissing, fmt.Sprintf("missing '%c'", closer))
}

func scanMatrix(p *parser) corelang.Expression {
	if p.cur.peek() != '[' {
		return nil
	}
	pos := p.cur.position()
	p.cur.next()
	var rows [][]corelang.Expression
	var row []corelang.Expression
	for {
		p.skipSpace(false)
		switch p.cur.peek() {
		case ']':
			p.cur.next()
			return corelang.NewMatrixLiteral(pos, append(rows, row))
		case eof:
			p.errorAt(pos, TerminatorMissing, "missing ']'")
			return corelang.NewMatrixLiteral(pos, append(rows, row))
		case ',':
			p.cur.next()
			continue
		case ';', '\n':
			p.cur.next()
			if len(row) > 0 {
				rows = append(rows, row)
				row = nil
			}
			continue
		}
		if e := p.expression(matrixScope); !e.IsEmpty() {
			row = append(row, e)
		}
	}
}

func scanBlock(p *parser) corelang.Expression {
	if p.cur.peek() != '{' {
		return nil
	}
	return p.block()
}

// block parses statements in braces.
func (p *parser) block() *corelang.Block {
	pos := p.cur.position()
	p.cur.next()
	stmts := p.statements(blockScope, '}')
	p.expectCloser(pos, '}')
	return corelang.NewBlock(pos, stmts)
}

func scanAbs(p *parser) corelang.Expression {
	if p.cur.peek() != '|' {
		return nil
	}
	pos := p.cur.position()
	p.cur.next()
	inner := p.expression(absScope)
	if inner.IsEmpty() {
		p.errorAt(pos, ExpressionMissing, "operand expected within '|…|'")
	}
	if p.cur.peek() == '|' {
		p.cur.next()
	} else {
		p.errorAt(pos, TerminatorMissing, "missing '|'")
	}
	return corelang.NewAbs(pos, inner)
}
