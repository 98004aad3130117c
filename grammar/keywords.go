package grammar

import (
	"github.com/FlorianRappl/YAMP-sub003/corelang"
)

// condition parses a parenthesized condition following a keyword.
func (p *parser) condition(keyword string) corelang.Expression {
	p.skipSpace(true)
	if p.cur.peek() != '(' {
		p.error(ExpressionMissing, "'(' expected after "+keyword)
		return corelang.NewContainer(p.cur.position(), nil)
	}
	pos := p.cur.position()
	p.cur.next()
	cond := p.expression(groupScope)
	if cond.IsEmpty() {
		p.errorAt(pos, ExpressionMissing, "condition expected after "+keyword)
	}
	p.expectCloser(pos, ')')
	return cond
}

// body parses the body of a compound statement: a block or a single
// statement.
func (p *parser) body() corelang.Expression {
	p.skipSpace(true)
	if p.cur.peek() == '{' {
		return p.block()
	}
	pos := p.cur.position()
	e := p.expression(p.stmt)
	if e.IsEmpty() {
		p.errorAt(pos, ExpressionMissing, "statement expected")
	}
	return e
}

// wordAhead is a predicate: does the identifier word start at the cursor?
func (p *parser) wordAhead(word string) bool {
	typ, lexeme := literal(p.cur)
	return typ == tokIdent && lexeme == word
}

func scanIf(p *parser, pos corelang.Position) corelang.Expression {
	cond := p.condition("if")
	then := p.body()
	mark, errcnt := p.cur.mark(), p.errs.Len()
	p.skipSpace(true)
	if p.cur.peek() == ';' {
		p.cur.next()
		p.skipSpace(true)
	}
	if !p.wordAhead("else") {
		p.cur.reset(mark)
		p.errs.Errors = p.errs.Errors[:errcnt]
		return corelang.NewIf(pos, cond, then, nil)
	}
	p.cur.skip(len("else"))
	return corelang.NewIf(pos, cond, then, p.body())
}

func scanElse(p *parser, pos corelang.Position) corelang.Expression {
	p.errorAt(pos, ExpressionUnexpected, "else without if")
	return corelang.NewContainer(pos, nil)
}

func scanWhile(p *parser, pos corelang.Position) corelang.Expression {
	cond := p.condition("while")
	return corelang.NewWhile(pos, cond, p.body())
}

func scanFor(p *parser, pos corelang.Position) corelang.Expression {
	p.skipSpace(true)
	if p.cur.peek() != '(' {
		p.error(ExpressionMissing, "'(' expected after for")
		return corelang.NewFor(pos, nil, nil, nil, p.body())
	}
	open := p.cur.position()
	p.cur.next()
	var parts [3]corelang.Expression
	for i := range parts {
		sc := forScope
		if i == 2 {
			sc = groupScope
		}
		if e := p.expression(sc); !e.IsEmpty() {
			parts[i] = e
		}
		if i < 2 {
			p.skipSpace(true)
			if p.cur.peek() != ';' {
				p.error(ExpressionMissing, "';' expected in for")
				break
			}
			p.cur.next()
		}
	}
	p.expectCloser(open, ')')
	return corelang.NewFor(pos, parts[0], parts[1], parts[2], p.body())
}

func scanFunction(p *parser, pos corelang.Position) corelang.Expression {
	p.skipSpace(false)
	typ, name := literal(p.cur)
	if typ != tokIdent || p.elements.IsKeyword(name) {
		p.error(ExpressionMissing, "function name expected")
		return corelang.NewContainer(pos, nil)
	}
	p.cur.skip(len(name))
	p.skipSpace(false)
	var params []string
	if p.cur.peek() != '(' {
		p.error(ExpressionMissing, "parameter list expected")
	} else {
		ppos := p.cur.position()
		p.cur.next()
		var err error
		if params, err = corelang.ParamNames(p.group(ppos)); err != nil {
			p.errorAt(ppos, ExpressionUnexpected, "parameter names expected")
		}
	}
	p.skipSpace(true)
	if p.cur.peek() != '{' {
		p.error(ExpressionMissing, "function body expected")
		return corelang.NewFunctionDef(pos, name, params, corelang.NewBlock(pos, nil))
	}
	return corelang.NewFunctionDef(pos, name, params, p.block())
}

func scanReturn(p *parser, pos corelang.Position) corelang.Expression {
	p.skipSpace(false)
	if p.stops(p.stmt, p.cur.peek()) {
		return corelang.NewReturn(pos, nil)
	}
	return corelang.NewReturn(pos, p.expression(p.stmt))
}

func scanJump(brk bool) KeywordScanner {
	return func(p *parser, pos corelang.Position) corelang.Expression {
		if brk {
			return corelang.NewBreak(pos)
		}
		return corelang.NewContinue(pos)
	}
}
