package grammar

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/FlorianRappl/YAMP-sub003/corelang"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types of the literal lexer.
const (
	tokNumber int = iota + 1
	tokIdent
)

var literalLexer *lexmachine.Lexer
var lexerOnce sync.Once // monitors one-time compilation of the DFA
var lexerErr error

// initLexer compiles a DFA for numbers and identifiers.
func initLexer() {
	lexerOnce.Do(func() {
		lexer := lexmachine.NewLexer()
		exp := `([eE][\+\-]?[0-9]+)?i?`
		lexer.Add([]byte(`[0-9]+(\.[0-9]+)?`+exp), makeToken(tokNumber))
		lexer.Add([]byte(`\.[0-9]+`+exp), makeToken(tokNumber))
		lexer.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*`), makeToken(tokIdent))
		if lexerErr = lexer.Compile(); lexerErr != nil {
			tracer().Errorf("cannot compile literal lexer: %v", lexerErr)
			return
		}
		literalLexer = lexer
	})
}

func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// literal matches a number or an identifier at the cursor. It returns the
// token type and the lexeme, or 0 if neither starts here. The DFA scanner of a
// cursor is created once and moved to the cursor position for every match.
func literal(c *cursor) (int, string) {
	initLexer()
	if literalLexer == nil || c.atEOF() {
		return 0, ""
	}
	if c.literals == nil {
		scanner, err := literalLexer.Scanner([]byte(c.text))
		if err != nil {
			return 0, ""
		}
		c.literals = scanner
	}
	c.literals.TC = c.pos
	tok, err, eos := c.literals.Next()
	if eos || err != nil {
		var unconsumed *machines.UnconsumedInput
		if err != nil && !errors.As(err, &unconsumed) {
			tracer().Errorf("literal lexer: %v", err)
		}
		return 0, ""
	}
	token := tok.(*lexmachine.Token)
	if token.TC != c.pos {
		return 0, ""
	}
	return token.Type, string(token.Lexeme)
}

// numberValue converts the lexeme of a number literal.
func numberValue(lexeme string) (yamp.Number, error) {
	imaginary := strings.HasSuffix(lexeme, "i")
	x, err := strconv.ParseFloat(strings.TrimSuffix(lexeme, "i"), 64)
	if err != nil {
		return yamp.Number{}, err
	}
	if imaginary {
		return yamp.Complex(0, x), nil
	}
	return yamp.Real(x), nil
}

// --- Strings ---------------------------------------------------------------

var escapes = map[rune]rune{'t': '\t', 'n': '\n', '\\': '\\', '"': '"'}

// scanString scans a string literal, "…" with escape sequences or @"…"
// verbatim.
func scanString(p *parser) corelang.Expression {
	c := p.cur
	pos := c.position()
	verbatim := false
	if c.hasPrefix(`@"`) {
		verbatim = true
		c.next()
	} else if c.peek() != '"' {
		return nil
	}
	c.next()
	var b strings.Builder
	for {
		r := c.peek()
		switch {
		case r == eof || r == '\n':
			p.errorAt(pos, StringUnterminated, `missing closing '"'`)
			return corelang.NewStringLiteral(pos, b.String(), verbatim)
		case r == '"':
			c.next()
			return corelang.NewStringLiteral(pos, b.String(), verbatim)
		case r == '\\' && !verbatim:
			epos := c.position()
			c.next()
			e := c.next()
			if x, ok := escapes[e]; ok {
				b.WriteRune(x)
			} else {
				p.errorAt(epos, EscapeUnknown, `unknown escape sequence '\`+string(e)+`'`)
				b.WriteRune(e)
			}
		default:
			b.WriteRune(c.next())
		}
	}
}

// --- White space and comments ----------------------------------------------

// skipSpace skips blanks and comments. Newlines are skipped only if
// newlines is true. It returns true if anything has been skipped.
func (p *parser) skipSpace(newlines bool) bool {
	c := p.cur
	skipped := false
	for {
		r := c.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || (r == '\n' && newlines):
			c.next()
		case c.hasPrefix("//"):
			for r := c.peek(); r != '\n' && r != eof; r = c.peek() {
				c.next()
			}
		case c.hasPrefix("/*"):
			pos := c.position()
			c.skip(2)
			for !c.hasPrefix("*/") {
				if c.next() == eof {
					p.errorAt(pos, TerminatorMissing, "missing '*/' for comment")
					return true
				}
			}
			c.skip(2)
		default:
			return skipped
		}
		skipped = true
	}
}
