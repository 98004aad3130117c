package grammar

import (
	"github.com/FlorianRappl/YAMP-sub003/corelang"
)

// OperandScanner tries to scan an operand at the current input position. It
// returns nil, without consuming input, if no operand of its kind starts
// there.
type OperandScanner func(p *parser) corelang.Expression

// KeywordScanner scans a statement introduced by a keyword. The keyword has
// already been consumed when the scanner is called.
type KeywordScanner func(p *parser, pos corelang.Position) corelang.Expression

type operandEntry struct {
	name string
	scan OperandScanner
}

// Elements is the registry of syntactic elements: operators, keywords and
// operand scanners. A registry is filled once and read-only afterwards.
type Elements struct {
	infix    map[string]corelang.Operator // infix, postfix and apply operators
	prefix   map[string]corelang.Operator
	maxlen   int // longest operator symbol, in bytes
	keywords map[string]KeywordScanner
	operands []operandEntry // in priority order
}

// NewElements creates an empty registry.
func NewElements() *Elements {
	return &Elements{
		infix:    make(map[string]corelang.Operator),
		prefix:   make(map[string]corelang.Operator),
		keywords: make(map[string]KeywordScanner),
	}
}

// AddOperator registers an operator prototype. Prefix operators and the
// other operators live in separate namespaces, so a symbol may be used for
// both, like '-'.
func (el *Elements) AddOperator(op corelang.Operator) *Elements {
	if op.Fixity() == corelang.Prefix {
		el.prefix[op.Symbol()] = op
	} else {
		el.infix[op.Symbol()] = op
	}
	if len(op.Symbol()) > el.maxlen {
		el.maxlen = len(op.Symbol())
	}
	return el
}

// AddKeyword registers a keyword with the scanner for its statement.
func (el *Elements) AddKeyword(word string, scan KeywordScanner) *Elements {
	el.keywords[word] = scan
	return el
}

// AddOperand appends an operand scanner. Scanners are tried in the order of
// registration.
func (el *Elements) AddOperand(name string, scan OperandScanner) *Elements {
	el.operands = append(el.operands, operandEntry{name: name, scan: scan})
	return el
}

// IsKeyword is a predicate: is word reserved as a keyword?
func (el *Elements) IsKeyword(word string) bool {
	_, ok := el.keywords[word]
	return ok
}

// operator finds the operator with the longest symbol at the start of text.
func (el *Elements) operator(text string, prefix bool) corelang.Operator {
	ops := el.infix
	if prefix {
		ops = el.prefix
	}
	n := el.maxlen
	if n > len(text) {
		n = len(text)
	}
	for ; n > 0; n-- {
		if op, ok := ops[text[:n]]; ok {
			return op
		}
	}
	return nil
}

// StandardElements returns the registry for the YAMP language.
func StandardElements() *Elements {
	el := NewElements()
	for _, op := range corelang.StandardOperators() {
		el.AddOperator(op)
	}
	el.AddKeyword("if", scanIf).
		AddKeyword("else", scanElse).
		AddKeyword("while", scanWhile).
		AddKeyword("for", scanFor).
		AddKeyword("function", scanFunction).
		AddKeyword("return", scanReturn).
		AddKeyword("break", scanJump(true)).
		AddKeyword("continue", scanJump(false))
	el.AddOperand("number", scanNumber).
		AddOperand("string", scanString).
		AddOperand("symbol", scanSymbol).
		AddOperand("colon", scanColon).
		AddOperand("group", scanGroup).
		AddOperand("matrix", scanMatrix).
		AddOperand("block", scanBlock).
		AddOperand("abs", scanAbs)
	return el
}
