package grammar

import (
	"fmt"
	"strings"
)

// ErrorKind classifies parse errors.
type ErrorKind int8

// Kinds of parse errors.
const (
	TerminatorMissing ErrorKind = iota + 1
	StringUnterminated
	ExpressionMissing
	ExpressionUnexpected
	EscapeUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case TerminatorMissing:
		return "terminator missing"
	case StringUnterminated:
		return "string unterminated"
	case ExpressionMissing:
		return "expression missing"
	case ExpressionUnexpected:
		return "expression unexpected"
	case EscapeUnknown:
		return "escape sequence unknown"
	}
	return "syntax error"
}

// ParseError is a problem found at a position of the input. Line and column
// count from 1.
type ParseError struct {
	Line, Column int
	Kind         ErrorKind
	Msg          string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, e.Msg)
}

// ParseErrors is the list of errors of a query. It is an error itself,
// reporting every error with a snippet of the input.
type ParseErrors struct {
	Input  string
	Errors []*ParseError
}

func (pe *ParseErrors) add(e *ParseError) {
	tracer().Debugf("parse error %v", e)
	pe.Errors = append(pe.Errors, e)
}

// Len returns the number of errors.
func (pe *ParseErrors) Len() int {
	if pe == nil {
		return 0
	}
	return len(pe.Errors)
}

func (pe *ParseErrors) Error() string {
	if pe.Len() == 0 {
		return "no parse errors"
	}
	var b strings.Builder
	for i, e := range pe.Errors {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(snippet(pe.Input, e))
	}
	return b.String()
}

// snippet renders an error with the offending line and a caret pointing to
// the error position.
func snippet(src string, e *ParseError) string {
	lines := strings.Split(src, "\n")
	line, col := e.Line, e.Column
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at %d:%d: %s: %s\n", e.Line, e.Column, e.Kind, e.Msg)
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	return b.String()
}
