package corelang

import (
	"strings"

	yamp "github.com/FlorianRappl/YAMP-sub003"
)

// If is a conditional statement. Else may be nil.
type If struct {
	Cond, Then, Else Expression
	pos              Position
}

// NewIf creates a conditional statement.
func NewIf(pos Position, cond, then, els Expression) *If {
	return &If{Cond: cond, Then: then, Else: els, pos: pos}
}

// Interpret evaluates one of the branches, depending on the condition.
func (s *If) Interpret(ctx *Context) (yamp.Value, error) {
	c, err := s.Cond.Interpret(ctx)
	if err != nil {
		return nil, err
	}
	if yamp.IsTrue(c) {
		return s.Then.Interpret(ctx)
	}
	if s.Else != nil {
		return s.Else.Interpret(ctx)
	}
	return nil, nil
}

func (s *If) Code() string {
	code := "if (" + s.Cond.Code() + ") " + s.Then.Code()
	if s.Else != nil {
		code += " else " + s.Else.Code()
	}
	return code
}

func (s *If) Pos() Position { return s.pos }

// While is a loop with the condition checked before each iteration.
type While struct {
	Cond, Body Expression
	pos        Position
}

// NewWhile creates a while loop.
func NewWhile(pos Position, cond, body Expression) *While {
	return &While{Cond: cond, Body: body, pos: pos}
}

// Interpret runs the loop. Loops have no value.
func (s *While) Interpret(ctx *Context) (yamp.Value, error) {
	for {
		c, err := s.Cond.Interpret(ctx)
		if err != nil {
			return nil, err
		}
		if !yamp.IsTrue(c) {
			return nil, nil
		}
		if done, err := iterate(s.Body, ctx); done || err != nil {
			return nil, err
		}
	}
}

func (s *While) Code() string {
	return "while (" + s.Cond.Code() + ") " + s.Body.Code()
}

func (s *While) Pos() Position { return s.pos }

// For is a loop with an initialization, a condition and a step, each of
// which may be nil.
type For struct {
	Init, Cond, Step, Body Expression
	pos                    Position
}

// NewFor creates a for loop.
func NewFor(pos Position, init, cond, step, body Expression) *For {
	return &For{Init: init, Cond: cond, Step: step, Body: body, pos: pos}
}

// Interpret runs the loop. Loops have no value.
func (s *For) Interpret(ctx *Context) (yamp.Value, error) {
	if s.Init != nil {
		if _, err := s.Init.Interpret(ctx); err != nil {
			return nil, err
		}
	}
	for {
		if s.Cond != nil {
			c, err := s.Cond.Interpret(ctx)
			if err != nil {
				return nil, err
			}
			if !yamp.IsTrue(c) {
				return nil, nil
			}
		}
		if done, err := iterate(s.Body, ctx); done || err != nil {
			return nil, err
		}
		if s.Step != nil {
			if _, err := s.Step.Interpret(ctx); err != nil {
				return nil, err
			}
		}
	}
}

func (s *For) Code() string {
	part := func(e Expression) string {
		if e == nil {
			return ""
		}
		return e.Code()
	}
	return "for (" + part(s.Init) + "; " + part(s.Cond) + "; " + part(s.Step) + ") " + s.Body.Code()
}

func (s *For) Pos() Position { return s.pos }

// iterate runs the body of a loop once. done reports that the loop has to
// end, because of a break, a return or a cancellation.
func iterate(body Expression, ctx *Context) (done bool, err error) {
	if err = ctx.stopped(); err != nil {
		return true, err
	}
	if _, err = body.Interpret(ctx); err != nil {
		return true, err
	}
	switch ctx.signal {
	case flowBreak:
		ctx.Reset()
		return true, nil
	case flowContinue:
		ctx.Reset()
	case flowReturn:
		return true, nil
	}
	return false, nil
}

// FunctionDef defines a named function in the current scope.
type FunctionDef struct {
	Name   string
	Params []string
	Body   *Block
	pos    Position
}

// NewFunctionDef creates a function definition.
func NewFunctionDef(pos Position, name string, params []string, body *Block) *FunctionDef {
	return &FunctionDef{Name: name, Params: params, Body: body, pos: pos}
}

// Interpret binds the function to its name. A definition has no value.
func (s *FunctionDef) Interpret(ctx *Context) (yamp.Value, error) {
	ctx.Assign(s.Name, NewFunction(ctx, s.Name, s.Params, s.Body))
	return nil, nil
}

func (s *FunctionDef) Code() string {
	return "function " + s.Name + "(" + strings.Join(s.Params, ", ") + ") " + s.Body.Code()
}

func (s *FunctionDef) Pos() Position { return s.pos }

// Return leaves the current function, with an optional value.
type Return struct {
	Value Expression
	pos   Position
}

// NewReturn creates a return statement. value may be nil.
func NewReturn(pos Position, value Expression) *Return {
	return &Return{Value: value, pos: pos}
}

func (s *Return) Interpret(ctx *Context) (yamp.Value, error) {
	var v yamp.Value
	if s.Value != nil {
		var err error
		if v, err = s.Value.Interpret(ctx); err != nil {
			return nil, err
		}
	}
	ctx.raise(flowReturn, v)
	return v, nil
}

func (s *Return) Code() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.Code()
}

func (s *Return) Pos() Position { return s.pos }

// Jump is a break or a continue.
type Jump struct {
	brk bool
	pos Position
}

// NewBreak creates a break statement.
func NewBreak(pos Position) *Jump {
	return &Jump{brk: true, pos: pos}
}

// NewContinue creates a continue statement.
func NewContinue(pos Position) *Jump {
	return &Jump{pos: pos}
}

func (s *Jump) Interpret(ctx *Context) (yamp.Value, error) {
	if s.brk {
		ctx.raise(flowBreak, nil)
	} else {
		ctx.raise(flowContinue, nil)
	}
	return nil, nil
}

func (s *Jump) Code() string {
	if s.brk {
		return "break"
	}
	return "continue"
}

func (s *Jump) Pos() Position { return s.pos }
