package corelang

import (
	yamp "github.com/FlorianRappl/YAMP-sub003"
)

// Fixity tells the parser where an operator stands relative to its operands.
type Fixity int8

// Operator positions.
const (
	Infix   Fixity = iota // a op b
	Prefix                // op a
	Postfix               // a op
	Apply                 // a(…): postfix, taking a parenthesized argument list
)

// Operator is a node of the expression tree combining the children of a
// container. Operators registered with the parser are prototypes; the parser
// calls Create for every occurrence.
type Operator interface {
	Symbol() string
	Level() int     // precedence level, higher binds tighter
	Arity() int     // number of children, 1 or 2
	Fixity() Fixity // position relative to the operands
	IsRightAssociative() bool
	Create(pos Position) Operator
	Pos() Position
	Evaluate(children []Expression, ctx *Context) (yamp.Value, error)
	Code(children []Expression) string
}

// opBase holds the properties common to all operators.
type opBase struct {
	symbol string
	level  int
	fixity Fixity
	right  bool
	pos    Position
}

func (op *opBase) Symbol() string           { return op.symbol }
func (op *opBase) Level() int               { return op.level }
func (op *opBase) Fixity() Fixity           { return op.fixity }
func (op *opBase) IsRightAssociative() bool { return op.right }
func (op *opBase) Pos() Position            { return op.pos }

// checkArity validates the number of children an operator receives.
func (op *opBase) checkArity(children []Expression, arity int) error {
	if len(children) != arity {
		return &yamp.ArgumentNumberError{Function: op.symbol, Given: len(children), Expected: arity}
	}
	return nil
}

// --- Binary operators ------------------------------------------------------

// BinaryPerformer combines two operand values.
type BinaryPerformer func(ctx *Context, left, right yamp.Value) (yamp.Value, error)

// BinaryHandler replaces the default evaluation of a binary operator's
// children.
type BinaryHandler func(op *BinaryOperator, left, right Expression, ctx *Context) (yamp.Value, error)

// BinaryOperator is an operator with two children.
type BinaryOperator struct {
	opBase
	perform BinaryPerformer
	handle  BinaryHandler
	code    func(left, right string) string
}

var _ Operator = &BinaryOperator{}

// NewBinary creates an infix operator prototype.
func NewBinary(symbol string, level int, right bool, perform BinaryPerformer) *BinaryOperator {
	return &BinaryOperator{
		opBase:  opBase{symbol: symbol, level: level, fixity: Infix, right: right},
		perform: perform,
	}
}

// DispatchedBinary creates an infix operator prototype which looks up its
// implementation in the binary dispatch table for its symbol.
func DispatchedBinary(symbol string, level int, right bool) *BinaryOperator {
	return NewBinary(symbol, level, right, func(ctx *Context, l, r yamp.Value) (yamp.Value, error) {
		return ctx.Registry().InvokeBinary(symbol, l, r)
	})
}

// WithHandler sets a handler overriding the evaluation order of the
// children.
func (op *BinaryOperator) WithHandler(h BinaryHandler) *BinaryOperator {
	op.handle = h
	return op
}

func (op *BinaryOperator) withCode(code func(left, right string) string) *BinaryOperator {
	op.code = code
	return op
}

func (op *BinaryOperator) withFixity(f Fixity) *BinaryOperator {
	op.fixity = f
	return op
}

// Arity returns 2.
func (op *BinaryOperator) Arity() int {
	return 2
}

// Create returns an instance of the prototype for a source position.
func (op *BinaryOperator) Create(pos Position) Operator {
	c := *op
	c.pos = pos
	return &c
}

// Evaluate checks the number of children and calls the handler.
func (op *BinaryOperator) Evaluate(children []Expression, ctx *Context) (yamp.Value, error) {
	if err := op.checkArity(children, 2); err != nil {
		return nil, err
	}
	if op.handle != nil {
		return op.handle(op, children[0], children[1], ctx)
	}
	return op.Handle(children[0], children[1], ctx)
}

// Handle is the default evaluation: both children are evaluated, left before
// right, and the results are passed to Perform.
func (op *BinaryOperator) Handle(left, right Expression, ctx *Context) (yamp.Value, error) {
	l, err := left.Interpret(ctx)
	if err != nil {
		return nil, err
	}
	r, err := right.Interpret(ctx)
	if err != nil {
		return nil, err
	}
	return op.Perform(ctx, l, r)
}

// Perform combines two operand values.
func (op *BinaryOperator) Perform(ctx *Context, left, right yamp.Value) (yamp.Value, error) {
	if op.perform == nil {
		return nil, &yamp.OperationInvalidError{Operator: op.symbol,
			Left: yamp.TypeName(left), Right: yamp.TypeName(right)}
	}
	return op.perform(ctx, left, right)
}

// Code returns the source form of the operation.
func (op *BinaryOperator) Code(children []Expression) string {
	if len(children) != 2 {
		return op.symbol
	}
	if op.code != nil {
		return op.code(children[0].Code(), children[1].Code())
	}
	if op.symbol == "," {
		return children[0].Code() + ", " + children[1].Code()
	}
	return children[0].Code() + " " + op.symbol + " " + children[1].Code()
}

// --- Unary operators -------------------------------------------------------

// UnaryPerformer transforms an operand value.
type UnaryPerformer func(ctx *Context, v yamp.Value) (yamp.Value, error)

// UnaryOperator is a prefix or postfix operator with one child.
type UnaryOperator struct {
	opBase
	perform UnaryPerformer
}

var _ Operator = &UnaryOperator{}

// NewUnary creates a prefix or postfix operator prototype.
func NewUnary(symbol string, level int, fixity Fixity, perform UnaryPerformer) *UnaryOperator {
	return &UnaryOperator{
		opBase:  opBase{symbol: symbol, level: level, fixity: fixity},
		perform: perform,
	}
}

// DispatchedUnary creates a unary operator prototype which looks up its
// implementation in the unary dispatch table for its symbol.
func DispatchedUnary(symbol string, level int, fixity Fixity) *UnaryOperator {
	return NewUnary(symbol, level, fixity, func(ctx *Context, v yamp.Value) (yamp.Value, error) {
		return ctx.Registry().InvokeUnary(symbol, v)
	})
}

// Arity returns 1.
func (op *UnaryOperator) Arity() int {
	return 1
}

// Create returns an instance of the prototype for a source position.
func (op *UnaryOperator) Create(pos Position) Operator {
	c := *op
	c.pos = pos
	return &c
}

// Evaluate checks the number of children and calls Handle.
func (op *UnaryOperator) Evaluate(children []Expression, ctx *Context) (yamp.Value, error) {
	if err := op.checkArity(children, 1); err != nil {
		return nil, err
	}
	return op.Handle(children[0], ctx)
}

// Handle evaluates the child, then calls Perform.
func (op *UnaryOperator) Handle(e Expression, ctx *Context) (yamp.Value, error) {
	v, err := e.Interpret(ctx)
	if err != nil {
		return nil, err
	}
	return op.perform(ctx, v)
}

// Code returns the source form of the operation.
func (op *UnaryOperator) Code(children []Expression) string {
	if len(children) != 1 {
		return op.symbol
	}
	if op.fixity == Postfix {
		return children[0].Code() + op.symbol
	}
	return op.symbol + children[0].Code()
}
