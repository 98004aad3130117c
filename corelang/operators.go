package corelang

import (
	yamp "github.com/FlorianRappl/YAMP-sub003"
)

// Precedence levels of the standard operators.
const (
	LevelComma      = 1
	LevelAssign     = 2
	LevelLambda     = 3
	LevelOr         = 5
	LevelAnd        = 6
	LevelCompare    = 7
	LevelRange      = 8
	LevelAdditive   = 10
	LevelMultiplier = 20
	LevelPrefix     = 30
	LevelPower      = 40
	LevelPostfix    = 50
)

// StandardOperators returns the prototypes of all operators of the language.
// Operators whose implementation depends on operand types dispatch through
// the registry; the others are structural and evaluate their children
// themselves.
func StandardOperators() []Operator {
	ops := []Operator{
		NewBinary(",", LevelComma, false, comma),
		NewBinary("=", LevelAssign, true, nil).WithHandler(assign),
		NewBinary("=>", LevelLambda, true, nil).WithHandler(lambda),
		NewBinary("||", LevelOr, false, nil).WithHandler(or),
		NewBinary("&&", LevelAnd, false, nil).WithHandler(and),
		NewBinary(":", LevelRange, true, nil).WithHandler(colon).
			withCode(func(l, r string) string { return l + ":" + r }),
		NewBinary(".", LevelPostfix, false, nil).WithHandler(member).
			withCode(func(l, r string) string { return l + "." + r }),
		NewBinary("(", LevelPostfix, false, nil).WithHandler(call).withFixity(Apply).
			withCode(func(l, r string) string { return l + r }),
		DispatchedUnary("'", LevelPostfix, Postfix),
	}
	for _, sym := range []string{"+=", "-=", "*=", "/="} {
		ops = append(ops, NewBinary(sym, LevelAssign, true, nil).WithHandler(compoundAssign(sym[:1])))
	}
	for _, sym := range []string{"==", "!=", "~=", "<", ">", "<=", ">="} {
		ops = append(ops, DispatchedBinary(sym, LevelCompare, false))
	}
	for _, sym := range []string{"+", "-"} {
		ops = append(ops, DispatchedBinary(sym, LevelAdditive, false))
	}
	for _, sym := range []string{"*", "/", `\`, "%", ".*", "./"} {
		ops = append(ops, DispatchedBinary(sym, LevelMultiplier, false))
	}
	for _, sym := range []string{"^", ".^"} {
		ops = append(ops, DispatchedBinary(sym, LevelPower, true))
	}
	for _, sym := range []string{"-", "+", "!", "~"} {
		ops = append(ops, DispatchedUnary(sym, LevelPrefix, Prefix))
	}
	return ops
}

// comma bundles both operands into a tuple.
func comma(ctx *Context, l, r yamp.Value) (yamp.Value, error) {
	return yamp.NewTuple(l, r), nil
}

func or(op *BinaryOperator, left, right Expression, ctx *Context) (yamp.Value, error) {
	l, err := left.Interpret(ctx)
	if err != nil {
		return nil, err
	}
	if yamp.IsTrue(l) {
		return yamp.Bool(true), nil
	}
	r, err := right.Interpret(ctx)
	if err != nil {
		return nil, err
	}
	return yamp.Bool(yamp.IsTrue(r)), nil
}

func and(op *BinaryOperator, left, right Expression, ctx *Context) (yamp.Value, error) {
	l, err := left.Interpret(ctx)
	if err != nil {
		return nil, err
	}
	if !yamp.IsTrue(l) {
		return yamp.Bool(false), nil
	}
	r, err := right.Interpret(ctx)
	if err != nil {
		return nil, err
	}
	return yamp.Bool(yamp.IsTrue(r)), nil
}

// --- Ranges ----------------------------------------------------------------

// colon creates a range. As ':' is right associative, a:s:b arrives as
// a:(s:b); the step is then taken from the nested range operation.
func colon(op *BinaryOperator, left, right Expression, ctx *Context) (yamp.Value, error) {
	start, err := realOperand(left, ctx, 1)
	if err != nil {
		return nil, err
	}
	step, last := 1.0, right
	if c, ok := right.(*Container); ok && c.op != nil && c.op.Symbol() == ":" && len(c.children) == 2 {
		if step, err = realOperand(c.children[0], ctx, 2); err != nil {
			return nil, err
		}
		last = c.children[1]
	}
	if isEndSentinel(last) {
		return yamp.OpenRange(start, step), nil
	}
	end, err := realOperand(last, ctx, 3)
	if err != nil {
		return nil, err
	}
	return yamp.NewRange(start, step, end), nil
}

// isEndSentinel is a predicate: does e stand for the end of an indexed
// dimension?
func isEndSentinel(e Expression) bool {
	for {
		switch x := e.(type) {
		case *Symbol:
			return x.name == "end"
		case *Container:
			if x.op != nil || len(x.children) != 1 {
				return false
			}
			e = x.children[0]
		default:
			return false
		}
	}
}

func realOperand(e Expression, ctx *Context, index int) (float64, error) {
	v, err := e.Interpret(ctx)
	if err != nil {
		return 0, err
	}
	n, ok := v.(yamp.Number)
	if !ok || !n.IsReal() {
		return 0, &yamp.ArgumentTypeError{Function: ":", Index: index,
			Actual: yamp.TypeName(v), Expected: "real " + yamp.NumberType.Name()}
	}
	return n.Re(), nil
}

// --- Members ---------------------------------------------------------------

func member(op *BinaryOperator, left, right Expression, ctx *Context) (yamp.Value, error) {
	v, err := left.Interpret(ctx)
	if err != nil {
		return nil, err
	}
	key, ok := unwrap(right).(*Symbol)
	if !ok {
		return nil, &yamp.OperationInvalidError{Operator: ".", Left: yamp.TypeName(v), Right: "Expression"}
	}
	m, ok := v.(*yamp.Map)
	if !ok {
		return nil, &yamp.OperationInvalidError{Operator: ".", Left: yamp.TypeName(v), Right: yamp.StringType.Name()}
	}
	entry, ok := m.Get(key.name)
	if !ok {
		return nil, &yamp.SymbolError{Name: key.name, Msg: "no such key"}
	}
	return entry, nil
}

// unwrap strips containers without an operator.
func unwrap(e Expression) Expression {
	for {
		c, ok := e.(*Container)
		if !ok || c.op != nil || len(c.children) != 1 {
			return e
		}
		e = c.children[0]
	}
}

// --- Calls -----------------------------------------------------------------

// call applies a callee to an argument list. Functions are called, matrices
// and ranges are indexed.
func call(op *BinaryOperator, callee, args Expression, ctx *Context) (yamp.Value, error) {
	f, err := callee.Interpret(ctx)
	if err != nil {
		return nil, err
	}
	switch x := f.(type) {
	case *yamp.Function:
		argv, err := arguments(args, ctx)
		if err != nil {
			return nil, err
		}
		return x.Call(argv...)
	case *yamp.Matrix, *yamp.Range:
		m, err := indexable(x)
		if err != nil {
			return nil, err
		}
		argv, err := indexArguments(args, m, ctx)
		if err != nil {
			return nil, err
		}
		return Index(m, argv)
	}
	return nil, &yamp.OperationInvalidError{Operator: "()", Left: yamp.TypeName(f),
		Right: yamp.TupleType.Name()}
}

// arguments evaluates an argument list. No value yields no arguments, a tuple
// yields its elements.
func arguments(args Expression, ctx *Context) ([]yamp.Value, error) {
	v, err := args.Interpret(ctx)
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case nil:
		return []yamp.Value{}, nil
	case *yamp.Tuple:
		return x.Values(), nil
	}
	return []yamp.Value{v}, nil
}

// --- Functions -------------------------------------------------------------

// lambda creates an anonymous function from a parameter list and a body.
func lambda(op *BinaryOperator, params, body Expression, ctx *Context) (yamp.Value, error) {
	names, err := ParamNames(params)
	if err != nil {
		return nil, err
	}
	return NewFunction(ctx, "", names, body), nil
}

// ParamNames extracts parameter names from a parameter list: a single
// symbol, or a parenthesized and comma separated list of symbols.
func ParamNames(e Expression) ([]string, error) {
	if g, ok := e.(*Group); ok {
		if g.inner == nil {
			return []string{}, nil
		}
		e = g.inner
	}
	e = unwrap(e)
	switch x := e.(type) {
	case *Symbol:
		return []string{x.name}, nil
	case *Group:
		return ParamNames(x)
	case *Container:
		if x.op != nil && x.op.Symbol() == "," && len(x.children) == 2 {
			l, err := ParamNames(x.children[0])
			if err != nil {
				return nil, err
			}
			r, err := ParamNames(x.children[1])
			if err != nil {
				return nil, err
			}
			return append(l, r...), nil
		}
	}
	return nil, &yamp.OperationInvalidError{Operator: "=>", Left: "Expression"}
}
