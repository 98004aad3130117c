package corelang

import (
	yamp "github.com/FlorianRappl/YAMP-sub003"
)

// assign evaluates the right side and stores a copy of its value in the
// location the left side denotes.
func assign(op *BinaryOperator, left, right Expression, ctx *Context) (yamp.Value, error) {
	target, err := locate(left)
	if err != nil {
		return nil, err
	}
	v, err := right.Interpret(ctx)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, &yamp.OperationInvalidError{Operator: "=", Left: target.kind(), Right: "void"}
	}
	return target.store(ctx, v.Copy())
}

// compoundAssign creates the handler for an operation followed by an
// assignment, e.g. a += 1.
func compoundAssign(symbol string) BinaryHandler {
	return func(op *BinaryOperator, left, right Expression, ctx *Context) (yamp.Value, error) {
		target, err := locate(left)
		if err != nil {
			return nil, err
		}
		current, err := left.Interpret(ctx)
		if err != nil {
			return nil, err
		}
		r, err := right.Interpret(ctx)
		if err != nil {
			return nil, err
		}
		v, err := ctx.Registry().InvokeBinary(symbol, current, r)
		if err != nil {
			return nil, err
		}
		return target.store(ctx, v)
	}
}

// location is an assignable place: a variable, elements of a matrix
// variable or an entry of a map variable.
type location struct {
	name  string
	index Expression // argument list of A(i, j)
	key   string     // entry of m.key
}

func (loc location) kind() string {
	switch {
	case loc.index != nil:
		return "Index"
	case loc.key != "":
		return "Member"
	}
	return "Symbol"
}

// locate finds the location an expression denotes.
func locate(e Expression) (location, error) {
	e = unwrap(e)
	switch x := e.(type) {
	case *Symbol:
		return location{name: x.name}, nil
	case *Container:
		if x.op != nil && len(x.children) == 2 {
			if sym, ok := unwrap(x.children[0]).(*Symbol); ok {
				switch x.op.Symbol() {
				case "(":
					return location{name: sym.name, index: x.children[1]}, nil
				case ".":
					if key, ok := unwrap(x.children[1]).(*Symbol); ok {
						return location{name: sym.name, key: key.name}, nil
					}
				}
			}
		}
	}
	return location{}, &yamp.OperationInvalidError{Operator: "=", Left: "Expression"}
}

// store puts v into the location and returns the new value of the variable.
func (loc location) store(ctx *Context, v yamp.Value) (yamp.Value, error) {
	tracer().Debugf("assign %s %s", loc.kind(), loc.name)
	switch {
	case loc.index != nil:
		return loc.storeIndexed(ctx, v)
	case loc.key != "":
		return loc.storeMember(ctx, v)
	}
	ctx.Assign(loc.name, v)
	return v, nil
}

func (loc location) storeIndexed(ctx *Context, v yamp.Value) (yamp.Value, error) {
	var m *yamp.Matrix
	var err error
	current, _ := ctx.Lookup(loc.name)
	switch x := current.(type) {
	case nil:
		m = yamp.NewMatrix(0, 0)
	case yamp.Number:
		m = yamp.RowVector(x)
	case *yamp.Matrix:
		m = x.Copy().(*yamp.Matrix)
	case *yamp.Range:
		if m, err = x.Matrix(); err != nil {
			return nil, err
		}
	default:
		return nil, &yamp.OperationInvalidError{Operator: "()=", Left: yamp.TypeName(current),
			Right: yamp.TypeName(v)}
	}
	args, err := indexArguments(loc.index, m, ctx)
	if err != nil {
		return nil, err
	}
	if err = SetIndexed(m, args, v); err != nil {
		return nil, err
	}
	ctx.Assign(loc.name, m)
	return m, nil
}

func (loc location) storeMember(ctx *Context, v yamp.Value) (yamp.Value, error) {
	var m *yamp.Map
	current, _ := ctx.Lookup(loc.name)
	switch x := current.(type) {
	case nil:
		m = yamp.NewMap()
	case *yamp.Map:
		m = x.Copy().(*yamp.Map)
	default:
		return nil, &yamp.OperationInvalidError{Operator: ".=", Left: yamp.TypeName(current),
			Right: yamp.TypeName(v)}
	}
	m.Set(loc.key, v)
	ctx.Assign(loc.name, m)
	return m, nil
}
