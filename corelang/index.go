package corelang

import (
	yamp "github.com/FlorianRappl/YAMP-sub003"
)

// Index selects elements of a matrix or range with 1-based indices. One
// index addresses elements linearly, row by row; two indices address rows
// and columns. An index is a number, a vector of numbers or a range; an
// open range ends at the size of the indexed dimension.
//
// Selecting a single element yields a Number, otherwise a Matrix.
func Index(v yamp.Value, args []yamp.Value) (yamp.Value, error) {
	m, err := indexable(v)
	if err != nil {
		return nil, err
	}
	switch len(args) {
	case 1:
		ks, scalar, err := positions(args[0], m.Len(), 1)
		if err != nil {
			return nil, err
		}
		if scalar {
			return m.AtLinear(ks[0])
		}
		elems := make([]yamp.Number, len(ks))
		for i, k := range ks {
			if elems[i], err = m.AtLinear(k); err != nil {
				return nil, err
			}
		}
		if m.Cols() == 1 && m.Rows() > 1 {
			return yamp.ColumnVector(elems...), nil
		}
		return yamp.RowVector(elems...), nil
	case 2:
		is, si, err := positions(args[0], m.Rows(), 1)
		if err != nil {
			return nil, err
		}
		js, sj, err := positions(args[1], m.Cols(), 2)
		if err != nil {
			return nil, err
		}
		if si && sj {
			return m.At(is[0], js[0])
		}
		if err = yamp.CheckSize("()", len(is), len(js)); err != nil {
			return nil, err
		}
		r := yamp.NewMatrix(len(is), len(js))
		for a, i := range is {
			for b, j := range js {
				n, err := m.At(i, j)
				if err != nil {
					return nil, err
				}
				r.Set(a+1, b+1, n)
			}
		}
		return r, nil
	}
	return nil, &yamp.ArgumentNumberError{Function: "()", Given: len(args), Expected: 2}
}

// indexable returns the matrix a value stands for when it is indexed.
func indexable(v yamp.Value) (*yamp.Matrix, error) {
	if r, ok := v.(*yamp.Range); ok && r.Open {
		return nil, yamp.IndexError("()", "cannot index an open range")
	}
	return yamp.AsMatrix(v)
}

// indexArguments evaluates the argument list of an index into m. Within the
// k-th argument, `end` is the size of the k-th dimension of m, or the number
// of elements of m for a single argument.
func indexArguments(args Expression, m *yamp.Matrix, ctx *Context) ([]yamp.Value, error) {
	exprs := argumentList(args)
	argv := make([]yamp.Value, 0, len(exprs))
	for k, e := range exprs {
		v, err := e.Interpret(ctx.indexed(extent(m, k, len(exprs))))
		if err != nil {
			return nil, err
		}
		switch x := v.(type) {
		case nil:
		case *yamp.Tuple:
			argv = append(argv, x.Values()...)
		default:
			argv = append(argv, v)
		}
	}
	return argv, nil
}

// argumentList splits a comma separated argument list.
func argumentList(e Expression) []Expression {
	if g, ok := e.(*Group); ok {
		if g.inner == nil {
			return nil
		}
		e = g.inner
	}
	e = unwrap(e)
	if c, ok := e.(*Container); ok && c.op != nil && c.op.Symbol() == "," && len(c.children) == 2 {
		return append(argumentList(c.children[0]), argumentList(c.children[1])...)
	}
	return []Expression{e}
}

func extent(m *yamp.Matrix, k, n int) int {
	switch {
	case n == 1:
		return m.Len()
	case k == 0:
		return m.Rows()
	case k == 1:
		return m.Cols()
	}
	return 1
}

// SetIndexed assigns v to the elements of m addressed by args, growing m as
// needed. v is either a number, assigned to every addressed element, or a
// matrix with exactly one element per addressed element.
func SetIndexed(m *yamp.Matrix, args []yamp.Value, v yamp.Value) error {
	var source func(k int) yamp.Number
	count := -1
	switch x := v.(type) {
	case yamp.Number:
		source = func(int) yamp.Number { return x }
	case *yamp.Matrix, *yamp.Range:
		src, err := yamp.AsMatrix(x)
		if err != nil {
			return err
		}
		count = src.Len()
		source = func(k int) yamp.Number {
			n, _ := src.AtLinear(k + 1)
			return n
		}
	default:
		return &yamp.ArgumentTypeError{Function: "()=", Index: len(args) + 1,
			Actual: yamp.TypeName(v), Expected: yamp.NumericType.Name()}
	}
	switch len(args) {
	case 1:
		ks, _, err := positions(args[0], m.Len(), 1)
		if err != nil {
			return err
		}
		if count >= 0 && count != len(ks) {
			return yamp.DimensionError("()=", "cannot assign %d elements to %d positions", count, len(ks))
		}
		for i, k := range ks {
			if err := m.SetLinear(k, source(i)); err != nil {
				return err
			}
		}
		return nil
	case 2:
		is, _, err := positions(args[0], m.Rows(), 1)
		if err != nil {
			return err
		}
		js, _, err := positions(args[1], m.Cols(), 2)
		if err != nil {
			return err
		}
		if count >= 0 && count != len(is)*len(js) {
			return yamp.DimensionError("()=", "cannot assign %d elements to %d×%d positions",
				count, len(is), len(js))
		}
		k := 0
		for _, i := range is {
			for _, j := range js {
				if err := m.Set(i, j, source(k)); err != nil {
					return err
				}
				k++
			}
		}
		return nil
	}
	return &yamp.ArgumentNumberError{Function: "()=", Given: len(args), Expected: 2}
}

// positions converts an index value to a list of 1-based positions. scalar
// reports a single number as index. dim is the size of the indexed
// dimension, bounding open ranges.
func positions(v yamp.Value, dim int, argIndex int) (ks []int, scalar bool, err error) {
	switch x := v.(type) {
	case yamp.Number:
		k, err := position(x)
		return []int{k}, true, err
	case *yamp.Range:
		m, err := x.Bounded(dim)
		if err != nil {
			return nil, false, err
		}
		return matrixPositions(m)
	case *yamp.Matrix:
		return matrixPositions(x)
	}
	return nil, false, &yamp.ArgumentTypeError{Function: "()", Index: argIndex,
		Actual: yamp.TypeName(v), Expected: yamp.NumericType.Name()}
}

func matrixPositions(m *yamp.Matrix) ([]int, bool, error) {
	ks := make([]int, 0, m.Len())
	var err error
	m.Each(func(_, _ int, n yamp.Number) {
		k, e := position(n)
		if e != nil && err == nil {
			err = e
		}
		ks = append(ks, k)
	})
	return ks, false, err
}

func position(n yamp.Number) (int, error) {
	if !n.IsReal() || !n.IsInteger() || n.Re() < 1 {
		return 0, yamp.IndexError("()", "%s is not a valid index", n)
	}
	if n.Re() > yamp.MaxElements {
		return 0, yamp.IndexError("()", "index %s exceeds %d elements", n, yamp.MaxElements)
	}
	return n.Int(), nil
}
