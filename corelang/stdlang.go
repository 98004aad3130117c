package corelang

import (
	"math"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/FlorianRappl/YAMP-sub003/overload"
)

// LoadStandardLanguage registers the operator implementations, functions and
// constants of the standard language with a registry.
func LoadStandardLanguage(reg *Registry) {
	loadArithmetic(reg)
	loadComparisons(reg)
	loadUnary(reg)
	loadFunctions(reg)
	reg.Constant("pi", yamp.Real(math.Pi))
	reg.Constant("e", yamp.Real(math.E))
	reg.Constant("i", yamp.Complex(0, 1))
	reg.Constant("inf", yamp.Real(math.Inf(1)))
	reg.Constant("nan", yamp.Real(math.NaN()))
}

var (
	num = yamp.NumberType
	mat = yamp.MatrixType
	str = yamp.StringType
)

type numberOp func(a, b yamp.Number) yamp.Number

// matrix returns a matrix operand; ranges are materialized.
func matrix(v yamp.Value) (*yamp.Matrix, error) {
	return yamp.AsMatrix(v)
}

// mapped applies f to every element of a matrix operand.
func mapped(v yamp.Value, f func(yamp.Number) yamp.Number) (yamp.Value, error) {
	m, err := matrix(v)
	if err != nil {
		return nil, err
	}
	return m.Map(f), nil
}

// scalar registers f for a number and a number, and element by element for
// a matrix and a number in both orders.
func scalar(reg *Registry, symbol string, f numberOp) {
	reg.Binary(symbol).
		Register(num, num, func(l, r yamp.Value) (yamp.Value, error) {
			return f(l.(yamp.Number), r.(yamp.Number)), nil
		}).
		Register(mat, num, func(l, r yamp.Value) (yamp.Value, error) {
			b := r.(yamp.Number)
			return mapped(l, func(a yamp.Number) yamp.Number { return f(a, b) })
		}).
		Register(num, mat, func(l, r yamp.Value) (yamp.Value, error) {
			a := l.(yamp.Number)
			return mapped(r, func(b yamp.Number) yamp.Number { return f(a, b) })
		})
}

// elementwise registers f for all combinations of numbers and matrices.
func elementwise(reg *Registry, symbol string, f numberOp) {
	scalar(reg, symbol, f)
	reg.Binary(symbol).Register(mat, mat, func(l, r yamp.Value) (yamp.Value, error) {
		a, b, err := matrices(l, r)
		if err != nil {
			return nil, err
		}
		return a.Zip(b, f)
	})
}

// matrices returns two matrix operands.
func matrices(l, r yamp.Value) (*yamp.Matrix, *yamp.Matrix, error) {
	a, err := matrix(l)
	if err != nil {
		return nil, nil, err
	}
	b, err := matrix(r)
	return a, b, err
}

func loadArithmetic(reg *Registry) {
	add := func(a, b yamp.Number) yamp.Number { return a.Add(b) }
	sub := func(a, b yamp.Number) yamp.Number { return a.Sub(b) }
	mul := func(a, b yamp.Number) yamp.Number { return a.Mul(b) }
	div := func(a, b yamp.Number) yamp.Number { return a.Div(b) }
	pow := func(a, b yamp.Number) yamp.Number { return a.Pow(b) }
	elementwise(reg, "+", add)
	reg.Binary("+").Register(str, str, func(l, r yamp.Value) (yamp.Value, error) {
		return l.(yamp.String).Concat(r.(yamp.String)), nil
	})
	elementwise(reg, "-", sub)
	scalar(reg, "*", mul)
	reg.Binary("*").Register(mat, mat, func(l, r yamp.Value) (yamp.Value, error) {
		a, b, err := matrices(l, r)
		if err != nil {
			return nil, err
		}
		return a.Product(b)
	})
	scalar(reg, "/", div)
	scalar(reg, `\`, func(a, b yamp.Number) yamp.Number { return b.Div(a) })
	scalar(reg, "%", func(a, b yamp.Number) yamp.Number { return a.Mod(b) })
	elementwise(reg, ".*", mul)
	elementwise(reg, "./", div)
	elementwise(reg, ".^", pow)
	reg.Binary("^").
		Register(num, num, func(l, r yamp.Value) (yamp.Value, error) {
			return l.(yamp.Number).Pow(r.(yamp.Number)), nil
		}).
		Register(mat, num, matrixPower)
}

// matrixPower raises a square matrix to a non-negative integer power.
func matrixPower(l, r yamp.Value) (yamp.Value, error) {
	m, err := matrix(l)
	if err != nil {
		return nil, err
	}
	n := r.(yamp.Number)
	if m.Rows() != m.Cols() {
		return nil, yamp.DimensionError("^", "matrix must be square, is %d×%d", m.Rows(), m.Cols())
	}
	if !n.IsReal() || !n.IsInteger() || n.Re() < 0 {
		return nil, &yamp.ArgumentTypeError{Function: "^", Index: 2, Actual: yamp.TypeName(n),
			Expected: "non-negative integer"}
	}
	if n.Re() > math.MaxInt32 {
		return nil, yamp.OverflowError("^", "exponent %s is too large", n)
	}
	result, base := yamp.Identity(m.Rows()), m
	for k := n.Int(); k > 0; k >>= 1 {
		if k&1 == 1 {
			if result, err = result.Product(base); err != nil {
				return nil, err
			}
		}
		if base, err = base.Product(base); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func loadComparisons(reg *Registry) {
	compare := func(symbol string, test func(a, b yamp.Number) bool) {
		elementwise(reg, symbol, func(a, b yamp.Number) yamp.Number {
			return yamp.Bool(test(a, b))
		})
	}
	compare("==", func(a, b yamp.Number) bool { return a.Equals(b) })
	compare("!=", func(a, b yamp.Number) bool { return !a.Equals(b) })
	compare("~=", func(a, b yamp.Number) bool { return !a.Equals(b) })
	compare("<", func(a, b yamp.Number) bool { return a.Re() < b.Re() })
	compare(">", func(a, b yamp.Number) bool { return a.Re() > b.Re() })
	compare("<=", func(a, b yamp.Number) bool { return a.Re() <= b.Re() })
	compare(">=", func(a, b yamp.Number) bool { return a.Re() >= b.Re() })
	for _, sym := range []string{"==", "!=", "~="} {
		equal := sym == "=="
		reg.Binary(sym).Register(str, str, func(l, r yamp.Value) (yamp.Value, error) {
			return yamp.Bool((l.(yamp.String).Text() == r.(yamp.String).Text()) == equal), nil
		})
	}
}

func loadUnary(reg *Registry) {
	elems := func(f func(yamp.Number) yamp.Number) (dispatchNum, dispatchMat func(yamp.Value) (yamp.Value, error)) {
		return func(v yamp.Value) (yamp.Value, error) { return f(v.(yamp.Number)), nil },
			func(v yamp.Value) (yamp.Value, error) { return mapped(v, f) }
	}
	unary := func(symbol string, f func(yamp.Number) yamp.Number) {
		n, m := elems(f)
		reg.Unary(symbol).Register(num, n).Register(mat, m)
	}
	unary("-", yamp.Number.Neg)
	unary("+", func(n yamp.Number) yamp.Number { return n })
	not := func(n yamp.Number) yamp.Number { return yamp.Bool(n.IsZero()) }
	unary("!", not)
	unary("~", not)
	unary("abs", yamp.Number.Abs)
	reg.Unary("abs").Register(str, func(v yamp.Value) (yamp.Value, error) {
		return yamp.Real(float64(v.(yamp.String).Len())), nil
	})
	reg.Unary("'").
		Register(num, func(v yamp.Value) (yamp.Value, error) { return v.(yamp.Number).Conj(), nil }).
		Register(mat, func(v yamp.Value) (yamp.Value, error) {
			m, err := matrix(v)
			if err != nil {
				return nil, err
			}
			return m.Transpose().Map(yamp.Number.Conj), nil
		})
}

// --- Functions -------------------------------------------------------------

func loadFunctions(reg *Registry) {
	perElement := func(name string, f func(yamp.Number) yamp.Number) {
		reg.Function(name).
			Params(num).Body(func(args []yamp.Value) (yamp.Value, error) {
			return f(args[0].(yamp.Number)), nil
		}).
			Params(mat).Body(func(args []yamp.Value) (yamp.Value, error) {
			return mapped(args[0], f)
		})
	}
	perElement("abs", yamp.Number.Abs)
	perElement("sqrt", yamp.Number.Sqrt)
	perElement("real", func(n yamp.Number) yamp.Number { return yamp.Real(n.Re()) })
	perElement("imag", func(n yamp.Number) yamp.Number { return yamp.Real(n.Im()) })

	reg.Function("size").
		Params(yamp.NumericType).Body(func(args []yamp.Value) (yamp.Value, error) {
		m, err := matrix(args[0])
		if err != nil {
			return nil, err
		}
		return yamp.RowVector(yamp.Real(float64(m.Rows())), yamp.Real(float64(m.Cols()))), nil
	})
	reg.Function("numel").
		Params(yamp.NumericType).Body(func(args []yamp.Value) (yamp.Value, error) {
		m, err := matrix(args[0])
		if err != nil {
			return nil, err
		}
		return yamp.Real(float64(m.Len())), nil
	})
	reg.Function("length").
		Params(yamp.NumericType).Body(func(args []yamp.Value) (yamp.Value, error) {
		m, err := matrix(args[0])
		if err != nil {
			return nil, err
		}
		return yamp.Real(float64(max(m.Rows(), m.Cols()))), nil
	}).
		Params(str).Body(func(args []yamp.Value) (yamp.Value, error) {
		return yamp.Real(float64(args[0].(yamp.String).Len())), nil
	}).
		Params(yamp.MapType).Body(func(args []yamp.Value) (yamp.Value, error) {
		return yamp.Real(float64(args[0].(*yamp.Map).Len())), nil
	})

	filled := func(name string, fill yamp.Number) {
		create := func(rows, cols yamp.Value) (yamp.Value, error) {
			r, err := dimension(name, rows, 1)
			if err != nil {
				return nil, err
			}
			c, err := dimension(name, cols, 2)
			if err != nil {
				return nil, err
			}
			if err = yamp.CheckSize(name, r, c); err != nil {
				return nil, err
			}
			m := yamp.NewMatrix(r, c)
			if fill.IsZero() {
				return m, nil
			}
			return m.Map(func(yamp.Number) yamp.Number { return fill }), nil
		}
		reg.Function(name).
			Params().Body(func([]yamp.Value) (yamp.Value, error) { return create(yamp.Real(1), yamp.Real(1)) }).
			Params(num).Body(func(args []yamp.Value) (yamp.Value, error) { return create(args[0], args[0]) }).
			Params(num, num).Body(func(args []yamp.Value) (yamp.Value, error) { return create(args[0], args[1]) })
	}
	filled("zeros", yamp.Real(0))
	filled("ones", yamp.Real(1))
	reg.Function("eye").
		Params(num).Body(func(args []yamp.Value) (yamp.Value, error) {
		n, err := dimension("eye", args[0], 1)
		if err != nil {
			return nil, err
		}
		if err = yamp.CheckSize("eye", n, n); err != nil {
			return nil, err
		}
		return yamp.Identity(n), nil
	})

	reg.Function("sum").
		Params(num).Body(func(args []yamp.Value) (yamp.Value, error) { return args[0], nil }).
		Params(mat).Body(func(args []yamp.Value) (yamp.Value, error) {
		m, err := matrix(args[0])
		if err != nil {
			return nil, err
		}
		return reduce(m, yamp.Number.Add)
	})
	extremum := func(name string, better func(a, b float64) bool) {
		pick := func(a, b yamp.Number) yamp.Number {
			if better(b.Re(), a.Re()) {
				return b
			}
			return a
		}
		reg.Function(name).
			Params(num).Body(func(args []yamp.Value) (yamp.Value, error) { return args[0], nil }).
			Params(num, num).Body(func(args []yamp.Value) (yamp.Value, error) {
			return pick(args[0].(yamp.Number), args[1].(yamp.Number)), nil
		}).
			Params(mat).Body(func(args []yamp.Value) (yamp.Value, error) {
			m, err := matrix(args[0])
			if err != nil {
				return nil, err
			}
			if m.Len() == 0 {
				return nil, yamp.LengthError(name, "matrix is empty")
			}
			return reduce(m, pick)
		})
	}
	extremum("max", func(a, b float64) bool { return a > b })
	extremum("min", func(a, b float64) bool { return a < b })

	reg.Function("type").
		Params(yamp.AnyType).Body(func(args []yamp.Value) (yamp.Value, error) {
		return yamp.NewString(yamp.TypeName(args[0])), nil
	})
	reg.Function("disp").
		Params(yamp.AnyType).Body(func(args []yamp.Value) (yamp.Value, error) {
		return yamp.NewString(args[0].String()), nil
	})
	reg.Function("object").
		Params().Group(0, 0, overload.Unbounded, 2).
		Body(func(args []yamp.Value) (yamp.Value, error) {
			pairs := args[0].(*yamp.Tuple)
			m := yamp.NewMap()
			for k := 0; k+1 < pairs.Len(); k += 2 {
				key, ok := pairs.At(k).(yamp.String)
				if !ok {
					return nil, &yamp.ArgumentTypeError{Function: "object", Index: k + 1,
						Actual: yamp.TypeName(pairs.At(k)), Expected: str.Name()}
				}
				m.Set(key.Text(), pairs.At(k+1).Copy())
			}
			return m, nil
		})
	reg.Function("keys").
		Params(yamp.MapType).Body(func(args []yamp.Value) (yamp.Value, error) {
		t := yamp.NewTuple()
		for _, k := range args[0].(*yamp.Map).Keys() {
			t.Append(yamp.NewString(k))
		}
		return t, nil
	})
}

// dimension checks a matrix dimension argument.
func dimension(fn string, v yamp.Value, index int) (int, error) {
	n, ok := v.(yamp.Number)
	if !ok || !n.IsReal() || !n.IsInteger() || n.Re() < 0 {
		return 0, &yamp.ArgumentTypeError{Function: fn, Index: index, Actual: yamp.TypeName(v),
			Expected: "non-negative integer"}
	}
	if n.Re() > yamp.MaxElements {
		return 0, yamp.OverflowError(fn, "dimension %s exceeds %d elements", n, yamp.MaxElements)
	}
	return n.Int(), nil
}

// reduce folds the elements of a vector into a number, and the columns of a
// matrix into a row vector.
func reduce(m *yamp.Matrix, f numberOp) (yamp.Value, error) {
	if m.IsVector() {
		var acc yamp.Number
		for k := 1; k <= m.Len(); k++ {
			n, _ := m.AtLinear(k)
			if k == 1 {
				acc = n
			} else {
				acc = f(acc, n)
			}
		}
		return acc, nil
	}
	r := yamp.NewMatrix(1, m.Cols())
	for j := 1; j <= m.Cols(); j++ {
		acc, _ := m.At(1, j)
		for i := 2; i <= m.Rows(); i++ {
			n, _ := m.At(i, j)
			acc = f(acc, n)
		}
		r.Set(1, j, acc)
	}
	return r, nil
}
