package corelang

import (
	"errors"
	"strconv"
	"testing"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var binaries, unaries = func() (map[string]Operator, map[string]Operator) {
	b, u := make(map[string]Operator), make(map[string]Operator)
	for _, op := range StandardOperators() {
		if op.Arity() == 1 {
			u[op.Symbol()] = op
		} else {
			b[op.Symbol()] = op
		}
	}
	return b, u
}()

func bin(symbol string, l, r Expression) *Container {
	return NewContainer(Position{}, binaries[symbol].Create(Position{}), l, r)
}

func pre(symbol string, e Expression) *Container {
	return NewContainer(Position{}, unaries[symbol].Create(Position{}), e)
}

func lit(x float64) *NumberLiteral {
	return NewNumberLiteral(Position{}, yamp.Real(x), strconv.FormatFloat(x, 'g', -1, 64))
}

func sym(name string) *Symbol {
	return NewSymbol(Position{}, name)
}

func args(es ...Expression) *Group {
	if len(es) == 0 {
		return NewGroup(Position{}, nil)
	}
	e := es[0]
	for _, x := range es[1:] {
		e = bin(",", e, x)
	}
	return NewGroup(Position{}, e)
}

func callOf(callee Expression, es ...Expression) *Container {
	return bin("(", callee, args(es...))
}

func newTestContext(t *testing.T) *Context {
	reg := NewRegistry()
	LoadStandardLanguage(reg)
	reg.Seal()
	return NewContext(reg)
}

func eval(t *testing.T, ctx *Context, e Expression) yamp.Value {
	t.Helper()
	v, err := e.Interpret(ctx)
	if err != nil {
		t.Fatalf("%s: %v", e.Code(), err)
	}
	return v
}

func TestArithmetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.core")
	defer teardown()
	//
	ctx := newTestContext(t)
	tests := []struct {
		e      Expression
		expect string
	}{
		{bin("+", lit(1), bin("*", lit(2), lit(3))), "7"},
		{bin("-", bin("-", lit(10), lit(4)), lit(3)), "3"},
		{bin("^", lit(2), bin("^", lit(3), lit(2))), "512"},
		{pre("-", lit(2)), "-2"},
		{bin(`\`, lit(2), lit(8)), "4"},
		{bin("%", lit(-7), lit(3)), "2"},
		{bin("<", lit(1), lit(2)), "1"},
		{bin("==", NewStringLiteral(Position{}, "a", false), NewStringLiteral(Position{}, "a", false)), "1"},
		{bin("+", NewStringLiteral(Position{}, "a", false), NewStringLiteral(Position{}, "b", false)), "ab"},
		{bin("||", lit(0), lit(2)), "1"},
		{bin("&&", lit(0), sym("undefined")), "0"},
		{bin(":", lit(1), bin(":", lit(2), lit(7))), "[1, 3, 5, 7]"},
		{NewAbs(Position{}, lit(-3)), "3"},
		{sym("i"), "1i"},
	}
	for _, test := range tests {
		if v := eval(t, ctx, test.e); v.String() != test.expect {
			t.Errorf("%s: expected %s, got %s", test.e.Code(), test.expect, v)
		}
	}
}

func TestOperationInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.core")
	defer teardown()
	//
	ctx := newTestContext(t)
	e := bin("+", lit(1), NewStringLiteral(Position{}, "x", false))
	_, err := e.Interpret(ctx)
	var operr *yamp.OperationInvalidError
	if !errors.As(err, &operr) {
		t.Fatalf("expected OperationInvalidError, got %v", err)
	}
	if operr.Operator != "+" || operr.Left != "Number" || operr.Right != "String" {
		t.Errorf("unexpected failure details %+v", operr)
	}
	_, err = callOf(lit(1), lit(1)).Interpret(ctx)
	if !errors.As(err, &operr) || operr.Operator != "()" {
		t.Errorf("expected calling a number to fail, got %v", err)
	}
	_, err = sym("nowhere").Interpret(ctx)
	if yamp.KindOf(err) != yamp.KindSymbolUnknown {
		t.Errorf("expected unknown symbol, got %v", err)
	}
}

func TestEndAndColonInIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.core")
	defer teardown()
	//
	ctx := newTestContext(t)
	eval(t, ctx, bin("=", sym("A"), NewMatrixLiteral(Position{},
		[][]Expression{{lit(1), lit(2)}, {lit(3), lit(4)}})))
	tests := []struct {
		e      Expression
		expect string
	}{
		{callOf(sym("A"), sym(EndSymbol)), "4"},
		{callOf(sym("A"), bin("-", sym(EndSymbol), lit(1))), "3"},
		{callOf(sym("A"), sym(EndSymbol), lit(1)), "3"},
		{callOf(sym("A"), sym(AllSymbol), lit(2)), "[2; 4]"},
		{callOf(sym("A"), lit(1), sym(AllSymbol)), "[1, 2]"},
		{callOf(sym("A"), sym(AllSymbol)), "[1, 2, 3, 4]"},
	}
	for _, test := range tests {
		if v := eval(t, ctx, test.e); v.String() != test.expect {
			t.Errorf("%s: expected %s, got %s", test.e.Code(), test.expect, v)
		}
	}
	eval(t, ctx, bin("=", sym("v"), NewMatrixLiteral(Position{}, [][]Expression{{lit(1), lit(2)}})))
	eval(t, ctx, bin("=", callOf(sym("v"), bin("+", sym(EndSymbol), lit(1))), lit(3)))
	if v := eval(t, ctx, sym("v")); v.String() != "[1, 2, 3]" {
		t.Errorf("expected v(end+1) to append, got %s", v)
	}
	if _, err := bin("+", sym(EndSymbol), lit(1)).Interpret(ctx); yamp.KindOf(err) != yamp.KindSymbolUnknown {
		t.Errorf("expected 'end' outside of an index to be unknown, got %v", err)
	}
	if _, err := callOf(sym("sum"), sym(AllSymbol)).Interpret(ctx); yamp.KindOf(err) != yamp.KindSymbolUnknown {
		t.Errorf("expected ':' outside of an index to be unknown, got %v", err)
	}
}

func TestMatrixLiteralAndIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.core")
	defer teardown()
	//
	ctx := newTestContext(t)
	m := NewMatrixLiteral(Position{}, [][]Expression{{lit(1), lit(2)}, {lit(3), lit(4)}})
	eval(t, ctx, bin("=", sym("A"), m))
	v := eval(t, ctx, bin("*", sym("A"), NewMatrixLiteral(Position{}, [][]Expression{{lit(1)}, {lit(1)}})))
	if v.String() != "[3; 7]" {
		t.Errorf("expected [3; 7], got %s", v)
	}
	if v = eval(t, ctx, callOf(sym("A"), lit(2), lit(1))); v.String() != "3" {
		t.Errorf("expected A(2,1) = 3, got %s", v)
	}
	if v = eval(t, ctx, callOf(sym("A"), lit(2))); v.String() != "2" {
		t.Errorf("expected linear index row by row, A(2) = 2, got %s", v)
	}
	if v = eval(t, ctx, callOf(sym("A"), lit(2), bin(":", lit(1), sym("end")))); v.String() != "[3, 4]" {
		t.Errorf("expected open range to run up to end, got %s", v)
	}
	eval(t, ctx, bin("=", callOf(sym("A"), lit(3), lit(3)), lit(9)))
	if v = eval(t, ctx, sym("A")); v.String() != "[1, 2, 0; 3, 4, 0; 0, 0, 9]" {
		t.Errorf("expected matrix to grow, got %s", v)
	}
	eval(t, ctx, bin("+=", callOf(sym("A"), lit(1), lit(1)), lit(10)))
	if v = eval(t, ctx, callOf(sym("A"), lit(1), lit(1))); v.String() != "11" {
		t.Errorf("expected compound assignment on element, got %s", v)
	}
	_, err := callOf(sym("A"), lit(4), lit(1)).Interpret(ctx)
	if yamp.KindOf(err) != yamp.KindIndex {
		t.Errorf("expected index failure, got %v", err)
	}
	if _, err = bin("=", lit(1), lit(2)).Interpret(ctx); yamp.KindOf(err) != yamp.KindOperationInvalid {
		t.Errorf("expected assignment to literal to fail, got %v", err)
	}
}

func TestValueSemantics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.core")
	defer teardown()
	//
	ctx := newTestContext(t)
	eval(t, ctx, bin("=", sym("a"), NewMatrixLiteral(Position{}, [][]Expression{{lit(1), lit(2)}})))
	eval(t, ctx, bin("=", sym("b"), sym("a")))
	eval(t, ctx, bin("=", callOf(sym("b"), lit(1)), lit(5)))
	if v := eval(t, ctx, sym("a")); v.String() != "[1, 2]" {
		t.Errorf("assignment shares state: a = %s", v)
	}
	eval(t, ctx, bin("=", bin(".", sym("m"), sym("x")), lit(1)))
	if v := eval(t, ctx, bin(".", sym("m"), sym("x"))); v.String() != "1" {
		t.Errorf("expected m.x = 1, got %s", v)
	}
}

func TestClosures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.core")
	defer teardown()
	//
	ctx := newTestContext(t)
	// f = (x, y) => x * y + k
	f := bin("=>", args(sym("x"), sym("y")), bin("+", bin("*", sym("x"), sym("y")), sym("k")))
	eval(t, ctx, bin("=", sym("f"), f))
	eval(t, ctx, bin("=", sym("k"), lit(1)))
	if v := eval(t, ctx, callOf(sym("f"), lit(2), lit(3))); v.String() != "7" {
		t.Errorf("expected f(2,3) = 7, got %s", v)
	}
	if _, ok := ctx.Lookup("x"); ok {
		t.Errorf("parameter leaked into the defining scope")
	}
	_, err := callOf(sym("f"), lit(2)).Interpret(ctx)
	var numerr *yamp.ArgumentNumberError
	if !errors.As(err, &numerr) || numerr.Expected != 2 {
		t.Errorf("expected argument number failure, got %v", err)
	}
	if v := eval(t, ctx, sym("f")); v.String() != "(x, y) => x * y + k" {
		t.Errorf("unexpected closure code %s", v)
	}
}

func TestFunctionsAndLoops(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.core")
	defer teardown()
	//
	ctx := newTestContext(t)
	// function fac(n) { r = 1; while (n > 1) { r = r * n; n -= 1 }; return r }
	body := NewBlock(Position{}, []*Statement{
		{Expr: NewContainer(Position{}, nil, bin("=", sym("r"), lit(1)))},
		{Expr: NewContainer(Position{}, nil, NewWhile(Position{}, bin(">", sym("n"), lit(1)),
			NewBlock(Position{}, []*Statement{
				{Expr: bin("=", sym("r"), bin("*", sym("r"), sym("n")))},
				{Expr: bin("-=", sym("n"), lit(1))},
			})))},
		{Expr: NewContainer(Position{}, nil, NewReturn(Position{}, sym("r")))},
		{Expr: NewContainer(Position{}, nil, lit(-1))},
	})
	eval(t, ctx, NewFunctionDef(Position{}, "fac", []string{"n"}, body))
	if v := eval(t, ctx, callOf(sym("fac"), lit(5))); v.String() != "120" {
		t.Errorf("expected fac(5) = 120, got %s", v)
	}
	// for (k = 0; k < 10; k += 1) { if (k == 3) break }
	loop := NewFor(Position{}, bin("=", sym("k"), lit(0)), bin("<", sym("k"), lit(10)),
		bin("+=", sym("k"), lit(1)),
		NewIf(Position{}, bin("==", sym("k"), lit(3)), NewBreak(Position{}), nil))
	eval(t, ctx, loop)
	if v := eval(t, ctx, sym("k")); v.String() != "3" {
		t.Errorf("expected loop to break at k = 3, got %s", v)
	}
	if ctx.interrupted() {
		t.Errorf("break escaped the loop")
	}
}

func TestStandardFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.core")
	defer teardown()
	//
	ctx := newTestContext(t)
	m := NewMatrixLiteral(Position{}, [][]Expression{{lit(1), lit(5)}, {lit(3), lit(2)}})
	str := func(s string) Expression { return NewStringLiteral(Position{}, s, false) }
	tests := []struct {
		e      Expression
		expect string
	}{
		{callOf(sym("sqrt"), lit(-4)), "2i"},
		{callOf(sym("size"), m), "[2, 2]"},
		{callOf(sym("sum"), m), "[4, 7]"},
		{callOf(sym("max"), m), "[3, 5]"},
		{callOf(sym("max"), lit(2), lit(8)), "8"},
		{callOf(sym("zeros"), lit(1), lit(2)), "[0, 0]"},
		{callOf(sym("eye"), lit(2)), "[1, 0; 0, 1]"},
		{callOf(sym("type"), str("s")), "String"},
		{callOf(sym("object"), str("a"), lit(1), str("b"), lit(2)), "{ a: 1, b: 2 }"},
		{callOf(sym("keys"), callOf(sym("object"), str("a"), lit(1))), "a"},
		{bin("^", m, lit(2)), "[16, 15; 9, 19]"},
	}
	for _, test := range tests {
		if v := eval(t, ctx, test.e); v.String() != test.expect {
			t.Errorf("%s: expected %s, got %s", test.e.Code(), test.expect, v)
		}
	}
}

func TestLuaFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.core")
	defer teardown()
	//
	reg := NewRegistry()
	LoadStandardLanguage(reg)
	err := LoadLua(reg, "test", `
function hypot(a, b) return math.sqrt(a*a + b*b) end
function fail() error("boom") end
`)
	if err != nil {
		t.Fatal(err)
	}
	reg.Seal()
	defer reg.Close()
	ctx := NewContext(reg)
	if v := eval(t, ctx, callOf(sym("hypot"), lit(3), lit(4))); v.String() != "5" {
		t.Errorf("expected hypot(3,4) = 5, got %s", v)
	}
	_, err = callOf(sym("fail")).Interpret(ctx)
	if yamp.KindOf(err) != yamp.KindScript {
		t.Errorf("expected script failure, got %v", err)
	}
	if _, ok := reg.LookupFunction("print"); ok {
		t.Errorf("predefined Lua globals must not be registered")
	}
}

func TestSealedRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.core")
	defer teardown()
	//
	reg := NewRegistry()
	reg.Seal()
	defer func() {
		if r := recover(); r != ErrSealed {
			t.Errorf("expected registration into sealed registry to panic, got %v", r)
		}
	}()
	reg.Constant("x", yamp.Real(1))
}
