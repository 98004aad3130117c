package overload

import (
	"errors"
	"testing"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var num = yamp.NumberType

func numbers(xs ...float64) []yamp.Value {
	v := make([]yamp.Value, len(xs))
	for i, x := range xs {
		v[i] = yamp.Real(x)
	}
	return v
}

// reply returns a body which answers with a tag and the adapted arguments.
func reply(tag string, seen *[]yamp.Value) Body {
	return func(args []yamp.Value) (yamp.Value, error) {
		*seen = args
		return yamp.NewString(tag), nil
	}
}

func threeOverloads(seen *[]yamp.Value) *Function {
	return New("f").
		Params(num).Body(reply("one", seen)).
		Params(num, num).Body(reply("two", seen)).
		Params(num).Group(1, 0, 2, 2).Body(reply("pairs", seen))
}

func TestRanking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.overload")
	defer teardown()
	//
	var seen []yamp.Value
	f := threeOverloads(&seen)
	order := []string{}
	for _, s := range f.Signatures() {
		order = append(order, s.String())
	}
	expect := []string{"(Number, Number)", "(Number)", "(Number, [2×0..2])"}
	for i := range expect {
		if order[i] != expect[i] {
			t.Fatalf("expected ranking %v, got %v", expect, order)
		}
	}
}

func TestRepeatingGroup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.overload")
	defer teardown()
	//
	var seen []yamp.Value
	f := threeOverloads(&seen)
	v, err := f.Call(numbers(1, 2, 3, 4, 5))
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "pairs" {
		t.Fatalf("expected repeating group overload, got %s", v)
	}
	if len(seen) != 2 {
		t.Fatalf("expected 2 adapted arguments, got %d", len(seen))
	}
	tuple, ok := seen[1].(*yamp.Tuple)
	if !ok || tuple.Len() != 4 {
		t.Fatalf("expected arguments 2..5 bundled into a tuple of 4, got %v", seen[1])
	}
	if tuple.String() != "2, 3, 4, 5" {
		t.Errorf("unexpected bundle %s", tuple)
	}
	v, _ = f.Call(numbers(1))
	if v.String() != "one" {
		t.Errorf("expected f(Number) for 1 argument, got %s", v)
	}
	v, _ = f.Call(numbers(1, 2))
	if v.String() != "two" {
		t.Errorf("expected f(Number, Number) for 2 arguments, got %s", v)
	}
	v, _ = f.Call(numbers(1, 2, 3))
	if v.String() != "pairs" || seen[1].(*yamp.Tuple).Len() != 2 {
		t.Errorf("expected one pair for 3 arguments, got %s with %v", v, seen)
	}
}

func TestEmptyGroupPadding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.overload")
	defer teardown()
	//
	var seen []yamp.Value
	f := New("g").Params(num).Group(1, 0, Unbounded, 1).Body(reply("g", &seen))
	if _, err := f.Call(numbers(7)); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || seen[1].(*yamp.Tuple).Len() != 0 {
		t.Errorf("expected trailing group padded with an empty tuple, got %v", seen)
	}
}

func TestGroupFollowedByParameter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.overload")
	defer teardown()
	//
	var seen []yamp.Value
	f := New("h").Params(num, yamp.StringType).Group(0, 0, Unbounded, 1).Body(reply("h", &seen))
	args := append(numbers(1, 2, 3), yamp.NewString("end"))
	if _, err := f.Call(args); err != nil {
		t.Fatal(err)
	}
	if seen[0].(*yamp.Tuple).Len() != 2 || seen[1].String() != "3" || seen[2].String() != "end" {
		t.Errorf("group consumed arguments of later parameters: %v", seen)
	}
}

func TestArgumentNumberClosest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.overload")
	defer teardown()
	//
	var seen []yamp.Value
	f := New("f").
		Params(num).Body(reply("one", &seen)).
		Params(num, num).Body(reply("two", &seen))
	_, err := f.Call(nil)
	var numerr *yamp.ArgumentNumberError
	if !errors.As(err, &numerr) {
		t.Fatalf("expected ArgumentNumberError, got %v", err)
	}
	if numerr.Expected != 1 || numerr.Given != 0 {
		t.Errorf("expected closest count 1 for 0 arguments, got %+v", numerr)
	}
	_, err = f.Call(numbers(1, 2, 3, 4))
	if !errors.As(err, &numerr) || numerr.Expected != 2 {
		t.Errorf("expected closest count 2 for 4 arguments, got %v", err)
	}
}

func TestArgumentTypePosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.overload")
	defer teardown()
	//
	var seen []yamp.Value
	f := New("f").
		Params(num).Body(reply("one", &seen)).
		Params(num, num).Body(reply("two", &seen))
	_, err := f.Call([]yamp.Value{yamp.Real(1), yamp.NewString("x")})
	var typerr *yamp.ArgumentTypeError
	if !errors.As(err, &typerr) {
		t.Fatalf("expected ArgumentTypeError, got %v", err)
	}
	if typerr.Index != 2 || typerr.Actual != "String" || typerr.Expected != "Number" || typerr.Function != "f" {
		t.Errorf("unexpected failure details %+v", typerr)
	}
}

func TestBodyFailurePassesThrough(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.overload")
	defer teardown()
	//
	boom := yamp.LengthError("f", "boom")
	f := New("f").
		Params(num).Body(func([]yamp.Value) (yamp.Value, error) { return nil, boom }).
		Params(yamp.NumericType).Body(func([]yamp.Value) (yamp.Value, error) { return yamp.Real(0), nil })
	_, err := f.Call(numbers(1))
	if err != boom {
		t.Errorf("expected failure of body to pass unchanged, got %v", err)
	}
}

func TestSpecificBeforeGeneral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.overload")
	defer teardown()
	//
	var seen []yamp.Value
	f := New("k").
		Params(yamp.AnyType).Body(reply("any", &seen)).
		Params(yamp.MatrixType).Body(reply("matrix", &seen))
	v, _ := f.Call([]yamp.Value{yamp.NewMatrix(2, 2)})
	if v.String() != "matrix" {
		t.Errorf("expected narrower overload first, got %s", v)
	}
	v, _ = f.Call([]yamp.Value{yamp.NewString("s")})
	if v.String() != "any" {
		t.Errorf("expected general overload as fallback, got %s", v)
	}
}
