package dispatch

import (
	"errors"
	"testing"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func tagged(s string) BinaryFunc {
	return func(l, r yamp.Value) (yamp.Value, error) {
		return yamp.NewString(s), nil
	}
}

func TestDirectBeatsIndirect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.dispatch")
	defer teardown()
	//
	tab := NewTable("+")
	tab.Register(yamp.NumericType, yamp.NumericType, tagged("f2"))
	tab.Register(yamp.NumberType, yamp.NumberType, tagged("f1"))
	v, err := tab.Invoke(yamp.Real(1), yamp.Real(2))
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "f1" {
		t.Errorf("expected direct hit f1 to win, got %s", v)
	}
}

func TestLastIndirectWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.dispatch")
	defer teardown()
	//
	tab := NewTable("*")
	tab.Register(yamp.AnyType, yamp.AnyType, tagged("any"))
	tab.Register(yamp.MatrixType, yamp.NumericType, tagged("matrix"))
	tab.Register(yamp.NumericType, yamp.NumericType, tagged("numeric"))
	v, err := tab.Invoke(yamp.NewMatrix(1, 1), yamp.Real(2))
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "numeric" {
		t.Errorf("expected last indirect hit to win, got %s", v)
	}
	v, _ = tab.Invoke(yamp.NewString("a"), yamp.Real(2))
	if v.String() != "any" {
		t.Errorf("expected fallback for strings, got %s", v)
	}
}

func TestRangeIsMatrix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.dispatch")
	defer teardown()
	//
	tab := NewTable("+")
	tab.Register(yamp.MatrixType, yamp.NumberType, tagged("matrix+number"))
	v, err := tab.Invoke(yamp.NewRange(1, 1, 3), yamp.Real(1))
	if err != nil || v.String() != "matrix+number" {
		t.Errorf("expected range to dispatch as matrix, got %v (%v)", v, err)
	}
}

func TestOperationInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.dispatch")
	defer teardown()
	//
	tab := NewTable("+")
	tab.Register(yamp.NumberType, yamp.NumberType, tagged("f1"))
	_, err := tab.Invoke(yamp.Real(1), yamp.NewString("x"))
	var operr *yamp.OperationInvalidError
	if !errors.As(err, &operr) {
		t.Fatalf("expected OperationInvalidError, got %v", err)
	}
	if operr.Operator != "+" || operr.Left != "Number" || operr.Right != "String" {
		t.Errorf("unexpected failure details %+v", operr)
	}
}

func TestUnaryTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.dispatch")
	defer teardown()
	//
	ts := NewTables()
	ts.Unary("-").Register(yamp.NumberType, func(v yamp.Value) (yamp.Value, error) {
		return v.(yamp.Number).Neg(), nil
	})
	neg, ok := ts.LookupUnary("-")
	if !ok {
		t.Fatalf("table for unary minus not found")
	}
	v, err := neg.Invoke(yamp.Real(3))
	if err != nil || v.String() != "-3" {
		t.Errorf("expected -3, got %v (%v)", v, err)
	}
	if _, err = neg.Invoke(yamp.NewString("x")); yamp.KindOf(err) != yamp.KindOperationInvalid {
		t.Errorf("expected operation invalid, got %v", err)
	}
}
