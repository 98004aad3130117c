package yamp

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type nativeLoader struct{}

func (nativeLoader) LoadFunction(name string, native bool, params []string, body string) (*Function, error) {
	c := CallableFunc(func(args []Value) (Value, error) { return Real(1), nil })
	if native {
		return NewNative(name, c), nil
	}
	return NewClosure(name, params, body, c), nil
}

func sampleValues(t *testing.T) []Value {
	m, err := MatrixFromRows([]float64{1, 2}, []float64{3, 4})
	if err != nil {
		t.Fatal(err)
	}
	mp := NewMap()
	mp.Set("b", Real(2))
	mp.Set("a", NewString("x"))
	mp.Set("m", m.Copy())
	noop := CallableFunc(func(args []Value) (Value, error) { return nil, nil })
	return []Value{
		Real(7),
		Complex(1.5, -2),
		m,
		NewRange(1, 2, 9),
		OpenRange(2, 1),
		NewString("héllo\n"),
		NewTuple(Real(1), NewString("two"), NewTuple(Real(3), Real(4))),
		mp,
		NewNative("sqrt", noop),
		NewClosure("", []string{"x", "y"}, "x + y", noop),
	}
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp")
	defer teardown()
	//
	dec := NewDecoder(nativeLoader{})
	for _, v := range sampleValues(t) {
		tag, payload, err := Encode(v)
		if err != nil {
			t.Fatalf("cannot encode %s: %v", v, err)
		}
		w, err := dec.Decode(tag, payload)
		if err != nil {
			t.Fatalf("cannot decode %s: %v", v, err)
		}
		if w.Type() != v.Type() {
			t.Errorf("type changed from %s to %s", v.Type(), w.Type())
		}
		if w.String() != v.String() {
			t.Errorf("rendering changed from %q to %q", v.String(), w.String())
		}
		again, _ := w.MarshalBinary()
		if !bytes.Equal(again, payload) {
			t.Errorf("re-serialization of %s differs", v)
		}
	}
}

func TestUnknownTag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp")
	defer teardown()
	//
	_, err := NewDecoder(nil).Decode("Quaternion", []byte{1, 2, 3})
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if KindOf(err) != KindFormatUnsupported {
		t.Errorf("expected kind %s, got %s", KindFormatUnsupported, KindOf(err))
	}
	if _, err = NewDecoder(nil).Decode("Numeric", nil); err == nil {
		t.Errorf("expected abstract type to be rejected")
	}
}

func TestCopySafety(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp")
	defer teardown()
	//
	m := NewMatrix(2, 2)
	c := m.Copy().(*Matrix)
	c.Set(1, 1, Real(5))
	c.Set(3, 3, Real(1))
	if n, _ := m.At(1, 1); !n.IsZero() || m.Rows() != 2 {
		t.Errorf("copy of matrix shares state with original: %s", m)
	}
	mp := NewMap()
	mp.Set("m", NewMatrix(1, 1))
	mc := mp.Copy().(*Map)
	inner, _ := mc.Get("m")
	inner.(*Matrix).Set(1, 1, Real(3))
	mc.Set("x", Real(1))
	if mp.Len() != 1 || mp.String() != "{ m: [0] }" {
		t.Errorf("copy of map shares state with original: %s", mp)
	}
	tp := NewTuple(NewMatrix(1, 1))
	tc := tp.Copy().(*Tuple)
	tc.At(0).(*Matrix).Set(1, 1, Real(9))
	if tp.String() != "[0]" {
		t.Errorf("copy of tuple shares state with original: %s", tp)
	}
}

func TestTupleFlattening(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp")
	defer teardown()
	//
	tp := NewTuple(Real(1), NewTuple(Real(2), NewTuple(Real(3))))
	tp.Append(NewTuple(Real(4), Real(5)))
	if tp.Len() != 5 {
		t.Fatalf("expected 5 flattened elements, have %d", tp.Len())
	}
	for _, v := range tp.Values() {
		if v.Type() == TupleType {
			t.Errorf("tuple contains a nested tuple")
		}
	}
}

func TestNumberArithmetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp")
	defer teardown()
	//
	tests := []struct {
		n      Number
		expect string
	}{
		{Real(1).Add(Real(2).Mul(Real(3))), "7"},
		{Real(1).Div(Real(3)), "0.3333"},
		{Real(4).Sqrt(), "2"},
		{Real(-4).Sqrt(), "2i"},
		{Real(-8).Pow(Real(2)), "64"},
		{Complex(1, 2).Mul(Complex(1, -2)), "5"},
		{Complex(1, 2), "1+2i"},
		{Complex(1, -2), "1-2i"},
		{Real(-7).Mod(Real(3)), "2"},
		{Real(1).Div(Real(0)), "Inf"},
	}
	for i, test := range tests {
		if s := test.n.String(); s != test.expect {
			t.Errorf("%d: expected %s, got %s", i, test.expect, s)
		}
	}
	if !Real(-8).Pow(Real(2)).IsReal() {
		t.Errorf("real power with integer exponent should stay real")
	}
	if Real(-8).Pow(Real(0.5)).IsReal() {
		t.Errorf("negative base with fractional exponent should be complex")
	}
}

func TestMatrixIndexing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp")
	defer teardown()
	//
	m, _ := MatrixFromRows([]float64{1, 2, 3}, []float64{4, 5, 6})
	if n, err := m.At(2, 1); err != nil || n.Re() != 4 {
		t.Errorf("expected m(2,1) = 4, got %v (%v)", n, err)
	}
	if n, err := m.AtLinear(3); err != nil || n.Re() != 3 {
		t.Errorf("expected m(3) = 3, got %v (%v)", n, err)
	}
	if _, err := m.At(3, 1); KindOf(err) != KindIndex {
		t.Errorf("expected index failure, got %v", err)
	}
	p, err := m.Product(ColumnVector(Real(1), Real(1), Real(1)))
	if err != nil || p.String() != "[6; 15]" {
		t.Errorf("expected [6; 15], got %v (%v)", p, err)
	}
	if _, err = m.Product(m); KindOf(err) != KindDimension {
		t.Errorf("expected dimension failure, got %v", err)
	}
	if s := m.Transpose().String(); s != "[1, 4; 2, 5; 3, 6]" {
		t.Errorf("unexpected transpose %s", s)
	}
	if s := NewRange(1, 2, 9).String(); s != "[1, 3, 5, 7, 9]" {
		t.Errorf("unexpected range %s", s)
	}
	if _, err = OpenRange(1, 1).Matrix(); err == nil {
		t.Errorf("expected open range to refuse materialization")
	}
	if b, err := OpenRange(2, 1).Bounded(4); err != nil || b.String() != "[2, 3, 4]" {
		t.Errorf("unexpected bounded range %v (%v)", b, err)
	}
}

func TestMatrixSizeLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp")
	defer teardown()
	//
	if err := CheckSize("zeros", 1<<12, 1<<12); err != nil {
		t.Errorf("expected %d elements to be allowed, got %v", MaxElements, err)
	}
	if err := CheckSize("zeros", 1<<12, 1<<12+1); KindOf(err) != KindOverflow {
		t.Errorf("expected overflow above %d elements, got %v", MaxElements, err)
	}
	if err := CheckSize("zeros", 1<<40, 1<<40); KindOf(err) != KindOverflow {
		t.Errorf("expected overflow for a product beyond int range, got %v", err)
	}
	m := NewMatrix(1, 1)
	if err := m.Set(1<<13, 1<<13, Real(1)); KindOf(err) != KindOverflow {
		t.Errorf("expected growing beyond the limit to fail, got %v", err)
	}
	if err := m.SetLinear(MaxElements+1, Real(1)); KindOf(err) != KindOverflow {
		t.Errorf("expected linear growth beyond the limit to fail, got %v", err)
	}
	if m.Rows() != 1 || m.Cols() != 1 {
		t.Errorf("failed growth changed the matrix to %d×%d", m.Rows(), m.Cols())
	}
	huge := NewRange(1, 1, 1e10)
	if _, err := huge.Matrix(); KindOf(err) != KindOverflow {
		t.Errorf("expected huge range to overflow, got %v", err)
	}
	if _, err := OpenRange(1, 1e-12).Bounded(10); KindOf(err) != KindOverflow {
		t.Errorf("expected bounded range with tiny step to overflow, got %v", err)
	}
	if s := huge.String(); s != "1:1:10000000000" {
		t.Errorf("expected huge range to render in colon notation, got %s", s)
	}
}

func TestCorruptMatrixPayload(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp")
	defer teardown()
	//
	wrapping := binary.AppendUvarint(nil, 1<<60)
	wrapping = binary.AppendUvarint(wrapping, 16)
	short := binary.AppendUvarint(nil, 2)
	short = binary.AppendUvarint(short, 2)
	short = append(short, make([]byte, 16)...)
	payloads := map[string][]byte{
		"Matrix": nil,
		"Range":  {1, 2, 3},
	}
	dec := NewDecoder(nil)
	for _, p := range [][]byte{wrapping, short} {
		if _, err := dec.Decode("Matrix", p); KindOf(err) != KindFormatUnsupported {
			t.Errorf("expected matrix payload %v to be rejected, got %v", p, err)
		}
	}
	for tag, p := range payloads {
		if _, err := dec.Decode(tag, p); KindOf(err) != KindFormatUnsupported {
			t.Errorf("expected %s payload %v to be rejected, got %v", tag, p, err)
		}
	}
}

func TestTypeLattice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp")
	defer teardown()
	//
	if !RangeType.IsA(MatrixType) || !RangeType.IsA(NumericType) || !NumberType.IsA(AnyType) {
		t.Errorf("range should be a matrix, a numeric and a value")
	}
	if StringType.IsA(NumericType) || MatrixType.IsA(RangeType) {
		t.Errorf("is-a relation must not hold upwards or across branches")
	}
	if NumberType.Weight() >= NumericType.Weight() || NumericType.Weight() >= AnyType.Weight() {
		t.Errorf("general types should weigh more than specific types")
	}
}
