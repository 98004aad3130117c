package yamp

import (
	"encoding"
	"encoding/binary"
	"math"
	"math/cmplx"
	"strings"

	"github.com/shopspring/decimal"
)

// --- Value -----------------------------------------------------------------

// Value is an interface for all values which YAMP can handle.
//
// Values serialize themselves with MarshalBinary. The serialized form is
// prefixed by nothing; callers store the type name alongside and use a
// Decoder to restore values.
type Value interface {
	Type() *Type             // type of the value
	Copy() Value             // independent copy, sharing no mutable state
	Render(f Format) string  // text representation for a given format
	String() string          // text representation in default format
	encoding.BinaryMarshaler // stable byte layout
}

// Format controls the text representation of values.
type Format struct {
	Precision int32 // number of decimal digits for numbers
}

// DefaultFormat renders numbers with 4 decimal digits.
var DefaultFormat = Format{Precision: 4}

// IsTrue returns the truth value of v. Numbers are true if non-zero, matrices
// if they are non-empty and contain no zero, strings if non-empty.
func IsTrue(v Value) bool {
	switch x := v.(type) {
	case Number:
		return !x.IsZero()
	case *Matrix:
		if x.Len() == 0 {
			return false
		}
		for _, z := range x.data {
			if z == 0 {
				return false
			}
		}
		return true
	case *Range:
		m, err := x.Matrix()
		return err == nil && IsTrue(m)
	case String:
		return x.Len() > 0
	case *Tuple:
		return x.Len() > 0
	}
	return v != nil
}

// Bool returns 1 for true and 0 for false.
func Bool(b bool) Number {
	if b {
		return Real(1)
	}
	return Real(0)
}

// --- Number ----------------------------------------------------------------

// Number is a complex scalar. Numbers with a zero imaginary part behave as
// real numbers; operations produce complex results only where mathematically
// required.
type Number struct {
	re, im float64
}

var _ Value = Number{}

// Real creates a real number.
func Real(x float64) Number {
	return Number{re: x}
}

// Complex creates a complex number.
func Complex(re, im float64) Number {
	return Number{re: re, im: im}
}

// FromComplex128 creates a number from a Go complex value.
func FromComplex128(z complex128) Number {
	return Number{re: real(z), im: imag(z)}
}

// Type returns NumberType.
func (n Number) Type() *Type {
	return NumberType
}

// Copy returns n. Numbers are immutable.
func (n Number) Copy() Value {
	return n
}

// Re returns the real part.
func (n Number) Re() float64 {
	return n.re
}

// Im returns the imaginary part.
func (n Number) Im() float64 {
	return n.im
}

// Complex128 returns n as a Go complex value.
func (n Number) Complex128() complex128 {
	return complex(n.re, n.im)
}

// IsReal is a predicate: is the imaginary part zero?
func (n Number) IsReal() bool {
	return n.im == 0
}

// IsZero is a predicate: is n = 0?
func (n Number) IsZero() bool {
	return n.re == 0 && n.im == 0
}

// IsInteger is a predicate: is n a real integer?
func (n Number) IsInteger() bool {
	return n.im == 0 && n.re == math.Trunc(n.re) && !math.IsInf(n.re, 0)
}

// Int returns the real part as an int, truncated.
func (n Number) Int() int {
	return int(n.re)
}

// Add calculates n + m.
func (n Number) Add(m Number) Number {
	return Number{n.re + m.re, n.im + m.im}
}

// Sub calculates n - m.
func (n Number) Sub(m Number) Number {
	return Number{n.re - m.re, n.im - m.im}
}

// Mul calculates n * m.
func (n Number) Mul(m Number) Number {
	if n.IsReal() && m.IsReal() {
		return Real(n.re * m.re)
	}
	return FromComplex128(n.Complex128() * m.Complex128())
}

// Div calculates n / m. Division of reals by zero yields an infinity, as
// IEEE arithmetic does.
func (n Number) Div(m Number) Number {
	if n.IsReal() && m.IsReal() {
		return Real(n.re / m.re)
	}
	return FromComplex128(n.Complex128() / m.Complex128())
}

// Neg calculates -n.
func (n Number) Neg() Number {
	return Number{-n.re, -n.im}
}

// Conj returns the complex conjugate of n.
func (n Number) Conj() Number {
	return Number{n.re, -n.im}
}

// Abs returns |n|.
func (n Number) Abs() Number {
	if n.IsReal() {
		return Real(math.Abs(n.re))
	}
	return Real(cmplx.Abs(n.Complex128()))
}

// Pow calculates n^m. A negative real base with a non-integer real exponent
// yields a complex result.
func (n Number) Pow(m Number) Number {
	if n.IsReal() && m.IsReal() && (n.re >= 0 || m.IsInteger()) {
		return Real(math.Pow(n.re, m.re))
	}
	return FromComplex128(cmplx.Pow(n.Complex128(), m.Complex128()))
}

// Sqrt calculates the principal square root of n.
func (n Number) Sqrt() Number {
	if n.IsReal() {
		if n.re >= 0 {
			return Real(math.Sqrt(n.re))
		}
		return Complex(0, math.Sqrt(-n.re))
	}
	return FromComplex128(cmplx.Sqrt(n.Complex128()))
}

// Mod calculates n modulo m for real numbers, with the sign of m.
func (n Number) Mod(m Number) Number {
	if m.re == 0 {
		return Real(n.re)
	}
	return Real(n.re - math.Floor(n.re/m.re)*m.re)
}

// Equals is a predicate: is n = m?
func (n Number) Equals(m Number) bool {
	return n.re == m.re && n.im == m.im
}

// Render returns a number as text, rounded to the precision of f.
func (n Number) Render(f Format) string {
	if n.im == 0 {
		return renderFloat(n.re, f)
	}
	var b strings.Builder
	if n.re != 0 {
		b.WriteString(renderFloat(n.re, f))
		if n.im >= 0 || math.IsNaN(n.im) {
			b.WriteByte('+')
		}
	}
	b.WriteString(renderFloat(n.im, f))
	b.WriteByte('i')
	return b.String()
}

func (n Number) String() string {
	return n.Render(DefaultFormat)
}

func renderFloat(x float64, f Format) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	}
	return decimal.NewFromFloat(x).Round(f.Precision).String()
}

// MarshalBinary stores the real and imaginary part as little endian IEEE
// floats.
func (n Number) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(n.re))
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(n.im))
	return buf, nil
}

// UnmarshalBinary restores a number serialized with MarshalBinary.
func (n *Number) UnmarshalBinary(data []byte) error {
	if len(data) != 16 {
		return &FormatError{Tag: NumberType.Name(), Msg: "payload must have 16 bytes"}
	}
	n.re = math.Float64frombits(binary.LittleEndian.Uint64(data[0:]))
	n.im = math.Float64frombits(binary.LittleEndian.Uint64(data[8:]))
	return nil
}
