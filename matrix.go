package yamp

import (
	"encoding/binary"
	"math"
	"strings"
)

// --- Matrix ----------------------------------------------------------------

// Matrix is a dense 2-dimensional grid of numbers. Indexing is 1-based,
// row first. Setting an element outside the current dimensions grows the
// matrix, padding with zeros.
type Matrix struct {
	rows, cols int
	data       []complex128 // row-major
}

var _ Value = &Matrix{}

// MaxElements is the largest number of elements a matrix may hold.
const MaxElements = 1 << 24

// CheckSize returns an overflow failure for fn if a rows×cols matrix would
// hold more than MaxElements elements.
func CheckSize(fn string, rows, cols int) error {
	if rows < 0 || cols < 0 || (rows > 0 && cols > MaxElements/rows) {
		return OverflowError(fn, "%d×%d matrix exceeds %d elements", rows, cols, MaxElements)
	}
	return nil
}

// NewMatrix creates a zero matrix of the given dimensions.
func NewMatrix(rows, cols int) *Matrix {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	if rows == 0 || cols == 0 {
		rows, cols = 0, 0
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]complex128, rows*cols),
	}
}

// RowVector creates a 1×n matrix from numbers.
func RowVector(elems ...Number) *Matrix {
	m := NewMatrix(1, len(elems))
	for i, n := range elems {
		m.data[i] = n.Complex128()
	}
	return m
}

// ColumnVector creates an n×1 matrix from numbers.
func ColumnVector(elems ...Number) *Matrix {
	m := NewMatrix(len(elems), 1)
	for i, n := range elems {
		m.data[i] = n.Complex128()
	}
	return m
}

// MatrixFromRows creates a matrix from rows of real values. All rows must have
// the same length.
func MatrixFromRows(rows ...[]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return NewMatrix(0, 0), nil
	}
	m := NewMatrix(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, DimensionError("matrix", "rows of unequal length %d and %d", m.cols, len(row))
		}
		for j, x := range row {
			m.data[i*m.cols+j] = complex(x, 0)
		}
	}
	return m, nil
}

// Type returns MatrixType.
func (m *Matrix) Type() *Type {
	return MatrixType
}

// Copy returns a deep copy of m.
func (m *Matrix) Copy() Value {
	c := &Matrix{rows: m.rows, cols: m.cols, data: make([]complex128, len(m.data))}
	copy(c.data, m.data)
	return c
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	return m.cols
}

// Len returns the number of elements.
func (m *Matrix) Len() int {
	return len(m.data)
}

// IsVector is a predicate: has m exactly one row or one column?
func (m *Matrix) IsVector() bool {
	return m.rows == 1 || m.cols == 1
}

// At returns the element at 1-based position (i, j).
func (m *Matrix) At(i, j int) (Number, error) {
	if i < 1 || i > m.rows || j < 1 || j > m.cols {
		return Number{}, IndexError("index", "position (%d,%d) outside of %d×%d matrix",
			i, j, m.rows, m.cols)
	}
	return FromComplex128(m.data[(i-1)*m.cols+j-1]), nil
}

// AtLinear returns the k-th element, counting row by row from 1.
func (m *Matrix) AtLinear(k int) (Number, error) {
	if k < 1 || k > len(m.data) {
		return Number{}, IndexError("index", "index %d outside of %d elements", k, len(m.data))
	}
	return FromComplex128(m.data[k-1]), nil
}

// Set sets the element at 1-based position (i, j), growing the matrix if
// necessary.
func (m *Matrix) Set(i, j int, n Number) error {
	if i < 1 || j < 1 {
		return IndexError("index", "position (%d,%d) is not a valid index", i, j)
	}
	if i > m.rows || j > m.cols {
		rows, cols := max(i, m.rows), max(j, m.cols)
		if err := CheckSize("()=", rows, cols); err != nil {
			return err
		}
		m.resize(rows, cols)
	}
	m.data[(i-1)*m.cols+j-1] = n.Complex128()
	return nil
}

// SetLinear sets the k-th element, counting row by row. A row vector (or an
// empty matrix) grows along its columns, a column vector along its rows.
func (m *Matrix) SetLinear(k int, n Number) error {
	if k < 1 {
		return IndexError("index", "%d is not a valid index", k)
	}
	if k > len(m.data) {
		if err := CheckSize("()=", 1, k); err != nil {
			return err
		}
		switch {
		case m.rows <= 1:
			m.resize(1, k)
		case m.cols == 1:
			m.resize(k, 1)
		default:
			return IndexError("index", "index %d outside of %d×%d matrix", k, m.rows, m.cols)
		}
	}
	m.data[k-1] = n.Complex128()
	return nil
}

func (m *Matrix) resize(rows, cols int) {
	data := make([]complex128, rows*cols)
	for i := 0; i < m.rows; i++ {
		copy(data[i*cols:i*cols+m.cols], m.data[i*m.cols:(i+1)*m.cols])
	}
	m.rows, m.cols, m.data = rows, cols, data
}

// Each calls f for every element, row by row, with 1-based positions.
func (m *Matrix) Each(f func(i, j int, n Number)) {
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			f(i+1, j+1, FromComplex128(m.data[i*m.cols+j]))
		}
	}
}

// Map creates a new matrix of the same dimensions by applying f to every
// element.
func (m *Matrix) Map(f func(Number) Number) *Matrix {
	r := NewMatrix(m.rows, m.cols)
	for k, z := range m.data {
		r.data[k] = f(FromComplex128(z)).Complex128()
	}
	return r
}

// Zip combines two matrices of equal dimensions element by element.
func (m *Matrix) Zip(o *Matrix, f func(a, b Number) Number) (*Matrix, error) {
	if m.rows != o.rows || m.cols != o.cols {
		return nil, DimensionError("elementwise", "%d×%d and %d×%d", m.rows, m.cols, o.rows, o.cols)
	}
	r := NewMatrix(m.rows, m.cols)
	for k := range m.data {
		r.data[k] = f(FromComplex128(m.data[k]), FromComplex128(o.data[k])).Complex128()
	}
	return r, nil
}

// Product calculates the matrix product m · o.
func (m *Matrix) Product(o *Matrix) (*Matrix, error) {
	if m.cols != o.rows {
		return nil, DimensionError("*", "cannot multiply %d×%d by %d×%d", m.rows, m.cols, o.rows, o.cols)
	}
	if err := CheckSize("*", m.rows, o.cols); err != nil {
		return nil, err
	}
	r := NewMatrix(m.rows, o.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < o.cols; j++ {
			var sum complex128
			for k := 0; k < m.cols; k++ {
				sum += m.data[i*m.cols+k] * o.data[k*o.cols+j]
			}
			r.data[i*r.cols+j] = sum
		}
	}
	return r, nil
}

// Transpose returns the transposed matrix. Complex elements are not
// conjugated.
func (m *Matrix) Transpose() *Matrix {
	r := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			r.data[j*r.cols+i] = m.data[i*m.cols+j]
		}
	}
	return r
}

// Identity creates an n×n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// HorzCat concatenates matrices side by side.
func HorzCat(parts ...*Matrix) (*Matrix, error) {
	rows, cols := 0, 0
	for _, p := range parts {
		if p.Len() == 0 {
			continue
		}
		if rows != 0 && p.rows != rows {
			return nil, DimensionError("horzcat", "row counts %d and %d differ", rows, p.rows)
		}
		rows = p.rows
		cols += p.cols
	}
	if err := CheckSize("horzcat", rows, cols); err != nil {
		return nil, err
	}
	r := NewMatrix(rows, cols)
	c := 0
	for _, p := range parts {
		if p.Len() == 0 {
			continue
		}
		for i := 0; i < rows; i++ {
			copy(r.data[i*cols+c:i*cols+c+p.cols], p.data[i*p.cols:(i+1)*p.cols])
		}
		c += p.cols
	}
	return r, nil
}

// VertCat stacks matrices on top of each other.
func VertCat(parts ...*Matrix) (*Matrix, error) {
	rows, cols := 0, 0
	for _, p := range parts {
		if p.Len() == 0 {
			continue
		}
		if cols != 0 && p.cols != cols {
			return nil, DimensionError("vertcat", "column counts %d and %d differ", cols, p.cols)
		}
		cols = p.cols
		rows += p.rows
	}
	if err := CheckSize("vertcat", rows, cols); err != nil {
		return nil, err
	}
	r := NewMatrix(rows, cols)
	k := 0
	for _, p := range parts {
		k += copy(r.data[k:], p.data)
	}
	return r, nil
}

// Render returns the matrix in literal notation, e.g. "[1, 2; 3, 4]".
func (m *Matrix) Render(f Format) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FromComplex128(m.data[i*m.cols+j]).Render(f))
		}
	}
	b.WriteByte(']')
	return b.String()
}

func (m *Matrix) String() string {
	return m.Render(DefaultFormat)
}

// MarshalBinary stores rows and columns as uvarints followed by the elements,
// row by row, as pairs of little endian IEEE floats.
func (m *Matrix) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 2*binary.MaxVarintLen64+16*len(m.data))
	buf = binary.AppendUvarint(buf, uint64(m.rows))
	buf = binary.AppendUvarint(buf, uint64(m.cols))
	for _, z := range m.data {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(real(z)))
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(imag(z)))
	}
	return buf, nil
}

// UnmarshalBinary restores a matrix serialized with MarshalBinary.
func (m *Matrix) UnmarshalBinary(data []byte) error {
	rows, n := binary.Uvarint(data)
	if n <= 0 {
		return &FormatError{Tag: MatrixType.Name(), Msg: "cannot read row count"}
	}
	data = data[n:]
	cols, n := binary.Uvarint(data)
	if n <= 0 {
		return &FormatError{Tag: MatrixType.Name(), Msg: "cannot read column count"}
	}
	data = data[n:]
	if rows > MaxElements || cols > MaxElements || (cols != 0 && rows > MaxElements/cols) {
		return &FormatError{Tag: MatrixType.Name(), Msg: "dimensions exceed maximum matrix size"}
	}
	if uint64(len(data)) != rows*cols*16 {
		return &FormatError{Tag: MatrixType.Name(), Msg: "payload size does not match dimensions"}
	}
	if rows == 0 || cols == 0 {
		rows, cols = 0, 0
	}
	m.rows, m.cols = int(rows), int(cols)
	m.data = make([]complex128, m.rows*m.cols)
	for k := range m.data {
		re := math.Float64frombits(binary.LittleEndian.Uint64(data[16*k:]))
		im := math.Float64frombits(binary.LittleEndian.Uint64(data[16*k+8:]))
		m.data[k] = complex(re, im)
	}
	return nil
}

// --- Range -----------------------------------------------------------------

// Range is a row vector described by start, step and end, as produced by
// `a:b` or `a:s:b`. An open range has `end` as its upper bound, which is
// resolved only when the range is used as an index.
type Range struct {
	Start, Step, End float64
	Open             bool
}

var _ Value = &Range{}

// NewRange creates a closed range.
func NewRange(start, step, end float64) *Range {
	return &Range{Start: start, Step: step, End: end}
}

// OpenRange creates a range up to the `end` of an indexed dimension.
func OpenRange(start, step float64) *Range {
	return &Range{Start: start, Step: step, Open: true}
}

// Type returns RangeType.
func (r *Range) Type() *Type {
	return RangeType
}

// Copy returns a copy of r.
func (r *Range) Copy() Value {
	c := *r
	return &c
}

// rangeCount returns the number of elements from start to end. Ranges with
// more than MaxElements elements, or with NaN bounds, are an overflow.
func rangeCount(start, step, end float64) (int, error) {
	if step == 0 || (step > 0 && start > end) || (step < 0 && start < end) {
		return 0, nil
	}
	n := math.Floor((end-start)/step+1e-10) + 1
	if !(n <= MaxElements) {
		return 0, OverflowError(":", "range of %g elements exceeds %d elements", n, MaxElements)
	}
	return int(n), nil
}

// Matrix materializes a closed range. Materializing an open range is an
// error.
func (r *Range) Matrix() (*Matrix, error) {
	if r.Open {
		return nil, IndexError("end", "'end' is only valid within an index expression")
	}
	return r.materialize(r.End)
}

// Bounded materializes a range, resolving an open end to last.
func (r *Range) Bounded(last int) (*Matrix, error) {
	if r.Open {
		return r.materialize(float64(last))
	}
	return r.materialize(r.End)
}

func (r *Range) materialize(end float64) (*Matrix, error) {
	n, err := rangeCount(r.Start, r.Step, end)
	if err != nil {
		return nil, err
	}
	m := NewMatrix(1, n)
	for k := 0; k < n; k++ {
		m.data[k] = complex(r.Start+float64(k)*r.Step, 0)
	}
	return m, nil
}

// Render returns an open range, or one too large to materialize, in colon
// notation and any other range as the row vector it stands for.
func (r *Range) Render(f Format) string {
	colon := renderFloat(r.Start, f) + ":" + renderFloat(r.Step, f) + ":"
	if r.Open {
		return colon + "end"
	}
	m, err := r.materialize(r.End)
	if err != nil {
		return colon + renderFloat(r.End, f)
	}
	return m.Render(f)
}

func (r *Range) String() string {
	return r.Render(DefaultFormat)
}

// MarshalBinary stores start, step and end as little endian IEEE floats,
// followed by a flag byte for open ranges.
func (r *Range) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 25)
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(r.Start))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(r.Step))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(r.End))
	if r.Open {
		return append(buf, 1), nil
	}
	return append(buf, 0), nil
}

// UnmarshalBinary restores a range serialized with MarshalBinary.
func (r *Range) UnmarshalBinary(data []byte) error {
	if len(data) != 25 {
		return &FormatError{Tag: RangeType.Name(), Msg: "payload must have 25 bytes"}
	}
	r.Start = math.Float64frombits(binary.LittleEndian.Uint64(data[0:]))
	r.Step = math.Float64frombits(binary.LittleEndian.Uint64(data[8:]))
	r.End = math.Float64frombits(binary.LittleEndian.Uint64(data[16:]))
	r.Open = data[24] == 1
	return nil
}

// AsMatrix returns a Number, Matrix or closed Range as a matrix.
func AsMatrix(v Value) (*Matrix, error) {
	switch x := v.(type) {
	case Number:
		return RowVector(x), nil
	case *Matrix:
		return x, nil
	case *Range:
		return x.Matrix()
	}
	return nil, &ArgumentTypeError{Function: "matrix", Index: 1, Actual: TypeName(v), Expected: MatrixType.Name()}
}
