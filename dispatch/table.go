package dispatch

import (
	yamp "github.com/FlorianRappl/YAMP-sub003"
)

// BinaryFunc implements an operator for a pair of operands.
type BinaryFunc func(left, right yamp.Value) (yamp.Value, error)

// UnaryFunc implements an operator for a single operand.
type UnaryFunc func(operand yamp.Value) (yamp.Value, error)

// Entry is a registered implementation of a binary operator.
type Entry struct {
	Left, Right *yamp.Type
	Impl        BinaryFunc
}

// Table holds the implementations of one binary operator, in registration
// order. Tables are append-only.
type Table struct {
	symbol  string
	entries []Entry
}

// NewTable creates an empty dispatch table for an operator symbol.
func NewTable(symbol string) *Table {
	return &Table{symbol: symbol}
}

// Symbol returns the operator symbol of t.
func (t *Table) Symbol() string {
	return t.symbol
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Register appends an implementation for operands of types left and right.
func (t *Table) Register(left, right *yamp.Type, impl BinaryFunc) *Table {
	t.entries = append(t.entries, Entry{Left: left, Right: right, Impl: impl})
	return t
}

// Resolve finds the implementation for operand types l and r.
func (t *Table) Resolve(l, r *yamp.Type) (BinaryFunc, bool) {
	var indirect BinaryFunc
	for i, e := range t.entries {
		if e.Left == l && e.Right == r {
			tracer().Debugf("%s(%s, %s): direct hit #%d", t.symbol, l, r, i)
			return e.Impl, true
		}
		if l.IsA(e.Left) && r.IsA(e.Right) {
			indirect = e.Impl // last indirect hit wins
		}
	}
	if indirect != nil {
		tracer().Debugf("%s(%s, %s): indirect hit", t.symbol, l, r)
		return indirect, true
	}
	return nil, false
}

// Invoke applies the operator to left and right. If no entry accepts the
// operand types, an OperationInvalidError is returned.
func (t *Table) Invoke(left, right yamp.Value) (yamp.Value, error) {
	if left == nil || right == nil {
		return nil, t.invalid(left, right)
	}
	impl, ok := t.Resolve(left.Type(), right.Type())
	if !ok {
		return nil, t.invalid(left, right)
	}
	return impl(left, right)
}

func (t *Table) invalid(left, right yamp.Value) error {
	return &yamp.OperationInvalidError{
		Operator: t.symbol,
		Left:     yamp.TypeName(left),
		Right:    yamp.TypeName(right),
	}
}

// --- Unary operators -------------------------------------------------------

type unaryEntry struct {
	operand *yamp.Type
	impl    UnaryFunc
}

// UnaryTable holds the implementations of one unary operator, in
// registration order.
type UnaryTable struct {
	symbol  string
	entries []unaryEntry
}

// NewUnaryTable creates an empty dispatch table for a unary operator.
func NewUnaryTable(symbol string) *UnaryTable {
	return &UnaryTable{symbol: symbol}
}

// Symbol returns the operator symbol of t.
func (t *UnaryTable) Symbol() string {
	return t.symbol
}

// Register appends an implementation for operands of type operand.
func (t *UnaryTable) Register(operand *yamp.Type, impl UnaryFunc) *UnaryTable {
	t.entries = append(t.entries, unaryEntry{operand: operand, impl: impl})
	return t
}

// Resolve finds the implementation for an operand of type typ, using the
// same policy as binary tables.
func (t *UnaryTable) Resolve(typ *yamp.Type) (UnaryFunc, bool) {
	var indirect UnaryFunc
	for _, e := range t.entries {
		if e.operand == typ {
			return e.impl, true
		}
		if typ.IsA(e.operand) {
			indirect = e.impl
		}
	}
	return indirect, indirect != nil
}

// Invoke applies the operator to operand.
func (t *UnaryTable) Invoke(operand yamp.Value) (yamp.Value, error) {
	if operand != nil {
		if impl, ok := t.Resolve(operand.Type()); ok {
			return impl(operand)
		}
	}
	return nil, &yamp.OperationInvalidError{Operator: t.symbol, Left: yamp.TypeName(operand)}
}

// --- Tables ----------------------------------------------------------------

// Tables is a set of dispatch tables, keyed by operator symbol.
type Tables struct {
	binary map[string]*Table
	unary  map[string]*UnaryTable
}

// NewTables creates an empty set of tables.
func NewTables() *Tables {
	return &Tables{
		binary: make(map[string]*Table),
		unary:  make(map[string]*UnaryTable),
	}
}

// Binary returns the table for a binary operator, creating it if necessary.
func (ts *Tables) Binary(symbol string) *Table {
	t, ok := ts.binary[symbol]
	if !ok {
		t = NewTable(symbol)
		ts.binary[symbol] = t
	}
	return t
}

// Unary returns the table for a unary operator, creating it if necessary.
func (ts *Tables) Unary(symbol string) *UnaryTable {
	t, ok := ts.unary[symbol]
	if !ok {
		t = NewUnaryTable(symbol)
		ts.unary[symbol] = t
	}
	return t
}

// LookupBinary returns the table for a binary operator, if one exists.
func (ts *Tables) LookupBinary(symbol string) (*Table, bool) {
	t, ok := ts.binary[symbol]
	return t, ok
}

// LookupUnary returns the table for a unary operator, if one exists.
func (ts *Tables) LookupUnary(symbol string) (*UnaryTable, bool) {
	t, ok := ts.unary[symbol]
	return t, ok
}
