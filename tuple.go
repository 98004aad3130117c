package yamp

import "strings"

// Tuple is an ordered bundle of values, used for functions returning more than
// one value and for variadic call arguments. Tuples never nest: appending a
// tuple to a tuple appends its elements.
type Tuple struct {
	values []Value
}

var _ Value = &Tuple{}

// NewTuple creates a tuple from values, flattening tuple arguments.
func NewTuple(values ...Value) *Tuple {
	t := &Tuple{values: make([]Value, 0, len(values))}
	for _, v := range values {
		t.Append(v)
	}
	return t
}

// Append adds v to the end of t. If v is a tuple, its elements are added.
// Nil values are ignored.
func (t *Tuple) Append(v Value) {
	switch x := v.(type) {
	case nil:
	case *Tuple:
		t.values = append(t.values, x.values...)
	default:
		t.values = append(t.values, v)
	}
}

// Type returns TupleType.
func (t *Tuple) Type() *Type {
	return TupleType
}

// Copy copies t and all of its elements.
func (t *Tuple) Copy() Value {
	c := &Tuple{values: make([]Value, len(t.values))}
	for i, v := range t.values {
		c.values[i] = v.Copy()
	}
	return c
}

// Len returns the number of elements.
func (t *Tuple) Len() int {
	return len(t.values)
}

// At returns the i-th element, counting from 0.
func (t *Tuple) At(i int) Value {
	return t.values[i]
}

// Values returns the elements of t. Clients must not modify the slice.
func (t *Tuple) Values() []Value {
	return t.values
}

// Render lists the elements, separated by commas.
func (t *Tuple) Render(f Format) string {
	parts := make([]string, len(t.values))
	for i, v := range t.values {
		parts[i] = v.Render(f)
	}
	return strings.Join(parts, ", ")
}

func (t *Tuple) String() string {
	return t.Render(DefaultFormat)
}

// MarshalBinary stores the element count followed by (tag, payload) pairs.
func (t *Tuple) MarshalBinary() ([]byte, error) {
	buf := appendCount(nil, len(t.values))
	var err error
	for _, v := range t.values {
		if buf, err = appendValue(buf, v); err != nil {
			return nil, err
		}
	}
	return buf, nil
}
