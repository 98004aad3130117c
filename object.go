package yamp

import (
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Map is a string-keyed dictionary of values which keeps its keys in
// insertion order.
type Map struct {
	entries *linkedhashmap.Map
}

var _ Value = &Map{}

// NewMap creates an empty map.
func NewMap() *Map {
	return &Map{entries: linkedhashmap.New()}
}

// Type returns MapType.
func (m *Map) Type() *Type {
	return MapType
}

// Copy returns a deep copy of m.
func (m *Map) Copy() Value {
	c := NewMap()
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		c.Set(k, v.Copy())
	}
	return c
}

// Get returns the value stored for key.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.entries.Get(key)
	if !ok {
		return nil, false
	}
	return v.(Value), true
}

// Set stores v for key. A new key is appended, an existing key keeps its
// position.
func (m *Map) Set(key string, v Value) {
	m.entries.Put(key, v)
}

// Remove deletes key from m.
func (m *Map) Remove(key string) {
	m.entries.Remove(key)
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return m.entries.Size()
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.entries.Size())
	for _, k := range m.entries.Keys() {
		keys = append(keys, k.(string))
	}
	return keys
}

// Render lists the entries as "{ key: value, ... }".
func (m *Map) Render(f Format) string {
	if m.Len() == 0 {
		return "{ }"
	}
	var b strings.Builder
	b.WriteString("{ ")
	for i, k := range m.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		v, _ := m.Get(k)
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v.Render(f))
	}
	b.WriteString(" }")
	return b.String()
}

func (m *Map) String() string {
	return m.Render(DefaultFormat)
}

// MarshalBinary stores the entry count followed by (key, tag, payload)
// triples in key order.
func (m *Map) MarshalBinary() ([]byte, error) {
	buf := appendCount(nil, m.Len())
	var err error
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		buf = appendString(buf, k)
		if buf, err = appendValue(buf, v); err != nil {
			return nil, err
		}
	}
	return buf, nil
}
