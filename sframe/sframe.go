package sframe

import (
	"sort"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/npillmayer/gorgo/runtime"
)

// Frame is a scope frame. Variables are stored as tags of a symbol table,
// with the tag's user data holding the variable's value.
type Frame struct {
	name    string
	symbols *runtime.SymbolTable
	Parent  *Frame
}

// NewFrame creates an empty frame below parent. parent may be nil for a
// global frame.
func NewFrame(name string, parent *Frame) *Frame {
	if name == "" {
		name = "⟨scope⟩"
	}
	return &Frame{
		name:    name,
		symbols: runtime.NewSymbolTable(),
		Parent:  parent,
	}
}

// Name returns the name of the frame.
func (f *Frame) Name() string {
	return f.name
}

// Get returns the value of a variable of this frame, not looking into outer
// frames.
func (f *Frame) Get(name string) (yamp.Value, bool) {
	tag := f.symbols.ResolveTag(name)
	if tag == nil || tag.UData == nil {
		return nil, false
	}
	return tag.UData.(yamp.Value), true
}

// Lookup searches a variable from f outwards. It returns the value and the
// frame holding the variable, or nil if no frame has a variable named name.
func (f *Frame) Lookup(name string) (yamp.Value, *Frame) {
	for fr := f; fr != nil; fr = fr.Parent {
		if v, ok := fr.Get(name); ok {
			return v, fr
		}
	}
	return nil, nil
}

// Set stores a value for variable name in this frame.
func (f *Frame) Set(name string, v yamp.Value) {
	tag := f.symbols.ResolveTag(name)
	if tag == nil {
		tag = runtime.NewTag(name)
		f.symbols.InsertTag(tag)
	}
	tracer().P("var", name).Debugf("%s = %s", f.name, yamp.TypeName(v))
	tag.UData = v
}

// Remove deletes variable name from this frame. It returns false if no such
// variable existed.
func (f *Frame) Remove(name string) bool {
	tag := f.symbols.ResolveTag(name)
	if tag == nil || tag.UData == nil {
		return false
	}
	tag.UData = nil
	return true
}

// Names returns the names of the variables of this frame, sorted.
func (f *Frame) Names() []string {
	var names []string
	f.symbols.Each(func(name string, tag *runtime.Tag) {
		if tag.UData != nil {
			names = append(names, name)
		}
	})
	sort.Strings(names)
	return names
}

// Each calls fn for every variable of this frame, in order of variable
// names.
func (f *Frame) Each(fn func(name string, v yamp.Value)) {
	for _, name := range f.Names() {
		v, _ := f.Get(name)
		fn(name, v)
	}
}

// Clear removes all variables of this frame.
func (f *Frame) Clear() {
	for _, name := range f.Names() {
		f.Remove(name)
	}
}
