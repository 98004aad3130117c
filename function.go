package yamp

import (
	"strings"
)

// Callable is the executable part of a function value.
//
// Implementations must not keep per-call state between invocations: every
// call has to set up its own, fresh local state.
type Callable interface {
	Call(args []Value) (Value, error)
}

// CallableFunc adapts a Go function to Callable.
type CallableFunc func(args []Value) (Value, error)

// Call calls f(args).
func (f CallableFunc) Call(args []Value) (Value, error) {
	return f(args)
}

// Function is a callable value. A native function is implemented in Go; a
// closure is defined in source text and carries its parameter names and the
// code of its body.
type Function struct {
	name   string
	params []string
	body   string // source code of the body, empty for natives
	native bool
	call   Callable
}

var _ Value = &Function{}

// NewNative creates a function value for Go code.
func NewNative(name string, c Callable) *Function {
	return &Function{name: name, native: true, call: c}
}

// NewClosure creates a function value for a function defined in source text.
// body is the source code of the function body, used to render and to
// serialize the function.
func NewClosure(name string, params []string, body string, c Callable) *Function {
	p := make([]string, len(params))
	copy(p, params)
	return &Function{name: name, params: p, body: body, call: c}
}

// Type returns FunctionType.
func (f *Function) Type() *Type {
	return FunctionType
}

// Copy returns a copy of f. The callable is shared, as it carries no
// per-call state.
func (f *Function) Copy() Value {
	c := *f
	c.params = make([]string, len(f.params))
	copy(c.params, f.params)
	return &c
}

// Name returns the name of the function. Anonymous functions have an empty
// name.
func (f *Function) Name() string {
	return f.name
}

// Params returns the parameter names of a closure.
func (f *Function) Params() []string {
	return f.params
}

// Body returns the body source of a closure.
func (f *Function) Body() string {
	return f.body
}

// IsNative is a predicate: is f implemented in Go?
func (f *Function) IsNative() bool {
	return f.native
}

// Call invokes the function.
func (f *Function) Call(args ...Value) (Value, error) {
	if f.call == nil {
		return nil, &SymbolError{Name: f.name, Msg: "function is not bound"}
	}
	tracer().P("func", f.name).Debugf("call with %d arguments", len(args))
	return f.call.Call(args)
}

// Code returns the source form of a closure, e.g. "(x, y) => x + y". Natives
// return their name.
func (f *Function) Code() string {
	if f.native {
		return f.name
	}
	return "(" + strings.Join(f.params, ", ") + ") => " + f.body
}

// Render returns the code of f.
func (f *Function) Render(Format) string {
	return f.Code()
}

func (f *Function) String() string {
	return f.Code()
}

// MarshalBinary stores a native flag, the name and, for closures, the
// parameter names and the body code.
func (f *Function) MarshalBinary() ([]byte, error) {
	var buf []byte
	if f.native {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	buf = appendString(buf, f.name)
	buf = appendCount(buf, len(f.params))
	for _, p := range f.params {
		buf = appendString(buf, p)
	}
	buf = appendString(buf, f.body)
	return buf, nil
}
