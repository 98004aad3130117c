package corelang

import (
	"context"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/FlorianRappl/YAMP-sub003/sframe"
)

// signal is a pending change of control flow.
type signal int8

const (
	flowNormal signal = iota
	flowBreak
	flowContinue
	flowReturn
)

// Context is the environment an expression is evaluated in: a frame of
// variables, the registry of operators and functions, and the state of
// control flow.
//
// Contexts are cheap. Every function invocation derives a fresh context;
// contexts are never shared between invocations.
type Context struct {
	frame    *sframe.Frame
	registry *Registry
	format   yamp.Format
	signal   signal
	result   yamp.Value // value of a pending return
	cancel   context.Context
	extent   int  // size of the indexed dimension
	indexing bool // evaluating an index argument
}

// Names standing for the end and for all of an indexed dimension.
const (
	EndSymbol = "end"
	AllSymbol = ":"
)

// NewContext creates a global context for a registry.
func NewContext(registry *Registry) *Context {
	return &Context{
		frame:    sframe.NewFrame("global", nil),
		registry: registry,
		format:   yamp.DefaultFormat,
	}
}

// Derive creates a context for a function invocation, with a fresh frame
// below the frame of ctx.
func (ctx *Context) Derive(name string) *Context {
	return &Context{
		frame:    sframe.NewFrame(name, ctx.frame),
		registry: ctx.registry,
		format:   ctx.format,
		cancel:   ctx.cancel,
	}
}

// Registry returns the registry of operators and functions.
func (ctx *Context) Registry() *Registry {
	return ctx.registry
}

// Frame returns the innermost variable frame.
func (ctx *Context) Frame() *sframe.Frame {
	return ctx.frame
}

// Format returns the format for rendering values.
func (ctx *Context) Format() yamp.Format {
	return ctx.format
}

// SetFormat sets the format for rendering values.
func (ctx *Context) SetFormat(f yamp.Format) {
	ctx.format = f
}

// Lookup finds a variable, searching from the innermost frame outwards.
func (ctx *Context) Lookup(name string) (yamp.Value, bool) {
	v, fr := ctx.frame.Lookup(name)
	return v, fr != nil
}

// Assign stores a value in a variable of the innermost frame.
func (ctx *Context) Assign(name string, v yamp.Value) {
	ctx.frame.Set(name, v)
}

// Resolve finds the value of a name: a variable, a function or a constant, in
// this order. Within an index argument, EndSymbol is the size of the indexed
// dimension and AllSymbol the range of all its positions.
func (ctx *Context) Resolve(name string) (yamp.Value, error) {
	if ctx.indexing {
		switch name {
		case EndSymbol:
			return yamp.Real(float64(ctx.extent)), nil
		case AllSymbol:
			return yamp.OpenRange(1, 1), nil
		}
	}
	if v, ok := ctx.Lookup(name); ok {
		return v, nil
	}
	if f, ok := ctx.registry.LookupFunction(name); ok {
		return yamp.NewNative(name, f), nil
	}
	if c, ok := ctx.registry.LookupConstant(name); ok {
		return c, nil
	}
	return nil, &yamp.SymbolError{Name: name}
}

// indexed returns a context for evaluating an index argument into a
// dimension of size extent. It shares the frame of ctx.
func (ctx *Context) indexed(extent int) *Context {
	ix := *ctx
	ix.indexing, ix.extent = true, extent
	return &ix
}

// SetCancel makes loops of ctx and of contexts derived from it stop as soon
// as c is done.
func (ctx *Context) SetCancel(c context.Context) {
	ctx.cancel = c
}

// stopped returns an error if evaluation has been cancelled.
func (ctx *Context) stopped() error {
	if ctx.cancel == nil {
		return nil
	}
	return ctx.cancel.Err()
}

// Reset clears a pending break, continue or return.
func (ctx *Context) Reset() {
	ctx.signal, ctx.result = flowNormal, nil
}

func (ctx *Context) raise(s signal, result yamp.Value) {
	ctx.signal, ctx.result = s, result
}

// interrupted is a predicate: is a break, continue or return pending?
func (ctx *Context) interrupted() bool {
	return ctx.signal != flowNormal
}
