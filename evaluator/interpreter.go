package evaluator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/FlorianRappl/YAMP-sub003/corelang"
	"github.com/FlorianRappl/YAMP-sub003/grammar"
	"github.com/npillmayer/schuko/tracing"
)

// ErrClosed is returned for queries to an interpreter which has been closed.
var ErrClosed = errors.New("interpreter is closed")

// tracerKeys are the trace keys of all packages of the language.
var tracerKeys = []string{"yamp", "yamp.grammar", "yamp.core", "yamp.dispatch",
	"yamp.overload", "yamp.frame", "yamp.eval", "yamp.variables"}

// TracerKeys returns the trace keys of all packages of the language.
func TracerKeys() []string {
	return append([]string(nil), tracerKeys...)
}

// Interpreter interprets queries. An Interpreter is safe for use by multiple
// goroutines; queries are evaluated one at a time.
type Interpreter struct {
	registry *corelang.Registry
	parser   *grammar.Parser
	global   *corelang.Context
	owned    bool // registry has been created by New and is closed by Close
	closed   bool
	scripts  []luaChunk
	format   yamp.Format
	mx       sync.Mutex
}

type luaChunk struct {
	name, src string
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithRegistry makes an interpreter use reg instead of a registry with the
// standard language. reg is sealed by New, if it is not sealed yet.
func WithRegistry(reg *corelang.Registry) Option {
	return func(intp *Interpreter) {
		intp.registry = reg
	}
}

// WithLuaScript loads the functions of a Lua chunk into the registry. The
// registry must not be sealed.
func WithLuaScript(name, src string) Option {
	return func(intp *Interpreter) {
		intp.scripts = append(intp.scripts, luaChunk{name: name, src: src})
	}
}

// WithPrecision sets the number of decimal digits numbers are rendered with.
func WithPrecision(digits int) Option {
	return func(intp *Interpreter) {
		intp.format.Precision = int32(digits)
	}
}

// WithTrace sets the trace level of all tracers of the language.
func WithTrace(level tracing.TraceLevel) Option {
	return func(*Interpreter) {
		for _, key := range tracerKeys {
			tracing.Select(key).SetTraceLevel(level)
		}
	}
}

// New creates an interpreter with an empty workspace.
func New(opts ...Option) (*Interpreter, error) {
	intp := &Interpreter{
		parser: grammar.NewParser(nil),
		format: yamp.DefaultFormat,
	}
	for _, opt := range opts {
		opt(intp)
	}
	if intp.registry == nil {
		intp.registry = corelang.NewRegistry()
		corelang.LoadStandardLanguage(intp.registry)
		intp.owned = true
	}
	for _, chunk := range intp.scripts {
		if intp.registry.IsSealed() {
			return nil, fmt.Errorf("cannot load Lua chunk %s: %w", chunk.name, corelang.ErrSealed)
		}
		if err := corelang.LoadLua(intp.registry, chunk.name, chunk.src); err != nil {
			if intp.owned {
				intp.registry.Close()
			}
			return nil, err
		}
	}
	intp.registry.Seal()
	intp.global = corelang.NewContext(intp.registry)
	intp.global.SetFormat(intp.format)
	tracer().Debugf("interpreter created, %d functions", len(intp.registry.FunctionNames()))
	return intp, nil
}

// Close releases the resources of the interpreter. A registry provided by
// WithRegistry is left open.
func (intp *Interpreter) Close() {
	intp.mx.Lock()
	defer intp.mx.Unlock()
	if intp.closed {
		return
	}
	intp.closed = true
	if intp.owned {
		intp.registry.Close()
	}
}

// Registry returns the registry of operators and functions.
func (intp *Interpreter) Registry() *corelang.Registry {
	return intp.registry
}

// Format returns the format values are rendered with.
func (intp *Interpreter) Format() yamp.Format {
	return intp.format
}

// Render renders a value with the format of the interpreter.
func (intp *Interpreter) Render(v yamp.Value) string {
	if v == nil {
		return ""
	}
	return v.Render(intp.format)
}

// Parse parses a query without evaluating it. Parse never fails; parse errors
// are part of the query.
func (intp *Interpreter) Parse(text string) *grammar.Query {
	return intp.parser.Parse(text)
}

// Run evaluates a query and returns the value of its last statement, which
// may be nil. If the query has parse errors, none of its statements is
// evaluated and the error is a *grammar.ParseErrors. Evaluation stops at the
// first failing statement.
func (intp *Interpreter) Run(text string) (yamp.Value, error) {
	return intp.RunContext(context.Background(), text)
}

// RunContext is Run with a context. Loops stop with ctx's error as soon as
// ctx is done.
func (intp *Interpreter) RunContext(ctx context.Context, text string) (yamp.Value, error) {
	var last yamp.Value
	err := intp.evaluate(ctx, text, func(_ *corelang.Statement, v yamp.Value) {
		last = v
	})
	if err != nil {
		return nil, err
	}
	return last, nil
}

// Results evaluates a query like Run, but returns the values of all
// statements which are not muted and have a value. On failure, the values
// of the statements evaluated before are returned together with the error.
func (intp *Interpreter) Results(ctx context.Context, text string) ([]yamp.Value, error) {
	var results []yamp.Value
	err := intp.evaluate(ctx, text, func(s *corelang.Statement, v yamp.Value) {
		if v != nil && !s.Muted {
			results = append(results, v)
		}
	})
	return results, err
}

func (intp *Interpreter) evaluate(ctx context.Context, text string,
	collect func(*corelang.Statement, yamp.Value)) error {
	//
	q := intp.Parse(text)
	if err := q.Err(); err != nil {
		tracer().Debugf("query has %d parse errors", q.Errors.Len())
		return err
	}
	intp.mx.Lock()
	defer intp.mx.Unlock()
	if intp.closed {
		return ErrClosed
	}
	intp.global.SetCancel(ctx)
	defer intp.global.SetCancel(nil)
	for _, s := range q.Statements {
		v, err := s.Interpret(intp.global)
		intp.global.Reset()
		if err != nil {
			tracer().P("kind", yamp.KindOf(err)).Debugf("statement failed: %v", err)
			return err
		}
		collect(s, v)
	}
	return nil
}

// Variable is a variable of the workspace.
type Variable struct {
	Name  string
	Value yamp.Value
}

// Variables returns the variables of the workspace, ordered by name.
func (intp *Interpreter) Variables() []Variable {
	intp.mx.Lock()
	defer intp.mx.Unlock()
	var vars []Variable
	intp.global.Frame().Each(func(name string, v yamp.Value) {
		vars = append(vars, Variable{Name: name, Value: v})
	})
	return vars
}

// Lookup returns the value of a workspace variable.
func (intp *Interpreter) Lookup(name string) (yamp.Value, bool) {
	intp.mx.Lock()
	defer intp.mx.Unlock()
	return intp.global.Frame().Get(name)
}

// Assign sets a workspace variable to a copy of v.
func (intp *Interpreter) Assign(name string, v yamp.Value) {
	intp.mx.Lock()
	defer intp.mx.Unlock()
	intp.global.Assign(name, v.Copy())
}

// Clear removes all variables from the workspace.
func (intp *Interpreter) Clear() {
	intp.mx.Lock()
	defer intp.mx.Unlock()
	intp.global.Frame().Clear()
}
