package corelang

import (
	"errors"
	"sort"
	"sync"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/FlorianRappl/YAMP-sub003/dispatch"
	"github.com/FlorianRappl/YAMP-sub003/overload"
)

// ErrSealed is the panic value for registrations into a sealed registry.
var ErrSealed error = errors.New("registry is sealed")

// Registry holds the dispatch tables of operators, the functions and the
// constants of a language. A registry is filled at startup and sealed
// before evaluation starts; a sealed registry is read-only and may be shared
// by any number of interpreters.
type Registry struct {
	tables    *dispatch.Tables
	functions map[string]*overload.Function
	constants map[string]yamp.Value
	scripts   []*luaScript
	sealed    bool
	mx        sync.Mutex // guards sealing
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tables:    dispatch.NewTables(),
		functions: make(map[string]*overload.Function),
		constants: make(map[string]yamp.Value),
	}
}

func (r *Registry) mustBeOpen() {
	if r.sealed {
		panic(ErrSealed)
	}
}

// Binary returns the dispatch table of a binary operator, for registration.
func (r *Registry) Binary(symbol string) *dispatch.Table {
	r.mustBeOpen()
	return r.tables.Binary(symbol)
}

// Unary returns the dispatch table of a unary operator, for registration.
func (r *Registry) Unary(symbol string) *dispatch.UnaryTable {
	r.mustBeOpen()
	return r.tables.Unary(symbol)
}

// Function returns the overload set of a function, for registration. The
// function is created if it does not yet exist.
func (r *Registry) Function(name string) *overload.Function {
	r.mustBeOpen()
	f, ok := r.functions[name]
	if !ok {
		f = overload.New(name)
		r.functions[name] = f
	}
	return f
}

// Constant registers a named constant.
func (r *Registry) Constant(name string, v yamp.Value) {
	r.mustBeOpen()
	r.constants[name] = v
}

// Seal ends registration. Calling Seal more than once is harmless.
func (r *Registry) Seal() {
	r.mx.Lock()
	defer r.mx.Unlock()
	if !r.sealed {
		tracer().Infof("registry sealed with %d functions", len(r.functions))
	}
	r.sealed = true
}

// IsSealed is a predicate: is registration finished?
func (r *Registry) IsSealed() bool {
	r.mx.Lock()
	defer r.mx.Unlock()
	return r.sealed
}

// LookupFunction returns the overload set of a function.
func (r *Registry) LookupFunction(name string) (*overload.Function, bool) {
	f, ok := r.functions[name]
	return f, ok
}

// LookupConstant returns the value of a constant.
func (r *Registry) LookupConstant(name string) (yamp.Value, bool) {
	c, ok := r.constants[name]
	return c, ok
}

// FunctionNames returns the names of all functions, sorted.
func (r *Registry) FunctionNames() []string {
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InvokeBinary applies a binary operator to two values.
func (r *Registry) InvokeBinary(symbol string, left, right yamp.Value) (yamp.Value, error) {
	t, ok := r.tables.LookupBinary(symbol)
	if !ok {
		return nil, &yamp.OperationInvalidError{Operator: symbol,
			Left: yamp.TypeName(left), Right: yamp.TypeName(right)}
	}
	return t.Invoke(left, right)
}

// InvokeUnary applies a unary operator to a value.
func (r *Registry) InvokeUnary(symbol string, v yamp.Value) (yamp.Value, error) {
	t, ok := r.tables.LookupUnary(symbol)
	if !ok {
		return nil, &yamp.OperationInvalidError{Operator: symbol, Left: yamp.TypeName(v)}
	}
	return t.Invoke(v)
}

// Close releases the resources of scripted functions. A closed registry must
// not be used any more.
func (r *Registry) Close() {
	for _, s := range r.scripts {
		s.close()
	}
	r.scripts = nil
}
