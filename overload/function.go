package overload

import (
	"sort"

	yamp "github.com/FlorianRappl/YAMP-sub003"
)

// Function is a named set of overloads. Overloads are declared once at
// startup; afterwards a Function is read-only and may be called
// concurrently.
type Function struct {
	name       string
	signatures []*Signature // ranked
	declared   int
}

var _ yamp.Callable = &Function{}

// New creates a function without overloads.
func New(name string) *Function {
	return &Function{name: name}
}

// Name returns the name of the function.
func (f *Function) Name() string {
	return f.name
}

// Signatures returns the overloads of f, in ranking order.
func (f *Function) Signatures() []*Signature {
	return f.signatures
}

// Params starts the declaration of an overload with ordinary parameters of
// the given types.
func (f *Function) Params(types ...*yamp.Type) *Builder {
	return &Builder{f: f, sig: &Signature{params: types}}
}

// Builder declares one overload. Finish the declaration with Body.
type Builder struct {
	f   *Function
	sig *Signature
}

// Group adds a repeating group at parameter slot start, consuming min to max
// chunks (max may be Unbounded) of size arguments each.
func (b *Builder) Group(start, min, max, size int) *Builder {
	if size < 1 || min < 0 || (max != Unbounded && max < min) {
		panic("overload: invalid repeating group for " + b.f.name)
	}
	b.sig.groups = append(b.sig.groups, Group{Start: start, MinChunks: min, MaxChunks: max, ChunkSize: size})
	sort.SliceStable(b.sig.groups, func(i, j int) bool {
		return b.sig.groups[i].Start < b.sig.groups[j].Start
	})
	return b
}

// Body completes the declaration of an overload and returns the function,
// to allow declaring the next overload.
func (b *Builder) Body(body Body) *Function {
	sig := b.sig
	for i, g := range sig.groups {
		if g.Start > sig.slots()-1 || (i > 0 && sig.groups[i-1].Start == g.Start) {
			panic("overload: repeating group outside of parameter list for " + b.f.name)
		}
	}
	sig.body = body
	sig.order = b.f.declared
	b.f.declared++
	for _, t := range sig.params {
		sig.weight += t.Weight()
	}
	sig.weight += groupWeight * len(sig.groups)
	b.f.signatures = append(b.f.signatures, sig)
	b.f.rank()
	return b.f
}

// rank orders overloads: more ordinary parameters first, then lower weight,
// then declaration order.
func (f *Function) rank() {
	sort.SliceStable(f.signatures, func(i, j int) bool {
		si, sj := f.signatures[i], f.signatures[j]
		if len(si.params) != len(sj.params) {
			return len(si.params) > len(sj.params)
		}
		if si.weight != sj.weight {
			return si.weight < sj.weight
		}
		return si.order < sj.order
	})
}

// Resolve selects the overload for a list of actual arguments and adapts the
// arguments to its parameter slots.
//
// If no overload matches, the first type mismatch found is returned. Without
// a type mismatch, an ArgumentNumberError cites the argument count closest to
// the actual count among all overloads.
func (f *Function) Resolve(args []yamp.Value) (*Signature, []yamp.Value, error) {
	var mismatch *yamp.ArgumentTypeError
	closest, distance := -1, -1
	for _, sig := range f.signatures {
		a := sig.match(f.name, args)
		switch {
		case a.matched():
			tracer().P("func", f.name).Debugf("selected overload %s", sig)
			return sig, a.args, nil
		case a.mismatch != nil:
			if mismatch == nil {
				mismatch = a.mismatch
			}
		case distance < 0 || a.distance < distance:
			closest, distance = a.count, a.distance
		}
	}
	if mismatch != nil {
		return nil, nil, mismatch
	}
	if closest < 0 {
		closest = 0
	}
	return nil, nil, &yamp.ArgumentNumberError{Function: f.name, Given: len(args), Expected: closest}
}

// Call resolves the overload for args and invokes it.
func (f *Function) Call(args []yamp.Value) (yamp.Value, error) {
	sig, adapted, err := f.Resolve(args)
	if err != nil {
		return nil, err
	}
	return sig.body(adapted)
}
