package overload

import (
	"fmt"
	"strings"

	yamp "github.com/FlorianRappl/YAMP-sub003"
)

// Body is the implementation of an overload. It receives one value per
// parameter slot; repeating groups are passed as *yamp.Tuple.
type Body func(args []yamp.Value) (yamp.Value, error)

// Unbounded as the maximum chunk count of a group lifts the limit.
const Unbounded = -1

// groupWeight is added to the weight of a signature for every repeating
// group.
const groupWeight = 100

// Group describes a repeating group: starting at parameter slot Start
// (counting from 0), it consumes MinChunks to MaxChunks chunks of ChunkSize
// arguments each.
type Group struct {
	Start     int
	MinChunks int
	MaxChunks int
	ChunkSize int
}

func (g Group) String() string {
	max := "∞"
	if g.MaxChunks != Unbounded {
		max = fmt.Sprintf("%d", g.MaxChunks)
	}
	return fmt.Sprintf("[%d×%d..%s]", g.ChunkSize, g.MinChunks, max)
}

// Signature describes one overload of a function.
type Signature struct {
	params []*yamp.Type // ordinary parameters
	groups []Group      // ordered by Start
	body   Body
	order  int // declaration order
	weight int
}

// Params returns the types of the ordinary parameters.
func (s *Signature) Params() []*yamp.Type {
	return s.params
}

// Groups returns the repeating groups.
func (s *Signature) Groups() []Group {
	return s.groups
}

// Weight returns the specificity weight of s.
func (s *Signature) Weight() int {
	return s.weight
}

// slots is the number of adapted arguments a body receives.
func (s *Signature) slots() int {
	return len(s.params) + len(s.groups)
}

// Bounds returns the minimum and maximum number of actual arguments.
// max is Unbounded if a group has no upper limit.
func (s *Signature) Bounds() (min, max int) {
	min, max = len(s.params), len(s.params)
	for _, g := range s.groups {
		min += g.MinChunks * g.ChunkSize
		if max != Unbounded {
			if g.MaxChunks == Unbounded {
				max = Unbounded
			} else {
				max += g.MaxChunks * g.ChunkSize
			}
		}
	}
	return
}

// closest returns the accepted argument count closest to n, and its
// distance from n.
func (s *Signature) closest(n int) (int, int) {
	min, max := s.Bounds()
	if n < min {
		return min, min - n
	}
	if max != Unbounded && n > max {
		return max, n - max
	}
	return n, 0
}

// required returns the number of actual arguments needed for the slots from
// slot on.
func (s *Signature) required(slot int) int {
	n, g := 0, 0
	for i := 0; i < s.slots(); i++ {
		if g < len(s.groups) && s.groups[g].Start == i {
			if i >= slot {
				n += s.groups[g].MinChunks * s.groups[g].ChunkSize
			}
			g++
			continue
		}
		if i >= slot {
			n++
		}
	}
	return n
}

func (s *Signature) String() string {
	var parts []string
	p, g := 0, 0
	for i := 0; i < s.slots(); i++ {
		if g < len(s.groups) && s.groups[g].Start == i {
			parts = append(parts, s.groups[g].String())
			g++
			continue
		}
		parts = append(parts, s.params[p].Name())
		p++
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// --- Matching --------------------------------------------------------------

// attempt is the outcome of matching actual arguments against a signature.
type attempt struct {
	args     []yamp.Value            // adapted arguments, if matched
	mismatch *yamp.ArgumentTypeError // type mismatch, if any
	count    int                     // closest accepted count, if count did not fit
	distance int                     // distance of count to the actual count
}

func (a attempt) matched() bool {
	return a.args != nil
}

// match tries to bind the actual arguments to the slots of s. Matching never
// fails with an error; the attempt records why an overload did not fit.
func (s *Signature) match(name string, actuals []yamp.Value) attempt {
	if c, d := s.closest(len(actuals)); d > 0 {
		return attempt{count: c, distance: d}
	}
	adapted := make([]yamp.Value, 0, s.slots())
	a, p, g := 0, 0, 0
	for slot := 0; slot < s.slots(); slot++ {
		if g < len(s.groups) && s.groups[g].Start == slot {
			grp := s.groups[g]
			g++
			avail := len(actuals) - a - s.required(slot+1)
			chunks := avail / grp.ChunkSize
			if grp.MaxChunks != Unbounded && chunks > grp.MaxChunks {
				chunks = grp.MaxChunks
			}
			if chunks < grp.MinChunks {
				return attempt{count: len(actuals) - avail, distance: 1}
			}
			n := chunks * grp.ChunkSize
			adapted = append(adapted, yamp.NewTuple(actuals[a:a+n]...))
			a += n
			continue
		}
		typ := s.params[p]
		p++
		if a >= len(actuals) {
			return attempt{count: a + 1, distance: 1}
		}
		if !actuals[a].Type().IsA(typ) {
			return attempt{mismatch: &yamp.ArgumentTypeError{
				Function: name,
				Index:    a + 1,
				Actual:   actuals[a].Type().Name(),
				Expected: typ.Name(),
			}}
		}
		adapted = append(adapted, actuals[a])
		a++
	}
	if a < len(actuals) { // arguments left which do not fill a whole chunk
		return attempt{count: a, distance: len(actuals) - a}
	}
	return attempt{args: adapted}
}
