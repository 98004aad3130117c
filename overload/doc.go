/*
Package overload lets one function name expose several signatures.

Overloads are declared explicitly with a builder, no reflection involved:

    f := overload.New("f").
        Params(yamp.NumberType).Body(one).
        Params(yamp.NumberType, yamp.NumberType).Body(two).
        Params(yamp.NumberType).Group(1, 0, 2, 2).Body(pairs)

A repeating group occupies one parameter slot and consumes between min and
max chunks of actual arguments, each chunk of a fixed size. The consumed
arguments are bundled into one tuple.

Overloads are ranked on registration: more ordinary parameters first, then
lower specificity weight (general types and repeating groups weigh more), then
declaration order. A call tries the ranked overloads in turn: an overload is
skipped if the argument count is out of its bounds or an argument does not
have the declared type. The body of the first overload which matches is
invoked; its failures are passed through unchanged.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package overload

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'yamp.overload'.
func tracer() tracing.Trace {
	return tracing.Select("yamp.overload")
}
