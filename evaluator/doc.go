/*
Package evaluator is the entry point for hosts of the language: an
Interpreter parses queries, reports parse errors all at once and evaluates
the statements of a query in order.

	intp, err := evaluator.New(evaluator.WithPrecision(6))
	...
	v, err := intp.Run("x = [1, 2; 3, 4]; x * [1; 1]")

Each Interpreter has a workspace of global variables of its own. The
registry of operators and functions may be shared: it is sealed before the
first query is run and read-only from then on.

Workspaces may be saved to and restored from a record stream, or a store
of package variables. Function values are persisted by code and re-bound
on loading: natives by name, closures by parsing their source.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package evaluator

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'yamp.eval'.
func tracer() tracing.Trace {
	return tracing.Select("yamp.eval")
}
