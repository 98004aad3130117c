/*
Package dispatch resolves operators by the runtime types of their operands.

Every operator symbol owns a table of entries, each declaring the operand
types it handles. Tables are filled once at startup and are read-only
afterwards. Resolution for operand types (L, R) scans the entries in
registration order:

  1. The first entry declaring exactly (L, R) is a direct hit and wins at once.
  2. Otherwise every entry whose declared types L and R are assignable to is
     an indirect hit. The last indirect hit wins, so a later registration of a
     broader fallback supersedes an earlier one.
  3. Without any hit the operation is invalid for (L, R).

Unary tables follow the same policy for a single operand.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dispatch

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'yamp.dispatch'.
func tracer() tracing.Trace {
	return tracing.Select("yamp.dispatch")
}
