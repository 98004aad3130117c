/*
Package corelang implements the core of the YAMP expression language: the
expression tree produced by the parser, the operators and their evaluation,
the evaluation context and the registry of operator tables, functions and
constants.

Expression Tree

A parsed statement is a tree of Expressions. Containers hold up to two
children and an optional operator; the operator decides how and in which
order its children are evaluated. By default binary operators evaluate their
children eagerly, left before right, and dispatch on the types of the
resulting values. Short-circuiting boolean operators, member access, ranges,
assignments and lambdas override this behaviour.

Registry

Operator tables, function overloads and constants live in a Registry. A
registry is filled at startup, typically with LoadStandardLanguage, and sealed
before the first evaluation. Evaluation contexts carry a pointer to their
registry; there is no global registry.

Lua Scripting

This package also includes support for Lua scripting. Global functions of a
Lua chunk may be registered as functions accepting any number of numbers.
See LoadLua.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package corelang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'yamp.core'.
func tracer() tracing.Trace {
	return tracing.Select("yamp.core")
}
