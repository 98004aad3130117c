/*
Package grammar implements the parser for YAMP queries.

A query is a sequence of statements, separated by semicolons or newlines.
Each statement is parsed into a tree of corelang expressions by an
operator-precedence parser: operands and operators are pushed onto two
stacks. When an operator arrives, pending operators of higher or equal
precedence are reduced first. A right-associative operator stops at pending
operators of equal precedence, so a ^ b ^ c groups as a ^ (b ^ c).

What the parser recognizes is defined by an element registry. The registry
holds operator prototypes keyed by their symbol, keywords, and operand
scanners, which are tried in a fixed priority order at the current input
position. The first scanner producing an expression wins.

The parser never aborts. Problems are collected as ParseErrors and parsing
continues, so a single run may report several independent errors. A query
with errors must not be evaluated.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'yamp.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("yamp.grammar")
}
