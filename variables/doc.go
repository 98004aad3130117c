/*
Package variables persists the workspace of an interpreter: the variables of
its global frame, as a stream of records.

A record is a variable name, the type tag of its value and the value's opaque
payload. Records neither know nor care about the structure of the payload;
restoring values from records is up to the value codec of package yamp.

	uvarint(len(name)) name uvarint(len(tag)) tag uvarint(len(payload)) payload

Record streams may be written to any io.Writer. For workspaces which should
survive a session, a Store keeps named record sets; OpenSQLite creates a
store in an SQLite database file.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package variables

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'yamp.variables'.
func tracer() tracing.Trace {
	return tracing.Select("yamp.variables")
}
