/*
Package sframe implements scope frames holding variables.

Frames are chained by their parent links. The outermost frame holds the
workspace variables of an interpreter; every function invocation creates a
fresh frame below the frame a function has been defined in. Frames are
never shared between invocations.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sframe

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'yamp.frame'
func tracer() tracing.Trace {
	return tracing.Select("yamp.frame")
}
