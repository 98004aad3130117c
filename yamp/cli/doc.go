package cli

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'yamp.cli'
func tracer() tracing.Trace {
	return tracing.Select("yamp.cli")
}
