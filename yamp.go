// Package yamp is a small MATLAB-like expression language for numeric and
// matrix computation.
//
// The root package holds the value model shared by every other package:
// numbers, matrices, strings, tuples, functions and maps, the type lattice
// used by operator dispatch and overload resolution, the runtime failure
// types and the value codec.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package yamp

import (
	"context"
	"io"
	"os"

	"github.com/knadh/koanf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'yamp'.
func tracer() tracing.Trace {
	return tracing.Select("yamp")
}

// Configuration holds global configuration values. We use koanf.
var Configuration *koanf.Koanf

// Tracefile is the file we write our log output, if not nil.
var Tracefile io.WriteCloser

// SignalContext is a global context for terminating the application by an interrupt
// signal.
var SignalContext context.Context

// Exit exits the application. It gracefully shuts down all resources.
func Exit(errcode int) {
	if Tracefile != nil {
		Tracefile.Close()
	}
	os.Exit(errcode)
}

// ConfigInt returns an integer configuration value, or a default if either no
// configuration has been loaded or the key is not set.
func ConfigInt(key string, dflt int) int {
	if Configuration == nil || !Configuration.Exists(key) {
		return dflt
	}
	return Configuration.Int(key)
}

// ConfigString returns a string configuration value, or a default.
func ConfigString(key string, dflt string) string {
	if Configuration == nil || !Configuration.Exists(key) {
		return dflt
	}
	return Configuration.String(key)
}

// ConfigBool returns a boolean configuration value, or a default.
func ConfigBool(key string, dflt bool) bool {
	if Configuration == nil || !Configuration.Exists(key) {
		return dflt
	}
	return Configuration.Bool(key)
}
