// Package termui provides objects and methods for interactive UI in terminal windows.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
//
package termui

import (
	"errors"
	"fmt"
	"io"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/FlorianRappl/YAMP-sub003/grammar"
	"github.com/jedib0t/go-pretty/v6/table"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
	"github.com/npillmayer/schuko/tracing"
)

// trace traces with key 'yamp.cli'.
func trace() tracing.Trace {
	return tracing.Select("yamp.cli")
}

// Formatter writes items to a terminal. It returns false if it does not know
// how to format an item.
type Formatter interface {
	Format(interface{}, io.Writer) (bool, error)
}

// DefaultFormatter formats values, errors, tables and strings.
type DefaultFormatter struct {
	Numbers yamp.Format // format of values
}

// Marker precedes every result written by a DefaultFormatter.
const Marker = "▶ "

// Format writes item to w.
func (df DefaultFormatter) Format(item interface{}, w io.Writer) (bool, error) {
	var err error
	switch t := item.(type) {
	case nil:
		return true, nil
	case yamp.Value:
		_, err = fmt.Fprintf(w, "%s%s\n", Marker, t.Render(df.Numbers))
	case error:
		err = formatError(t, w)
	case string:
		_, err = fmt.Fprintf(w, "%s%s\n", Marker, t)
	case table.Writer:
		_, err = io.WriteString(w, t.Render()+"\n")
	default:
		return false, nil
	}
	return err == nil, err
}

// formatError writes errors in red. Parse errors are written one by one,
// each with a snippet of the offending line.
func formatError(err error, w io.Writer) error {
	var perrs *grammar.ParseErrors
	if errors.As(err, &perrs) {
		_, werr := io.WriteString(w, prtxt.FgRed.Sprint(perrs.Error())+"\n")
		return werr
	}
	msg := err.Error()
	if kind := yamp.KindOf(err); kind != yamp.KindUnknown {
		msg = kind.String() + ": " + msg
	}
	_, werr := io.WriteString(w, prtxt.FgRed.Sprint("error: "+msg)+"\n")
	return werr
}
