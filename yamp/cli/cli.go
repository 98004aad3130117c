// Package cli implements the yamp command line interface.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/FlorianRappl/YAMP-sub003/evaluator"
	"github.com/FlorianRappl/YAMP-sub003/yamp/ui/termui"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

const version = "0.1 experimental"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yamp [files…]",
	Short: "A small language for numeric and matrix computation",
	Long: `Welcome to YAMP V0.1 (experimental)

YAMP evaluates queries of a MATLAB-like language for numbers, complex
numbers and matrices.

YAMP is able to run in interactive mode or execute one or more files and
expressions in batch-mode. If neither files nor expressions are given, it
prompts for user input in a terminal REPL.

`,
	Run: runYampCmd,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called exactly once by main().
func Execute() {
	if rootCmd.Execute() != nil {
		yamp.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// persistent flags which will be global for the application
	flags := rootCmd.PersistentFlags()
	flags.BoolP(keyInteractive, "i", false, "Force run in interactive mode")
	flags.StringP(keyEval, "e", "", "Evaluate a query")
	flags.String(keyLua, "", "Lua file defining additional functions")
	flags.String(keyWorkspace, "", "Database file of saved workspaces")
	flags.String(keyHistory, "", "File keeping the input history of the REPL")
	flags.Int(keyPrecision, int(yamp.DefaultFormat.Precision), "Number of decimal digits to display")
	flags.String(keyLogfile, "stderr", "Log file, relative to the log directory, or URL")
}

func runYampCmd(cmd *cobra.Command, args []string) {
	tracing.Infof("yamp interpreter called")
	intp, err := newInterpreter()
	if err != nil {
		termui.DefaultFormatter{}.Format(err, os.Stderr)
		yamp.Exit(1)
	}
	defer intp.Close()
	batch := false
	for _, filename := range args {
		batch = true
		src, err := os.ReadFile(filename)
		if err != nil {
			tracing.Errorf("cannot read %s: %v", filename, err)
			yamp.Exit(1)
		}
		if !runBatch(intp, string(src)) {
			yamp.Exit(1)
		}
	}
	if query := yamp.ConfigString(keyEval, ""); query != "" {
		batch = true
		if !runBatch(intp, query) {
			yamp.Exit(1)
		}
	}
	if batch && !yamp.ConfigBool(keyInteractive, false) {
		return
	}
	repl := newYampREPL(intp)
	repl.Prompt(true)
}

// newInterpreter creates an interpreter from the configuration.
func newInterpreter() (*evaluator.Interpreter, error) {
	opts := []evaluator.Option{
		evaluator.WithPrecision(yamp.ConfigInt(keyPrecision, int(yamp.DefaultFormat.Precision))),
	}
	if luafile := yamp.ConfigString(keyLua, ""); luafile != "" {
		src, err := os.ReadFile(luafile)
		if err != nil {
			return nil, fmt.Errorf("cannot read Lua file: %w", err)
		}
		opts = append(opts, evaluator.WithLuaScript(filepath.Base(luafile), string(src)))
	}
	return evaluator.New(opts...)
}

// runBatch evaluates a query and prints its results to stdout. It returns
// false if evaluation failed.
func runBatch(intp *evaluator.Interpreter, query string) bool {
	ctx := yamp.SignalContext
	if ctx == nil {
		ctx = context.Background()
	}
	f := termui.DefaultFormatter{Numbers: intp.Format()}
	results, err := intp.Results(ctx, query)
	for _, v := range results {
		f.Format(v, os.Stdout)
	}
	if err != nil {
		f.Format(err, os.Stderr)
		return false
	}
	return true
}

// --- REPL ------------------------------------------------------------------

type yampREPL struct {
	*termui.BaseREPL
	intp      *evaluator.Interpreter
	formatter termui.Formatter
}

func newYampREPL(intp *evaluator.Interpreter) *yampREPL {
	repl := &yampREPL{
		BaseREPL:  termui.NewBaseREPL("yamp", version, yamp.ConfigString(keyHistory, "")),
		intp:      intp,
		formatter: termui.DefaultFormatter{Numbers: intp.Format()},
	}
	repl.Interpreter = repl
	repl.Helper = func(w io.Writer) {
		io.WriteString(w, `
Every other input is a query, e.g.

  A = [1, 2; 3, 4]            : assign a matrix
  A * [1; 1]                  : matrix product
  f = (x, y) => x^2 + y       : define a function
  f(2, 1); f(3, 1)            : a ';' mutes a result

`)
	}
	ws := &workspaces{intp: intp, formatter: repl.formatter}
	repl.AddCommand("who", "who", "list variables of the workspace", ws.who)
	repl.AddCommand("save", "save [name]", "save the workspace [under a name]", ws.save)
	repl.AddCommand("load", "load [name]", "load a saved workspace", ws.load)
	repl.AddCommand("workspaces", "workspaces", "list saved workspaces", ws.list)
	return repl
}

// InterpretCommand evaluates a query and prints its results. An interrupt
// signal stops the evaluation of the query.
func (repl *yampREPL) InterpretCommand(command string) {
	command = strings.Trim(command, "\x00")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	stdout, stderr := repl.Outputs()
	results, err := repl.intp.Results(ctx, command)
	for _, v := range results {
		repl.formatter.Format(v, stdout)
	}
	if err != nil {
		tracer().Debugf("query failed: %v", err)
		repl.formatter.Format(err, stderr)
	}
}
