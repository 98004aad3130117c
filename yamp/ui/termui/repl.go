package termui

// Utilities for interactive command line interfaces.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/chzyer/readline"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
)

// Some global defaults
var welcomeMessage = "Welcome to %s [V%s]"
var stdprompt = prtxt.FgGreen.Sprint("%s> ")
var editmode string = "emacs"

// CommandFunc executes an administrative command of a REPL. args holds the
// words of the command line, including the command.
type CommandFunc func(args []string, out io.Writer)

type command struct {
	usage, help string
	run         CommandFunc
}

// BaseREPL is a base type to instantiate a REPL interpreter.
// Concrete REPL implementations will usually use this as a base type.
type BaseREPL struct {
	Interpreter REPLCommandInterpreter // the interpreter this REPL runs for
	Helper      func(io.Writer)        // print out help information
	readline    *readline.Instance
	completer   *readline.PrefixCompleter
	commands    map[string]command
	toolname    string
	version     string
}

// NewBaseREPL create a new REPL base object intialized for an interpreter tool
// and a given version. Input history is kept in histfile, or in a temporary
// file if histfile is empty.
func NewBaseREPL(toolname, version, histfile string) *BaseREPL {
	repl := &BaseREPL{
		completer: newCompleter(),
		commands:  make(map[string]command),
		toolname:  toolname,
		version:   version,
	}
	repl.readline = newReadline(toolname, histfile, repl.completer)
	return repl
}

// REPLCommandInterpreter is an interface all interpreters have to implement.
// It is the workhorse doing interpretation of interactive
// commands.
//
// The REPL will delegate interpreting command strings (i.e. those which do not represent
// internal administrative commands) to the interpreter.
type REPLCommandInterpreter interface {
	InterpretCommand(string)
}

// Create a readline instance.
func newReadline(toolname, histfile string, completer readline.AutoCompleter) *readline.Instance {
	if histfile == "" {
		histfile = fmt.Sprintf("%s/%s-repl-history.tmp", os.TempDir(), toolname)
	} else if err := os.MkdirAll(filepath.Dir(histfile), 0o755); err != nil {
		trace().Errorf("cannot create directory for history file: %v", err)
	}
	prompt := fmt.Sprintf(stdprompt, toolname)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              prompt,
		HistoryFile:         histfile,
		AutoComplete:        completer,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterReplInput,
	})
	if err != nil {
		panic(err)
	}
	return rl
}

// AddCommand adds an administrative command. Administrative commands take
// precedence over statements of the interpreter: a line starting with the
// name of a command is not interpreted.
func (repl *BaseREPL) AddCommand(name, usage, help string, run CommandFunc) {
	repl.commands[name] = command{usage: usage, help: help, run: run}
	repl.completer.SetChildren(append(repl.completer.GetChildren(), readline.PcItem(name)))
}

// displayCommands prints a help message with available commands
// We support some internal interactive sub-commands (not part of the interpreter).
func (repl *BaseREPL) displayCommands(out io.Writer) {
	io.WriteString(out, fmt.Sprintf(welcomeMessage, repl.toolname, repl.version))
	io.WriteString(out, "\n\nThe following commands are available:\n\n")
	io.WriteString(out, "  help               : print this message\n")
	io.WriteString(out, "  bye                : quit application\n")
	io.WriteString(out, "  mode [mode]        : display or set current editing mode\n")
	io.WriteString(out, "  setprompt [prompt] : set current prompt [to default]\n")
	names := make([]string, 0, len(repl.commands))
	for name := range repl.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := repl.commands[name]
		io.WriteString(out, fmt.Sprintf("  %-18s : %s\n", c.usage, c.help))
	}
}

// Completer-tree for interactive frames sub-commands
func newCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("bye"),
		readline.PcItem("mode",
			readline.PcItem("vi"),
			readline.PcItem("emacs"),
		),
		readline.PcItem("setprompt"),
	)
}

// Outputs returns stdout and stderr of this REPL.
func (repl *BaseREPL) Outputs() (io.Writer, io.Writer) {
	return repl.readline.Stdout(), repl.readline.Stderr()
}

// Prompt enters a REPL and executes commands.
// Commands are either internal administrative (setprompt, help, etc.)
// or interpreted statements.
func (repl *BaseREPL) Prompt(exitOnBye bool) {
	defer repl.readline.Close()
	io.WriteString(repl.readline.Stderr(),
		fmt.Sprintf(welcomeMessage, repl.toolname, repl.version))
	if !strings.HasSuffix(welcomeMessage, "\n") {
		repl.readline.Stderr().Write([]byte{'\n'})
	}
	for {
		line, err := repl.readline.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		words := strings.Fields(line)
		command := ""
		if len(words) > 0 {
			command = words[0]
		}
		if doExit := repl.executeCommand(command, words, line); doExit {
			break
		}
	}
	if exitOnBye {
		yamp.Exit(0)
	}
}

// Central dispatcher function to execute internal REPL commands or interpreter
// statements. It receives the command (i.e. the first word of the line),
// a list of words (args) including the command, and the complete line of text.
// If it returns true, the REPL should terminate.
func (repl *BaseREPL) executeCommand(cmd string, args []string, line string) bool {
	if c, ok := repl.commands[cmd]; ok {
		c.run(args, repl.readline.Stderr())
		return false
	}
	switch {
	case cmd == "":
		// do nothing
	case cmd == "help":
		repl.displayCommands(repl.readline.Stderr())
		if repl.Helper != nil {
			repl.Helper(repl.readline.Stderr())
		}
	case cmd == "bye":
		println("> goodbye!")
		return true
	case cmd == "mode":
		if len(args) > 1 {
			switch args[1] {
			case "vi":
				repl.readline.SetVimMode(true)
				editmode = "vi"
				return false
			case "emacs":
				repl.readline.SetVimMode(false)
				editmode = "emacs"
				return false
			}
		}
		io.WriteString(repl.readline.Stderr(),
			fmt.Sprintf("> current input mode: %s\n", editmode))
	case cmd == "setprompt":
		var prmpt string
		if len(line) <= 10 {
			prmpt = fmt.Sprintf(stdprompt, repl.toolname)
		} else {
			prmpt = line[10:] + " "
		}
		repl.readline.SetPrompt(prmpt)
	default:
		trace().Debugf("call interpreter on: '%s'", line)
		repl.interpret(line)
	}
	return false // do not exit
}

// interpret calls the interpreter, sending a statement.
func (repl *BaseREPL) interpret(line string) {
	if repl.Interpreter == nil {
		return
	}
	repl.Interpreter.InterpretCommand(line)
}

// Input filter for REPL. Blocks ctrl-z.
func filterReplInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
