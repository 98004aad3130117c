package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/FlorianRappl/YAMP-sub003/evaluator"
	"github.com/FlorianRappl/YAMP-sub003/variables"
	"github.com/FlorianRappl/YAMP-sub003/yamp/ui/termui"
	"github.com/jedib0t/go-pretty/v6/table"
)

const defaultWorkspace = "default"

// workspaces implements the REPL commands dealing with the workspace of an
// interpreter. The store is opened on first use.
type workspaces struct {
	intp      *evaluator.Interpreter
	formatter termui.Formatter
	store     variables.Store
}

func (ws *workspaces) open() (variables.Store, error) {
	if ws.store != nil {
		return ws.store, nil
	}
	path := yamp.ConfigString(keyWorkspace, "")
	if path == "" {
		path = appPathsOrDefault().WorkspaceFile()
	}
	tracer().P("db", path).Debugf("opening workspace store")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	store, err := variables.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open workspaces: %w", err)
	}
	ws.store = store
	return store, nil
}

func workspaceName(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return defaultWorkspace
}

func (ws *workspaces) who(args []string, out io.Writer) {
	vars := ws.intp.Variables()
	tw := table.NewWriter()
	tw.SetTitle("Workspace")
	tw.AppendHeader(table.Row{"name", "type", "value"})
	for _, v := range vars {
		tw.AppendRow(table.Row{v.Name, v.Value.Type().Name(), ws.intp.Render(v.Value)})
	}
	tw.AppendFooter(table.Row{"", "", fmt.Sprintf("%d variables", len(vars))})
	tw.SetStyle(table.StyleLight)
	ws.formatter.Format(tw, out)
}

func (ws *workspaces) save(args []string, out io.Writer) {
	store, err := ws.open()
	if err == nil {
		err = ws.intp.SaveTo(store, workspaceName(args))
	}
	if err != nil {
		ws.formatter.Format(err, out)
		return
	}
	ws.formatter.Format(fmt.Sprintf("saved workspace %q", workspaceName(args)), out)
}

func (ws *workspaces) load(args []string, out io.Writer) {
	store, err := ws.open()
	if err == nil {
		err = ws.intp.LoadFrom(store, workspaceName(args))
	}
	if err != nil {
		ws.formatter.Format(err, out)
		return
	}
	ws.formatter.Format(fmt.Sprintf("loaded workspace %q", workspaceName(args)), out)
}

func (ws *workspaces) list(args []string, out io.Writer) {
	store, err := ws.open()
	var names []string
	if err == nil {
		names, err = store.List()
	}
	if err != nil {
		ws.formatter.Format(err, out)
		return
	}
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"saved workspaces"})
	for _, name := range names {
		tw.AppendRow(table.Row{name})
	}
	tw.SetStyle(table.StyleLight)
	ws.formatter.Format(tw, out)
}
