package evaluator

import (
	"fmt"
	"io"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/FlorianRappl/YAMP-sub003/corelang"
	"github.com/FlorianRappl/YAMP-sub003/variables"
)

// records serializes the workspace. Values which cannot be serialized are
// skipped.
func (intp *Interpreter) records() []variables.Record {
	intp.mx.Lock()
	defer intp.mx.Unlock()
	var records []variables.Record
	intp.global.Frame().Each(func(name string, v yamp.Value) {
		tag, payload, err := yamp.Encode(v)
		if err != nil {
			tracer().P("var", name).Infof("not saved: %v", err)
			return
		}
		records = append(records, variables.Record{Name: name, Tag: tag, Payload: payload})
	})
	return records
}

// restore decodes records and assigns them to workspace variables. Either
// all records are restored, or none.
func (intp *Interpreter) restore(records []variables.Record) error {
	dec := yamp.NewDecoder(loader{intp})
	values := make([]yamp.Value, len(records))
	for i, r := range records {
		v, err := dec.Decode(r.Tag, r.Payload)
		if err != nil {
			return fmt.Errorf("variable %s: %w", r.Name, err)
		}
		values[i] = v
	}
	intp.mx.Lock()
	defer intp.mx.Unlock()
	for i, r := range records {
		intp.global.Assign(r.Name, values[i])
	}
	tracer().Debugf("restored %d variables", len(records))
	return nil
}

// Save writes the workspace to w as a record stream.
func (intp *Interpreter) Save(w io.Writer) error {
	return variables.Write(w, intp.records())
}

// Load reads a record stream from r into the workspace. Existing variables
// of the same names are overwritten.
func (intp *Interpreter) Load(r io.Reader) error {
	records, err := variables.Read(r)
	if err != nil {
		return err
	}
	return intp.restore(records)
}

// SaveTo saves the workspace to a store under a workspace name.
func (intp *Interpreter) SaveTo(store variables.Store, workspace string) error {
	return store.Save(workspace, intp.records())
}

// LoadFrom loads a workspace from a store.
func (intp *Interpreter) LoadFrom(store variables.Store, workspace string) error {
	records, err := store.Load(workspace)
	if err != nil {
		return err
	}
	return intp.restore(records)
}

// loader re-binds function values of a workspace: natives to the function
// of the same name in the registry, closures to their parsed source, closing
// over the global context.
type loader struct {
	intp *Interpreter
}

var _ yamp.FunctionLoader = loader{}

func (l loader) LoadFunction(name string, native bool, params []string, body string) (*yamp.Function, error) {
	if native {
		f, ok := l.intp.registry.LookupFunction(name)
		if !ok {
			return nil, &yamp.SymbolError{Name: name, Msg: "no such function"}
		}
		return yamp.NewNative(name, f), nil
	}
	q := l.intp.Parse(body)
	if err := q.Err(); err != nil {
		return nil, &yamp.FormatError{Tag: yamp.FunctionType.Name(), Msg: err.Error()}
	}
	if len(q.Statements) != 1 {
		return nil, &yamp.FormatError{Tag: yamp.FunctionType.Name(),
			Msg: fmt.Sprintf("function body has %d statements", len(q.Statements))}
	}
	return corelang.NewFunction(l.intp.global, name, params, q.Statements[0].Expr), nil
}
