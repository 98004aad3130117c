package corelang

import (
	"fmt"
	"sync"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/FlorianRappl/YAMP-sub003/overload"
	lua "github.com/yuin/gopher-lua"
)

// luaScript is a Lua state holding scripted functions. A Lua state must not
// be used concurrently.
type luaScript struct {
	name string
	L    *lua.LState
	mx   sync.Mutex
}

func (s *luaScript) close() {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.L.Close()
}

// LoadLua runs a Lua chunk and registers every global function the chunk
// defines. Scripted functions accept any number of numbers and return a
// number, a boolean, a string or nothing.
//
// name identifies the chunk in failure messages.
func LoadLua(reg *Registry, name, src string) error {
	reg.mustBeOpen()
	script := &luaScript{name: name, L: lua.NewState()}
	before := make(map[string]bool)
	script.L.G.Global.ForEach(func(k, _ lua.LValue) {
		before[k.String()] = true
	})
	if err := script.L.DoString(src); err != nil {
		script.L.Close()
		return &yamp.ScriptError{Function: name, Err: err}
	}
	count := 0
	script.L.G.Global.ForEach(func(k, v lua.LValue) {
		fn, ok := v.(*lua.LFunction)
		if !ok || before[k.String()] {
			return
		}
		fname := k.String()
		reg.Function(fname).Params().Group(0, 0, overload.Unbounded, 1).Body(
			func(args []yamp.Value) (yamp.Value, error) {
				return script.call(fname, fn, args[0].(*yamp.Tuple))
			})
		count++
	})
	tracer().Infof("Lua chunk %s defines %d functions", name, count)
	reg.scripts = append(reg.scripts, script)
	return nil
}

func (s *luaScript) call(name string, fn *lua.LFunction, args *yamp.Tuple) (yamp.Value, error) {
	largs := make([]lua.LValue, args.Len())
	for k, v := range args.Values() {
		n, ok := v.(yamp.Number)
		if !ok || !n.IsReal() {
			return nil, &yamp.ArgumentTypeError{Function: name, Index: k + 1,
				Actual: yamp.TypeName(v), Expected: "real " + yamp.NumberType.Name()}
		}
		largs[k] = lua.LNumber(n.Re())
	}
	s.mx.Lock()
	defer s.mx.Unlock()
	if err := s.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, largs...); err != nil {
		return nil, &yamp.ScriptError{Function: name, Err: err}
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)
	switch r := ret.(type) {
	case lua.LNumber:
		return yamp.Real(float64(r)), nil
	case lua.LBool:
		return yamp.Bool(bool(r)), nil
	case lua.LString:
		return yamp.NewString(string(r)), nil
	}
	if ret == lua.LNil {
		return nil, nil
	}
	return nil, &yamp.ScriptError{Function: name,
		Err: fmt.Errorf("cannot convert Lua %s to a value", ret.Type())}
}
