package sframe

import (
	"testing"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFrameVariables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.frame")
	defer teardown()
	//
	f := NewFrame("global", nil)
	f.Set("b", yamp.Real(2))
	f.Set("a", yamp.Real(1))
	f.Set("a", yamp.Real(3))
	if v, ok := f.Get("a"); !ok || v.String() != "3" {
		t.Errorf("expected a = 3, got %v", v)
	}
	names := f.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected sorted names [a b], got %v", names)
	}
	if !f.Remove("a") || f.Remove("a") {
		t.Errorf("expected a to be removed exactly once")
	}
	if _, ok := f.Get("a"); ok {
		t.Errorf("expected a to be gone")
	}
}

func TestFrameChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.frame")
	defer teardown()
	//
	global := NewFrame("global", nil)
	global.Set("x", yamp.Real(1))
	call1 := NewFrame("f", global)
	call2 := NewFrame("f", global)
	call1.Set("y", yamp.Real(10))
	if _, fr := call2.Lookup("y"); fr != nil {
		t.Errorf("frames of different invocations must not share variables")
	}
	v, fr := call1.Lookup("x")
	if fr != global || v.String() != "1" {
		t.Errorf("expected x to be found in global frame")
	}
	call1.Set("x", yamp.Real(5))
	if v, _ := global.Get("x"); v.String() != "1" {
		t.Errorf("local assignment changed global variable")
	}
}
