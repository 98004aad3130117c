package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/FlorianRappl/YAMP-sub003/yamp/ui/termui"
	"github.com/knadh/koanf"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestWorkspaceCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.cli")
	defer teardown()
	//
	k := koanf.New(".")
	k.Set("workspace", filepath.Join(t.TempDir(), "sub", "ws.db"))
	k.Set("precision", 2)
	yamp.Configuration = k
	defer func() { yamp.Configuration = nil }()
	intp, err := newInterpreter()
	if err != nil {
		t.Fatal(err)
	}
	defer intp.Close()
	if !runBatch(intp, "x = 1 / 3; y = [1 2]") {
		t.Fatalf("batch evaluation failed")
	}
	if runBatch(intp, "1 + ") {
		t.Errorf("expected batch evaluation to report a parse error")
	}
	ws := &workspaces{intp: intp, formatter: termui.DefaultFormatter{Numbers: intp.Format()}}
	var out bytes.Buffer
	ws.who(nil, &out)
	listing := strings.ToLower(out.String())
	if !strings.Contains(listing, "0.33") || !strings.Contains(listing, "2 variables") {
		t.Errorf("unexpected variable table:\n%s", out.String())
	}
	ws.save([]string{"save", "mine"}, &out)
	if ws.store == nil {
		t.Fatalf("workspace store has not been opened: %s", out.String())
	}
	defer ws.store.Close()
	intp.Clear()
	out.Reset()
	ws.load([]string{"load", "mine"}, &out)
	if !strings.Contains(out.String(), `loaded workspace "mine"`) {
		t.Errorf("unexpected output of load: %s", out.String())
	}
	if v, ok := intp.Lookup("y"); !ok || v.String() != "[1, 2]" {
		t.Errorf("expected y to be restored, got %v", v)
	}
	out.Reset()
	ws.load([]string{"load", "other"}, &out)
	if !strings.Contains(out.String(), "error") {
		t.Errorf("expected loading an unknown workspace to fail, got %s", out.String())
	}
}
