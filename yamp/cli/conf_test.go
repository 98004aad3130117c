package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/FlorianRappl/YAMP-sub003/evaluator"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// dirPaths places all application files below a single directory.
type dirPaths string

func (d dirPaths) ConfigDir() string     { return filepath.Join(string(d), "config") }
func (d dirPaths) LogDir() string        { return filepath.Join(string(d), "logs") }
func (d dirPaths) HistoryFile() string   { return filepath.Join(d.ConfigDir(), "history") }
func (d dirPaths) WorkspaceFile() string { return filepath.Join(d.ConfigDir(), "workspaces.db") }

func testPaths(t *testing.T) AppPaths {
	return dirPaths(t.TempDir())
}

func TestSettingsDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.cli")
	defer teardown()
	//
	paths := testPaths(t)
	conf := settings(paths)
	if conf[keyPrecision] != int(yamp.DefaultFormat.Precision) {
		t.Errorf("expected default precision %d, is %v", yamp.DefaultFormat.Precision, conf[keyPrecision])
	}
	if conf[keyWorkspace] != paths.WorkspaceFile() {
		t.Errorf("expected workspace default %s, is %v", paths.WorkspaceFile(), conf[keyWorkspace])
	}
	if conf[keyHistory] != paths.HistoryFile() {
		t.Errorf("expected history default %s, is %v", paths.HistoryFile(), conf[keyHistory])
	}
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(conf, "."), nil); err != nil {
		t.Fatal(err)
	}
	for _, key := range evaluator.TracerKeys() {
		if key == "yamp" {
			continue
		}
		if level := k.String("trace." + key); level != "Error" {
			t.Errorf("expected tracer %s to default to level Error, is %q", key, level)
		}
	}
	if k.String("trace.root") != "Info" {
		t.Errorf("expected root tracer to default to level Info, is %q", k.String("trace.root"))
	}
	if def, _ := DefaultAppPaths("YAMP"); filepath.Dir(def.HistoryFile()) != def.ConfigDir() {
		t.Errorf("expected history file in configuration directory, is %s", def.HistoryFile())
	}
}

func TestCheckSettings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.cli")
	defer teardown()
	//
	paths := testPaths(t)
	for _, c := range []struct {
		precision int
		ok        bool
	}{
		{0, true},
		{4, true},
		{maxPrecision, true},
		{-1, false},
		{maxPrecision + 1, false},
	} {
		k := koanf.New(".")
		k.Load(confmap.Provider(settings(paths), "."), nil)
		konf := koanfadapter.New(k, "", nil)
		konf.Set(keyPrecision, c.precision)
		err := checkSettings(konf)
		if c.ok && err != nil {
			t.Errorf("precision %d: unexpected error %v", c.precision, err)
		} else if !c.ok && err == nil {
			t.Errorf("precision %d: expected an error", c.precision)
		}
	}
	k := koanf.New(".")
	konf := koanfadapter.New(k, "", nil)
	konf.Set(keyPrecision, 4)
	if err := checkSettings(konf); err == nil || !strings.Contains(err.Error(), "workspace") {
		t.Errorf("expected missing workspace to be reported, have %v", err)
	}
}

func TestLogDestination(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.cli")
	defer teardown()
	//
	paths := testPaths(t)
	abs := filepath.Join(t.TempDir(), "yamp.log")
	for _, c := range []struct {
		logfile, dest string
	}{
		{"", ""},
		{"stderr", ""},
		{"file:///var/log/yamp.log", "file:///var/log/yamp.log"},
		{abs, "file://" + abs},
		{"session.log", "file://" + filepath.Join(paths.LogDir(), "session.log")},
	} {
		dest, err := destination(c.logfile, paths)
		if err != nil {
			t.Fatalf("logfile %q: %v", c.logfile, err)
		}
		if dest != c.dest {
			t.Errorf("logfile %q: expected destination %q, is %q", c.logfile, c.dest, dest)
		}
	}
	if info, err := os.Stat(paths.LogDir()); err != nil || !info.IsDir() {
		t.Errorf("expected log directory %s to be created", paths.LogDir())
	}
}
