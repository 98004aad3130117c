package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yamp "github.com/FlorianRappl/YAMP-sub003"
	"github.com/FlorianRappl/YAMP-sub003/evaluator"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// Configuration keys. Flags of the root command carry the same names.
const (
	keyPrecision   = "precision"
	keyWorkspace   = "workspace"
	keyHistory     = "history"
	keyLua         = "lua"
	keyLogfile     = "logfile"
	keyInteractive = "interactive"
	keyEval        = "eval"
	keyDestination = "tracing.destination"
)

// maxPrecision is the largest number of decimal digits values are rendered
// with; float64 carries no more.
const maxPrecision = 15

// settings returns the defaults of the configuration. Configuration files
// override them, flags given on the command line override both.
func settings(paths AppPaths) map[string]interface{} {
	conf := map[string]interface{}{
		keyPrecision: int(yamp.DefaultFormat.Precision),
		keyWorkspace: paths.WorkspaceFile(),
		keyHistory:   paths.HistoryFile(),
		"trace.root": "Info",
	}
	for _, key := range evaluator.TracerKeys() {
		if strings.Contains(key, ".") { // a level for "yamp" would hide the nested keys
			conf["trace."+key] = "Error"
		}
	}
	return conf
}

// loadConfig is a callback function used by cobra's initialization mechanism.
// It cannot return an error, so it exits on failure.
func loadConfig() {
	paths := appPathsOrDefault()
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(settings(paths), "."), nil); err != nil {
		tracing.Errorf("cannot set configuration defaults: %v", err)
		yamp.Exit(1)
	}
	// configuration files are NestedText (nt), found by application key 'YAMP'
	konf := koanfadapter.New(k, "YAMP", []string{"nt"})
	konf.InitDefaults()
	err := konf.Koanf().Load(posflag.Provider(rootCmd.PersistentFlags(), ".", k), nil)
	if err == nil {
		err = checkSettings(konf)
	}
	if err == nil {
		err = configureTracing(konf, paths)
	}
	if err != nil {
		tracing.Errorf(err.Error())
		yamp.Exit(1)
	}
	yamp.Configuration = k
}

// checkSettings validates values an interpreter is created from.
func checkSettings(konf *koanfadapter.KConf) error {
	if p := konf.GetInt(keyPrecision); p < 0 || p > maxPrecision {
		return fmt.Errorf("precision must be between 0 and %d, is %d", maxPrecision, p)
	}
	if konf.GetString(keyWorkspace) == "" {
		return fmt.Errorf("no workspace database configured")
	}
	return nil
}

// configureTracing routes all tracers through Go's log package, to the log
// file if one is configured.
func configureTracing(konf *koanfadapter.KConf, paths AppPaths) error {
	if a := konf.GetString("tracing.adapter"); a != "go" {
		tracing.Errorf("tracing adapter %q not supported, using Go logging", a)
		konf.Set("tracing.adapter", "go")
	}
	dest, err := destination(konf.GetString(keyLogfile), paths)
	if err != nil {
		return err
	}
	if dest != "" {
		konf.Set(keyDestination, dest)
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(konf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracing.Infof("yamp %s, precision %d, workspaces in %s", version,
		konf.GetInt(keyPrecision), konf.GetString(keyWorkspace))
	return nil
}

// destination converts the logfile setting to a tracing destination. A
// relative file name is placed in the log directory, which is created if
// necessary. Logging to stderr needs no destination.
func destination(logfile string, paths AppPaths) (string, error) {
	switch {
	case logfile == "" || logfile == "stderr":
		return "", nil
	case strings.Contains(logfile, ":/"):
		return logfile, nil
	case filepath.IsAbs(logfile):
		return "file://" + logfile, nil
	}
	if err := os.MkdirAll(paths.LogDir(), 0o755); err != nil {
		return "", fmt.Errorf("cannot create log directory: %w", err)
	}
	return "file://" + filepath.Join(paths.LogDir(), logfile), nil
}

func appPathsOrDefault() AppPaths {
	paths, err := DefaultAppPaths("YAMP")
	if err != nil {
		tracing.Errorf("cannot locate home directory, using working directory: %v", err)
	}
	return paths
}
