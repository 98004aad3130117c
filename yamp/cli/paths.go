package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// AppPaths is an interface to determine application specific paths for configuration,
// logging/tracing, the input history and persisted workspaces.
type AppPaths interface {
	ConfigDir() string
	LogDir() string
	HistoryFile() string
	WorkspaceFile() string
}

// DefaultAppPaths returns an AppPaths instance with platform-dependent defaults
// set, given appTag. appTag is a string specific to a client's application to identify it.
//
// If the home directory of the user cannot be determined, paths are relative
// to the working directory and an error is returned.
func DefaultAppPaths(appTag string) (AppPaths, error) {
	a := appPaths{tag: strings.ToLower(appTag)}
	var err error
	if a.home, err = os.UserHomeDir(); err != nil {
		a.home = "."
	}
	return a, err
}

type appPaths struct {
	tag  string
	home string
}

var _ AppPaths = appPaths{}

// ConfigDir is the platform's configuration directory for the application,
// e.g. ~/.config/yamp on Linux.
func (a appPaths) ConfigDir() string {
	c, err := os.UserConfigDir()
	if err != nil {
		c = filepath.Join(a.home, ".config")
	}
	return filepath.Join(c, a.tag)
}

// LogDir is a directory for log files below the platform's cache directory.
func (a appPaths) LogDir() string {
	c, err := os.UserCacheDir()
	if err != nil {
		c = a.home
	}
	return filepath.Join(c, "logs", a.tag)
}

// WorkspaceFile is the default database of saved workspaces, located in the
// configuration directory.
func (a appPaths) WorkspaceFile() string {
	return filepath.Join(a.ConfigDir(), "workspaces.db")
}

// HistoryFile keeps the input history of the REPL across sessions.
func (a appPaths) HistoryFile() string {
	return filepath.Join(a.ConfigDir(), "history")
}
