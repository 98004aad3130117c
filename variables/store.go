package variables

import (
	"fmt"
	"sort"
	"sync"
)

// Store keeps named workspaces. Saving a workspace replaces a previous
// workspace of the same name.
type Store interface {
	Save(workspace string, records []Record) error
	Load(workspace string) ([]Record, error)
	List() ([]string, error)
	Close() error
}

// NoSuchWorkspaceError is returned by Load for an unknown workspace name.
type NoSuchWorkspaceError struct {
	Workspace string
}

func (e *NoSuchWorkspaceError) Error() string {
	return fmt.Sprintf("no workspace named %q", e.Workspace)
}

// Memory is a Store holding workspaces in memory.
type Memory struct {
	mu         sync.Mutex
	workspaces map[string][]Record
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{workspaces: make(map[string][]Record)}
}

// Save stores a copy of records under a workspace name.
func (m *Memory) Save(workspace string, records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := make([]Record, len(records))
	for i, r := range records {
		payload := make([]byte, len(r.Payload))
		copy(payload, r.Payload)
		c[i] = Record{Name: r.Name, Tag: r.Tag, Payload: payload}
	}
	m.workspaces[workspace] = c
	return nil
}

// Load returns the records of a workspace.
func (m *Memory) Load(workspace string) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records, ok := m.workspaces[workspace]
	if !ok {
		return nil, &NoSuchWorkspaceError{Workspace: workspace}
	}
	return append([]Record(nil), records...), nil
}

// List returns the names of all workspaces, sorted.
func (m *Memory) List() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.workspaces))
	for n := range m.workspaces {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
