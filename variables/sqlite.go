package variables

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // registers driver "sqlite"
)

// SchemaVersion is the version of the database layout written by SQLite
// stores.
const SchemaVersion = "1"

// SQLite is a Store in an SQLite database file.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens or creates a workspace database at path. Databases of an
// unknown schema version are refused.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS variables (
			workspace TEXT NOT NULL,
			seq INTEGER NOT NULL,
			name TEXT NOT NULL,
			tag TEXT NOT NULL,
			payload BLOB NOT NULL,
			PRIMARY KEY (workspace, seq)
		);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}
	s := &SQLite{db: db}
	version, err := s.metadata("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	switch version {
	case "":
		if err = s.setMetadata("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	case SchemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}
	tracer().P("db", path).Debugf("opened workspace store")
	return s, nil
}

// Save replaces the records of a workspace within a single transaction.
func (s *SQLite) Save(workspace string, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err = tx.Exec("DELETE FROM variables WHERE workspace = ?", workspace); err != nil {
		tx.Rollback()
		return err
	}
	_, err = tx.Exec(`INSERT INTO metadata (key, value) VALUES (?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, workspaceKey(workspace))
	if err != nil {
		tx.Rollback()
		return err
	}
	for i, r := range records {
		payload := r.Payload
		if payload == nil {
			payload = []byte{}
		}
		_, err = tx.Exec(`INSERT INTO variables (workspace, seq, name, tag, payload)
			VALUES (?, ?, ?, ?, ?)`, workspace, i, r.Name, r.Tag, payload)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	tracer().P("workspace", workspace).Debugf("saved %d variables", len(records))
	return nil
}

// Load returns the records of a workspace in the order they were saved.
func (s *SQLite) Load(workspace string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(`SELECT name, tag, payload FROM variables
		WHERE workspace = ? ORDER BY seq`, workspace)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Name, &r.Tag, &r.Payload); err != nil {
			return nil, err
		}
		if r.Payload == nil {
			r.Payload = []byte{}
		}
		records = append(records, r)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if records == nil {
		var n int
		err = s.db.QueryRow("SELECT COUNT(*) FROM metadata WHERE key = ?", workspaceKey(workspace)).Scan(&n)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, &NoSuchWorkspaceError{Workspace: workspace}
		}
	}
	return records, nil
}

// List returns the names of all saved workspaces, sorted.
func (s *SQLite) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(`SELECT substr(key, 11) FROM metadata
		WHERE key LIKE 'workspace:%' ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func workspaceKey(workspace string) string {
	return "workspace:" + workspace
}

// metadata reads a metadata value; the caller must hold the lock or be
// initializing the store.
func (s *SQLite) metadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (s *SQLite) setMetadata(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
