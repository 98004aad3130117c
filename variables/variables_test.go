package variables

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func sampleRecords() []Record {
	return []Record{
		{Name: "x", Tag: "Number", Payload: []byte{1, 2, 3}},
		{Name: "greeting", Tag: "String", Payload: []byte("héllo")},
		{Name: "empty", Tag: "Tuple", Payload: []byte{}},
	}
}

func TestRecordStream(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.variables")
	defer teardown()
	//
	var buf bytes.Buffer
	if err := Write(&buf, sampleRecords()); err != nil {
		t.Fatal(err)
	}
	// 1 + len("x") is the first length prefix and name
	if buf.Bytes()[0] != 1 || buf.Bytes()[1] != 'x' {
		t.Errorf("expected stream to start with length-prefixed name, got % x", buf.Bytes()[:4])
	}
	records, err := Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(records, sampleRecords()) {
		t.Errorf("records changed in stream: %v", records)
	}
}

func TestTruncatedStream(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.variables")
	defer teardown()
	//
	var buf bytes.Buffer
	Write(&buf, sampleRecords())
	data := buf.Bytes()
	for _, cut := range []int{1, 3, len(data) - 1} {
		_, err := Read(bytes.NewReader(data[:cut]))
		if !errors.Is(err, ErrCorrupt) {
			t.Errorf("cut at %d: expected ErrCorrupt, got %v", cut, err)
		}
	}
	records, err := Read(bytes.NewReader(nil))
	if err != nil || len(records) != 0 {
		t.Errorf("expected empty input to yield no records, got %v, %v", records, err)
	}
}

func testStore(t *testing.T, s Store) {
	if _, err := s.Load("none"); err == nil {
		t.Errorf("expected failure for unknown workspace")
	} else {
		var nsw *NoSuchWorkspaceError
		if !errors.As(err, &nsw) {
			t.Errorf("expected NoSuchWorkspaceError, got %v", err)
		}
	}
	if err := s.Save("work", sampleRecords()); err != nil {
		t.Fatal(err)
	}
	if err := s.Save("blank", nil); err != nil {
		t.Fatal(err)
	}
	records, err := s.Load("work")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(records, sampleRecords()) {
		t.Errorf("store changed records: %v", records)
	}
	if err = s.Save("work", sampleRecords()[:1]); err != nil {
		t.Fatal(err)
	}
	if records, _ = s.Load("work"); len(records) != 1 {
		t.Errorf("expected saving to replace the workspace, have %d records", len(records))
	}
	if records, err = s.Load("blank"); err != nil || len(records) != 0 {
		t.Errorf("expected empty workspace, got %v, %v", records, err)
	}
	names, err := s.List()
	if err != nil || !reflect.DeepEqual(names, []string{"blank", "work"}) {
		t.Errorf("expected workspaces [blank work], got %v, %v", names, err)
	}
}

func TestMemoryStore(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.variables")
	defer teardown()
	//
	s := NewMemory()
	defer s.Close()
	testStore(t, s)
}

func TestSQLiteStore(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "yamp.variables")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "workspace.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("cannot create SQLite store: %v", err)
	}
	testStore(t, s)
	s.Close()
	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("cannot re-open SQLite store: %v", err)
	}
	defer s.Close()
	if records, err := s.Load("work"); err != nil || len(records) != 1 {
		t.Errorf("expected workspace to survive re-opening, got %v, %v", records, err)
	}
}
