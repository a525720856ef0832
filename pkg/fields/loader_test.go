package fields

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSnapshotTOML(t *testing.T) {
	fixture := `
[[field]]
name = "http_method"
type = "string"
properties = ["enumerable"]
queries = ["q1"]

[[field]]
name = "took_ms"
type = "long"
properties = ["numeric"]
`
	path := filepath.Join(t.TempDir(), "fields.toml")
	if err := os.WriteFile(path, []byte(fixture), 0644); err != nil {
		t.Fatal(err)
	}

	snapshot, err := LoadSnapshotTOML(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snapshot.All) != 2 {
		t.Fatalf("got %d fields, want 2", len(snapshot.All))
	}
	if got := snapshot.Partition("q1"); len(got) != 1 || got[0].Name != "http_method" {
		t.Errorf("partition q1 = %v, want http_method", got)
	}
	m, ok := snapshot.Lookup("q1", "http_method")
	if !ok || !m.Type.HasProperty(PropEnumerable) {
		t.Errorf("http_method mapping = %v, ok = %v", m, ok)
	}
	// Unpartitioned fields stay reachable through All.
	if _, ok := snapshot.Lookup("q1", "took_ms"); !ok {
		t.Error("took_ms not reachable through All")
	}
}

func TestLoadSnapshotTOMLMissingFile(t *testing.T) {
	if _, err := LoadSnapshotTOML(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing fixture")
	}
}
