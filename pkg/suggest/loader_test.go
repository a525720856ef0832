package suggest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTOMLFile(t *testing.T) {
	fixture := `
[values.http_method]
GET = 300
POST = 120

[values.source]
"example.org" = 50
`
	path := filepath.Join(t.TempDir(), "values.toml")
	if err := os.WriteFile(path, []byte(fixture), 0644); err != nil {
		t.Fatal(err)
	}

	ix := NewValueIndex(DefaultOptions())
	if err := ix.LoadTOMLFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ix.FieldCount(); got != 2 {
		t.Fatalf("FieldCount = %d, want 2", got)
	}

	resp, err := ix.SuggestFieldValues(context.Background(), "http_method", "G")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Suggestions) != 1 || resp.Suggestions[0].Occurrence != 300 {
		t.Errorf("suggestions = %v, want GET with 300 occurrences", resp.Suggestions)
	}
}

func TestLoadTOMLFileMissing(t *testing.T) {
	ix := NewValueIndex(DefaultOptions())
	if err := ix.LoadTOMLFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing fixture")
	}
}
