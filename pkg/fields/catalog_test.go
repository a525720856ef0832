package fields

import "testing"

func enumerable(name string) Mapping {
	return Mapping{Name: name, Type: FieldType{Type: "string", Properties: []string{"enumerable"}}}
}

func numeric(name string) Mapping {
	return Mapping{Name: name, Type: FieldType{Type: "long", Properties: []string{"numeric"}}}
}

func TestCatalogReflectsStoreChanges(t *testing.T) {
	mappings := NewMappingStore(Snapshot{All: []Mapping{enumerable("http_method")}})
	queries := NewQueryStore("q1")

	catalog := NewCatalog(mappings, queries)
	defer catalog.Close()

	if got := len(catalog.Snapshot().All); got != 1 {
		t.Fatalf("initial snapshot has %d fields, want 1", got)
	}
	if got := catalog.ActiveQuery(); got != "q1" {
		t.Fatalf("active query = %q, want q1", got)
	}

	mappings.Replace(Snapshot{
		All:     []Mapping{enumerable("http_method"), numeric("took_ms")},
		ByQuery: map[string][]Mapping{"q2": {numeric("took_ms")}},
	})
	queries.SetActive("q2")

	snapshot, active := catalog.ActiveView()
	if len(snapshot.All) != 2 {
		t.Errorf("replaced snapshot has %d fields, want 2", len(snapshot.All))
	}
	if active != "q2" {
		t.Errorf("active query = %q, want q2", active)
	}
	if got := snapshot.Partition("q2"); len(got) != 1 || got[0].Name != "took_ms" {
		t.Errorf("partition q2 = %v", got)
	}
}

func TestCatalogCloseDetaches(t *testing.T) {
	mappings := NewMappingStore(Snapshot{})
	queries := NewQueryStore("q1")

	catalog := NewCatalog(mappings, queries)
	catalog.Close()

	mappings.Replace(Snapshot{All: []Mapping{enumerable("source")}})
	queries.SetActive("q2")

	if got := len(catalog.Snapshot().All); got != 0 {
		t.Errorf("closed catalog saw %d fields, want 0", got)
	}
	if got := catalog.ActiveQuery(); got != "q1" {
		t.Errorf("closed catalog saw active query %q, want q1", got)
	}
}

func TestSnapshotLookup(t *testing.T) {
	snapshot := Snapshot{
		All: []Mapping{enumerable("http_method"), numeric("took_ms")},
		ByQuery: map[string][]Mapping{
			"q1": {enumerable("http_method")},
		},
	}

	if _, ok := snapshot.Lookup("q1", "http_method"); !ok {
		t.Error("http_method not found in q1")
	}
	// Fields outside the partition still resolve through All.
	if _, ok := snapshot.Lookup("q1", "took_ms"); !ok {
		t.Error("took_ms not found through All")
	}
	if _, ok := snapshot.Lookup("q1", "missing"); ok {
		t.Error("missing field should not resolve")
	}
}

func TestHasProperty(t *testing.T) {
	if !enumerable("x").Type.HasProperty(PropEnumerable) {
		t.Error("enumerable mapping lacks enumerable property")
	}
	if numeric("x").Type.HasProperty(PropEnumerable) {
		t.Error("numeric mapping should not be enumerable")
	}
}
