// Package fields maintains the catalog of known fields and their types,
// partitioned by "all fields" vs fields observed in the currently active
// query. Snapshots are immutable and swapped wholesale on store changes.
package fields

// Property names a trait of a field type.
type Property string

const (
	// PropEnumerable marks a type whose value domain is discrete enough
	// to offer value suggestions for.
	PropEnumerable Property = "enumerable"
	// PropNumeric marks numeric types.
	PropNumeric Property = "numeric"
)

// FieldType describes a declared field type and its traits.
type FieldType struct {
	Type       string   `toml:"type"`
	Properties []string `toml:"properties"`
}

// HasProperty reports whether the type carries the given trait.
func (ft FieldType) HasProperty(p Property) bool {
	for _, prop := range ft.Properties {
		if prop == string(p) {
			return true
		}
	}
	return false
}

// Mapping binds one known field name to its declared type.
type Mapping struct {
	Name string    `toml:"name"`
	Type FieldType `toml:"type"`
}

// Snapshot is an immutable view of the field catalog. All always contains
// every field from every query partition; ByQuery holds the fields observed
// per query id.
type Snapshot struct {
	All     []Mapping
	ByQuery map[string][]Mapping
}

// Partition returns the fields observed in the given query, or nil when the
// query is unknown.
func (s Snapshot) Partition(queryID string) []Mapping {
	if s.ByQuery == nil {
		return nil
	}
	return s.ByQuery[queryID]
}

// Lookup finds a field by name, searching the active partition first and
// falling back to the full set.
func (s Snapshot) Lookup(queryID, name string) (Mapping, bool) {
	for _, m := range s.Partition(queryID) {
		if m.Name == name {
			return m, true
		}
	}
	for _, m := range s.All {
		if m.Name == name {
			return m, true
		}
	}
	return Mapping{}, false
}
