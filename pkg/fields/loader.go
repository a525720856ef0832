package fields

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/queryserve/internal/utils"
)

// fieldEntry is one fixture record.
//
//	[[field]]
//	name = "http_method"
//	type = "string"
//	properties = ["enumerable"]
//	queries = ["q1"]
type fieldEntry struct {
	Name       string   `toml:"name"`
	Type       string   `toml:"type"`
	Properties []string `toml:"properties"`
	Queries    []string `toml:"queries"`
}

type catalogFile struct {
	Fields []fieldEntry `toml:"field"`
}

// LoadSnapshotTOML reads a catalog fixture file into a snapshot. Every entry
// lands in All; entries naming queries additionally land in those
// partitions, keeping the superset invariant by construction.
func LoadSnapshotTOML(path string) (Snapshot, error) {
	var file catalogFile
	if err := utils.LoadTOMLFile(path, &file); err != nil {
		return Snapshot{}, fmt.Errorf("loading catalog fixture %s: %w", path, err)
	}

	snapshot := Snapshot{ByQuery: make(map[string][]Mapping)}
	for _, entry := range file.Fields {
		m := Mapping{
			Name: entry.Name,
			Type: FieldType{Type: entry.Type, Properties: entry.Properties},
		}
		snapshot.All = append(snapshot.All, m)
		for _, q := range entry.Queries {
			snapshot.ByQuery[q] = append(snapshot.ByQuery[q], m)
		}
	}
	log.Debugf("loaded %d field mappings (%d partitions) from %s", len(snapshot.All), len(snapshot.ByQuery), path)
	return snapshot, nil
}
