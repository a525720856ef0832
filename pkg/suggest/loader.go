package suggest

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/queryserve/internal/utils"
)

// valuesFile is the fixture schema: one TOML table per field mapping values
// to occurrence counts.
//
//	[values.http_method]
//	GET = 300
//	POST = 120
type valuesFile struct {
	Values map[string]map[string]int64 `toml:"values"`
}

// LoadTOMLFile populates the index from a value fixture file.
func (ix *ValueIndex) LoadTOMLFile(path string) error {
	var file valuesFile
	if err := utils.LoadTOMLFile(path, &file); err != nil {
		return fmt.Errorf("loading value fixture %s: %w", path, err)
	}
	count := 0
	for field, values := range file.Values {
		for value, occ := range values {
			ix.Add(field, value, int(occ))
			count++
		}
	}
	log.Debugf("loaded %d values across %d fields from %s", count, len(file.Values), path)
	return nil
}
