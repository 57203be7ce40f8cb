// Package dataset carries one profile per supported source dataset.
// Each profile couples the dataset's embedded mapping table with the
// callbacks the shared merge engine needs; there is no per-dataset
// engine code. Adding a dataset means adding a mapping config and a
// profile constructor here.
package dataset

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"lcaingest/pkg/mapping"
	"lcaingest/pkg/merge"
)

//go:embed configs/*.json
var configs embed.FS

// Dataset couples a source dataset's reader settings with its profile
// constructor.
type Dataset struct {
	// Name is the dataset identifier used by the CLI and in errors.
	Name string
	// Delimiter is the column separator of the dataset's export.
	Delimiter rune
	// Build constructs a fresh merge profile with the dataset's
	// mapping table loaded.
	Build func() (*merge.Profile, error)
}

var registry = []Dataset{
	{Name: "becd", Delimiter: ',', Build: BECD},
	{Name: "carbenmats", Delimiter: ';', Build: CarbEnMats},
	{Name: "slice", Delimiter: ',', Build: SLiCE},
	{Name: "structural-panda", Delimiter: ',', Build: StructuralPanda},
}

// All returns every supported dataset in registration order.
func All() []Dataset {
	return registry
}

// ByName looks a dataset up by its identifier.
func ByName(name string) (Dataset, bool) {
	for _, d := range registry {
		if d.Name == name {
			return d, true
		}
	}
	return Dataset{}, false
}

// loadTable parses an embedded mapping config. A missing or invalid
// config is a build defect, not a runtime condition, but the error is
// still surfaced instead of panicking so the CLI can report it.
func loadTable(dataset, file string) (*mapping.Table, error) {
	data, err := configs.ReadFile("configs/" + file)
	if err != nil {
		return nil, fmt.Errorf("embedded mapping config for %q: %w", dataset, err)
	}
	return mapping.Parse(dataset, data)
}

// serializeRecord renders a whole record as a stable string for
// content-keyed identity derivation on datasets whose rows carry no
// natural identifier. Keys are sorted so the serialization does not
// depend on map iteration order.
func serializeRecord(record map[string]string) string {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(record[k])
		b.WriteByte('\n')
	}
	return b.String()
}

func strPtr(s string) *string { return &s }

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
