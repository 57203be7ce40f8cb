package merge

import (
	"strings"

	"lcaingest/pkg/mapping"
	"lcaingest/pkg/model"
)

// Accumulate folds one per-stage contribution into a result matrix.
// The first contribution for a (category, stage) cell establishes it;
// later contributions add to it. An absent value is a no-op, not a
// zero: skipping keeps absence distinguishable from a measured zero in
// the accumulated matrix.
func Accumulate(impacts model.Impacts, category model.ImpactCategory, stage model.LifeCycleStage, value *float64) {
	if value == nil {
		return
	}
	impacts.Add(category, stage, *value)
}

// SetTotal writes a pre-aggregated total into a result matrix,
// overwriting any prior cell. Project- and assembly-level results that
// arrive already aggregated in the source must not be summed across the
// rows of a row group; they are set once per group instead.
func SetTotal(impacts model.Impacts, category model.ImpactCategory, stage model.LifeCycleStage, value *float64) {
	if value == nil {
		return
	}
	impacts.Set(category, stage, *value)
}

// TotalsFromRow builds a result matrix from the pre-aggregated total
// columns a mapping table declares under prefix. Keys have the shape
// "<prefix><category>.<stage>"; a key mapped to several columns sums
// them (absent participating as zero), a single absent column leaves
// its cell unset. Every resulting cell is scaled by scale, which lets
// per-year source values be expanded over a reference study period.
//
// Returns nil when no cell resolved to a value.
func TotalsFromRow(resolver *mapping.Resolver, record map[string]string, prefix string, scale float64) (model.Impacts, error) {
	results := model.Impacts{}
	for _, key := range resolver.Table.Prefixed(prefix) {
		rest := strings.TrimPrefix(key, prefix)
		parts := strings.Split(rest, ".")
		if len(parts) != 2 {
			return nil, &mapping.ConfigurationError{
				Dataset: resolver.Table.Dataset,
				Key:     key,
				Reason:  "result keys must have the shape " + prefix + "<category>.<stage>",
			}
		}
		category := model.ImpactCategory(parts[0])
		stage, ok := model.ParseLifeCycleStage(parts[1])
		if !ok {
			return nil, &mapping.ConfigurationError{
				Dataset: resolver.Table.Dataset,
				Key:     key,
				Reason:  "unknown life cycle stage " + parts[1],
			}
		}

		columns, err := resolver.Table.Columns(key)
		if err != nil {
			return nil, err
		}
		if len(columns) > 1 {
			values, err := resolver.Strings(record, key)
			if err != nil {
				return nil, err
			}
			allAbsent := true
			for _, v := range values {
				if !resolver.Absent(v) {
					allAbsent = false
					break
				}
			}
			if allAbsent {
				continue
			}
			total, err := resolver.SumFloat(record, key)
			if err != nil {
				return nil, err
			}
			results.Set(category, stage, total*scale)
			continue
		}
		value, err := resolver.Float(record, key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			continue
		}
		results.Set(category, stage, *value*scale)
	}
	if results.Empty() {
		return nil, nil
	}
	return results, nil
}
