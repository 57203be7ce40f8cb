package mapping

import (
	"strconv"
	"strings"
	"time"
)

// Resolver fetches and normalizes raw record values through a mapping
// table. A value equal to the empty string or the dataset's placeholder
// token (case-insensitive) is logically absent: typed getters return
// nil for it, never zero, so absence stays distinguishable from a
// measured zero. Only the additive helpers treat absent as zero, and
// only because their call sites are sums.
type Resolver struct {
	Table       *Table
	Placeholder string
}

// NewResolver binds a resolver to a table with the conventional
// "no data" placeholder.
func NewResolver(table *Table) *Resolver {
	return &Resolver{Table: table, Placeholder: "no data"}
}

// Absent reports whether a raw value is logically absent.
func (r *Resolver) Absent(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	return r.Placeholder != "" && strings.EqualFold(trimmed, r.Placeholder)
}

// Raw returns the unmodified source value for a single-column key. A
// column the record does not carry is a configuration error: the
// column set is fixed per dataset, so a miss means the mapping and the
// export have drifted apart.
func (r *Resolver) Raw(record map[string]string, key string) (string, error) {
	column, err := r.Table.Column(key)
	if err != nil {
		return "", err
	}
	value, ok := record[column]
	if !ok {
		return "", &ConfigurationError{Dataset: r.Table.Dataset, Key: key, Reason: "column " + strconv.Quote(column) + " not present in record"}
	}
	return value, nil
}

// String returns the trimmed value, or nil when absent.
func (r *Resolver) String(record map[string]string, key string) (*string, error) {
	raw, err := r.Raw(record, key)
	if err != nil {
		return nil, err
	}
	if r.Absent(raw) {
		return nil, nil
	}
	trimmed := strings.TrimSpace(raw)
	return &trimmed, nil
}

// StringOr returns the trimmed value, or fallback when absent.
func (r *Resolver) StringOr(record map[string]string, key, fallback string) (string, error) {
	s, err := r.String(record, key)
	if err != nil {
		return "", err
	}
	if s == nil {
		return fallback, nil
	}
	return *s, nil
}

// Float returns the value parsed as a float, or nil when absent.
func (r *Resolver) Float(record map[string]string, key string) (*float64, error) {
	raw, err := r.Raw(record, key)
	if err != nil {
		return nil, err
	}
	if r.Absent(raw) {
		return nil, nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, r.malformed(key, raw, "number", err)
	}
	return &value, nil
}

// Int returns the value parsed as an integer, or nil when absent.
func (r *Resolver) Int(record map[string]string, key string) (*int, error) {
	raw, err := r.Raw(record, key)
	if err != nil {
		return nil, err
	}
	if r.Absent(raw) {
		return nil, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, r.malformed(key, raw, "integer", err)
	}
	return &value, nil
}

// IntLenient parses an integer but degrades to absent on parse failure
// instead of failing. Survey exports write free text like "approx. 2015"
// into otherwise numeric year columns; those fields are descriptive, so
// dropping them beats aborting the run.
func (r *Resolver) IntLenient(record map[string]string, key string) (*int, error) {
	raw, err := r.Raw(record, key)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(raw)
	if r.Absent(trimmed) {
		return nil, nil
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, nil
	}
	return &value, nil
}

// IntTruncated parses the value as a float and truncates it, or returns
// nil when absent. Head-count columns arrive as "120.0".
func (r *Resolver) IntTruncated(record map[string]string, key string) (*int, error) {
	f, err := r.Float(record, key)
	if err != nil || f == nil {
		return nil, err
	}
	value := int(*f)
	return &value, nil
}

// YearFromDate parses the value with the given time layout and returns
// the year, or nil when absent.
func (r *Resolver) YearFromDate(record map[string]string, key, layout string) (*int, error) {
	raw, err := r.Raw(record, key)
	if err != nil {
		return nil, err
	}
	if r.Absent(raw) {
		return nil, nil
	}
	parsed, err := time.Parse(layout, strings.TrimSpace(raw))
	if err != nil {
		return nil, r.malformed(key, raw, "date", err)
	}
	year := parsed.Year()
	return &year, nil
}

// Strings returns the raw values of a multi-column key in column order.
func (r *Resolver) Strings(record map[string]string, key string) ([]string, error) {
	columns, err := r.Table.Columns(key)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(columns))
	for _, column := range columns {
		value, ok := record[column]
		if !ok {
			return nil, &ConfigurationError{Dataset: r.Table.Dataset, Key: key, Reason: "column " + strconv.Quote(column) + " not present in record"}
		}
		values = append(values, value)
	}
	return values, nil
}

// SumFloat sums the values of a multi-column key. Absent values
// participate as zero; this is the one place absence folds into a
// number, and only because the key's semantics are additive.
func (r *Resolver) SumFloat(record map[string]string, key string) (float64, error) {
	values, err := r.Strings(record, key)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, raw := range values {
		if r.Absent(raw) {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return 0, r.malformed(key, raw, "number", err)
		}
		sum += value
	}
	return sum, nil
}

// Concat joins the non-absent values of a multi-column key with a
// separator, in column order.
func (r *Resolver) Concat(record map[string]string, key, separator string) (string, error) {
	values, err := r.Strings(record, key)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(values))
	for _, raw := range values {
		if r.Absent(raw) {
			continue
		}
		parts = append(parts, strings.TrimSpace(raw))
	}
	return strings.Join(parts, separator), nil
}

// FirstNonEmpty returns the first non-absent value of a multi-column
// key, or nil when all columns are absent.
func (r *Resolver) FirstNonEmpty(record map[string]string, key string) (*string, error) {
	values, err := r.Strings(record, key)
	if err != nil {
		return nil, err
	}
	for _, raw := range values {
		if !r.Absent(raw) {
			trimmed := strings.TrimSpace(raw)
			return &trimmed, nil
		}
	}
	return nil, nil
}

func (r *Resolver) malformed(key, raw, kind string, err error) error {
	column, colErr := r.Table.Column(key)
	if colErr != nil {
		column = ""
	}
	return &MalformedValueError{
		Dataset: r.Table.Dataset,
		Key:     key,
		Column:  column,
		Raw:     raw,
		Kind:    kind,
		Err:     err,
	}
}
