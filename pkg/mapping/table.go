// Package mapping implements the per-dataset field resolution layer: a
// load-once table from logical dotted keys to source columns or enum
// synonym lists, and a resolver that fetches and normalizes raw record
// values against that table.
package mapping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is one table definition: a single source column, an ordered
// list of source columns, or a synonym list for an enum variant.
// Which interpretation applies is decided by the requesting component;
// the JSON shapes are identical for column lists and synonym lists.
type Entry struct {
	single string
	list   []string
	isList bool
	isNull bool
}

// UnmarshalJSON accepts a string, a list of strings, or null.
func (e *Entry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		e.isNull = true
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		e.isList = true
		return json.Unmarshal(trimmed, &e.list)
	}
	return json.Unmarshal(trimmed, &e.single)
}

// Variant is one canonical enum variant and the source synonyms that
// classify into it, in table order.
type Variant struct {
	Name     string
	Synonyms []string
}

// Table is a parsed per-dataset mapping document. Key iteration order
// follows the source document, which matters for single-valued enum
// families where the first matching variant wins.
type Table struct {
	Dataset string

	entries map[string]Entry
	order   []string
}

// Parse reads a mapping document. The top level must be a JSON object;
// document key order is preserved.
func Parse(dataset string, data []byte) (*Table, error) {
	t := &Table{
		Dataset: dataset,
		entries: make(map[string]Entry),
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("mapping config for %q: %w", dataset, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("mapping config for %q: top level must be an object", dataset)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("mapping config for %q: %w", dataset, err)
		}
		key := keyTok.(string)
		var entry Entry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("mapping config for %q: key %q: %w", dataset, key, err)
		}
		if _, dup := t.entries[key]; dup {
			return nil, &ConfigurationError{Dataset: dataset, Key: key, Reason: "duplicate key"}
		}
		t.entries[key] = entry
		t.order = append(t.order, key)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("mapping config for %q: %w", dataset, err)
	}
	return t, nil
}

// Has reports whether the table defines key with a non-null value.
func (t *Table) Has(key string) bool {
	e, ok := t.entries[key]
	return ok && !e.isNull
}

// Column resolves a logical key to its single source column. A missing
// or null key, or a list-shaped entry, is a configuration error.
func (t *Table) Column(key string) (string, error) {
	e, ok := t.entries[key]
	if !ok || e.isNull {
		return "", &ConfigurationError{Dataset: t.Dataset, Key: key, Reason: "no entry"}
	}
	if e.isList {
		return "", &ConfigurationError{Dataset: t.Dataset, Key: key, Reason: "expected a single column, found a list"}
	}
	return e.single, nil
}

// Columns resolves a logical key to its ordered source column list. A
// single-column entry resolves to a one-element list.
func (t *Table) Columns(key string) ([]string, error) {
	e, ok := t.entries[key]
	if !ok || e.isNull {
		return nil, &ConfigurationError{Dataset: t.Dataset, Key: key, Reason: "no entry"}
	}
	if e.isList {
		return e.list, nil
	}
	return []string{e.single}, nil
}

// Prefixed returns every non-null key starting with prefix, in
// document order.
func (t *Table) Prefixed(prefix string) []string {
	var keys []string
	for _, key := range t.order {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if e := t.entries[key]; e.isNull {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

// Family returns the variants of an enum family, in document order.
// Family keys have the shape "<family>.<variant>"; null entries are
// variants the dataset does not use and are skipped.
func (t *Table) Family(family string) []Variant {
	prefix := family + "."
	var variants []Variant
	for _, key := range t.order {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		e := t.entries[key]
		if e.isNull || !e.isList || len(e.list) == 0 {
			continue
		}
		variants = append(variants, Variant{
			Name:     strings.TrimPrefix(key, prefix),
			Synonyms: e.list,
		})
	}
	return variants
}
