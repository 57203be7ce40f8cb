package model

import (
	"bytes"
	"encoding/json"
)

// OrderedMap is an insertion-ordered string-keyed map. The canonical
// output keys assemblies and products by identifier but must serialize
// them in first-seen order so repeated runs over the same input produce
// byte-identical documents.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrderedMap returns an empty ordered map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Put stores value under key. A first-time key is appended to the
// iteration order; overwriting keeps the original position.
func (m *OrderedMap[V]) Put(key string, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The returned slice is
// shared; callers must not mutate it.
func (m *OrderedMap[V]) Keys() []string {
	return m.keys
}

// Values returns the values in insertion order.
func (m *OrderedMap[V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}

// MarshalJSON writes the map as a JSON object with keys in insertion
// order.
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	if m == nil || len(m.keys) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object. Key order in the source document
// becomes the insertion order.
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	m.keys = nil
	m.values = make(map[string]V)

	dec := json.NewDecoder(bytes.NewReader(data))
	// opening brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		var value V
		if err := dec.Decode(&value); err != nil {
			return err
		}
		m.Put(key, value)
	}
	// closing brace
	_, err := dec.Token()
	return err
}

// AssemblyMap and ProductMap are the ordered containers used by the
// entity tree.
type (
	AssemblyMap = OrderedMap[*Assembly]
	ProductMap  = OrderedMap[*Product]
)

// NewAssemblyMap returns an empty assembly container.
func NewAssemblyMap() *AssemblyMap { return NewOrderedMap[*Assembly]() }

// NewProductMap returns an empty product container.
func NewProductMap() *ProductMap { return NewOrderedMap[*Product]() }
