package metadata

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// ErrFrozen is returned by Set once the metadata has been frozen.
var ErrFrozen = errors.New("metadata is frozen")

// Metadata is an insertion-ordered string map.
//
// A repeated key keeps the position of its first occurrence and the value of
// its last. After Freeze the map is read-only and safe for concurrent readers.
type Metadata struct {
	keys   []string
	values map[string]string
	frozen bool
}

// New returns an empty Metadata.
func New() *Metadata {
	return &Metadata{values: make(map[string]string)}
}

// FromMap builds Metadata from a plain map, ordering keys lexically.
func FromMap(src map[string]string) *Metadata {
	m := New()
	for _, k := range slices.Sorted(maps.Keys(src)) {
		_ = m.Set(k, src[k])
	}
	return m
}

// Set stores value under key.
func (m *Metadata) Set(key, value string) error {
	if m.frozen {
		return ErrFrozen
	}
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return nil
}

// Get returns the value for key and whether it was present.
func (m *Metadata) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Metadata) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (m *Metadata) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Len returns the number of keys.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Map returns a copy of the key/value pairs.
func (m *Metadata) Map() map[string]string {
	out := make(map[string]string, m.Len())
	if m != nil {
		maps.Copy(out, m.values)
	}
	return out
}

// Clone returns an unfrozen deep copy.
func (m *Metadata) Clone() *Metadata {
	out := New()
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		_ = out.Set(k, m.values[k])
	}
	return out
}

// Freeze makes the metadata read-only.
func (m *Metadata) Freeze() { m.frozen = true }

// Frozen reports whether Freeze has been called.
func (m *Metadata) Frozen() bool { return m != nil && m.frozen }

// FieldOrDefault returns the value stored under key, or def when the key is
// absent.
func FieldOrDefault(m *Metadata, key, def string) string {
	if v, ok := m.Get(key); ok {
		return v
	}
	return def
}

// Require returns the value for key, failing with a MissingFieldError when the
// key is absent or blank.
func Require(m *Metadata, key string) (string, error) {
	v, ok := m.Get(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", &MissingFieldError{Field: key}
	}
	return v, nil
}
