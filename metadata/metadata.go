// Package metadata provides the flat, string-keyed map exchanged between the
// mapping engines and the outside world.
package metadata

import (
	"maps"
	"slices"
)

// Map is a metadata map. A nil value is an explicit null entry, which is
// distinct from an absent key.
type Map map[string]*string

// FromStrings builds a Map without null entries.
func FromStrings(in map[string]string) Map {
	m := make(Map, len(in))
	for k, v := range in {
		m.Set(k, v)
	}
	return m
}

// Set stores value under key.
func (m Map) Set(key, value string) {
	m[key] = &value
}

// SetNull stores an explicit null under key.
func (m Map) SetNull(key string) {
	m[key] = nil
}

// Has reports whether key is present, even with a null value.
func (m Map) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Lookup returns the value for key. present is false when the key is absent;
// null is true when the key is present with a null value.
func (m Map) Lookup(key string) (value string, null, present bool) {
	v, ok := m[key]
	switch {
	case !ok:
		return "", false, false
	case v == nil:
		return "", true, true
	default:
		return *v, false, true
	}
}

// Get returns the value for key, or "" when absent or null.
func (m Map) Get(key string) string {
	v, _, _ := m.Lookup(key)
	return v
}

// Keys returns the keys in sorted order. The result is never nil.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Clone returns a shallow copy; value pointers are shared, they are never
// written through.
func (m Map) Clone() Map {
	if m == nil {
		return Map{}
	}
	return maps.Clone(m)
}

// Strings returns the non-null entries as a plain map.
func (m Map) Strings() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}
