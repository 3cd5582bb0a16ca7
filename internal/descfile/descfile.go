// Package descfile reads and writes converter descriptor files: YAML
// documents mapping type identities to converter implementation names.
//
//	version: "1"
//	converters:
//	  - type: int
//	    impl: int
//	  - type: time.Time
//	    impl: time
//
// An entry with an empty impl is kept as is; the registry reports it as a
// malformed descriptor when the type is resolved.
package descfile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the root of a converter descriptor file.
type File struct {
	// Version of the descriptor schema.
	Version string `yaml:"version,omitempty"`

	// Converters lists type → implementation entries. Later entries for the
	// same type win.
	Converters []Entry `yaml:"converters"`
}

// Entry binds a type identity to an implementation name.
type Entry struct {
	// Type is the type identity: "pkgpath.Name" or a builtin name like "int".
	Type string `yaml:"type"`
	// Impl is the implementation name in the converter catalogue.
	Impl string `yaml:"impl"`
}

// LoadFile loads and parses a descriptor file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse descriptor YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in the version and trims entry whitespace.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	for i := range f.Converters {
		e := &f.Converters[i]
		e.Type = strings.TrimSpace(e.Type)
		e.Impl = strings.TrimSpace(e.Impl)
	}
}

// Index returns the entries keyed by type; the last entry for a type wins.
func (f *File) Index() map[string]string {
	idx := make(map[string]string, len(f.Converters))
	for _, e := range f.Converters {
		idx[e.Type] = e.Impl
	}

	return idx
}

// Duplicates returns the types listed more than once, in first-seen order.
func (f *File) Duplicates() []string {
	seen := make(map[string]int, len(f.Converters))

	var dups []string
	for _, e := range f.Converters {
		seen[e.Type]++
		if seen[e.Type] == 2 {
			dups = append(dups, e.Type)
		}
	}

	return dups
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal descriptor: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write descriptor file %s: %w", path, err)
	}

	return nil
}
