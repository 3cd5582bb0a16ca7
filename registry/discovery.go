package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"

	"metamap/internal/common"
	"metamap/internal/descfile"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("metamap(registry): nil reflect.Type provided")
	// ErrNotFound signals that discovery knows no implementation for a type.
	ErrNotFound = errors.New("metamap(registry): no converter descriptor for type")
	// ErrMalformed signals that the descriptor for a type exists but is empty.
	ErrMalformed = errors.New("metamap(registry): malformed converter descriptor")
	// ErrNotAConverter signals an implementation that is not a convert.Converter.
	ErrNotAConverter = errors.New("metamap(registry): implementation is not a converter")
)

//go:embed builtin.yaml
var builtinDescriptor []byte

// Discovery resolves a type to the name of the converter implementation to
// instantiate. Lookup is exact: a type never inherits the descriptor of
// another type. Lookup signals absence with ErrNotFound and an empty
// descriptor with ErrMalformed.
type Discovery interface {
	Lookup(t reflect.Type) (impl string, err error)
	// Entries returns the known descriptors sorted by type.
	Entries() []Entry
}

// Entry is one type → implementation descriptor.
type Entry struct {
	Type string
	Impl string
}

// Static is an in-memory Discovery filled by registration calls or from a
// descriptor file.
type Static struct {
	mu    sync.RWMutex
	m     map[string]string
	dups  []string
	label string
}

var _ Discovery = (*Static)(nil)

// NewStatic returns an empty Static discovery.
func NewStatic() *Static {
	return &Static{m: make(map[string]string)}
}

// FromFile builds a Static discovery from a parsed descriptor file.
func FromFile(f *descfile.File) *Static {
	s := NewStatic()
	s.m = f.Index()
	s.dups = f.Duplicates()
	return s
}

// LoadDiscovery reads a descriptor file from path.
func LoadDiscovery(path string) (*Static, error) {
	f, err := descfile.LoadFile(path)
	if err != nil {
		return nil, err
	}
	s := FromFile(f)
	s.label = path
	return s, nil
}

// DefaultDiscovery returns the descriptors of the built-in converters.
func DefaultDiscovery() *Static {
	f, err := descfile.Parse(builtinDescriptor)
	if err != nil {
		panic(fmt.Sprintf("metamap(registry): embedded descriptor: %v", err))
	}
	s := FromFile(f)
	s.label = "builtin"
	return s
}

// Register binds t to impl. A later registration for the same type replaces
// the earlier one.
func (s *Static) Register(t reflect.Type, impl string) error {
	if t == nil {
		return ErrNilType
	}
	s.RegisterID(common.TypeID(t), impl)
	return nil
}

// RegisterID binds a type identity to impl.
func (s *Static) RegisterID(typeID, impl string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[typeID] = impl
}

func (s *Static) Lookup(t reflect.Type) (string, error) {
	if t == nil {
		return "", ErrNilType
	}

	s.mu.RLock()
	impl, ok := s.m[common.TypeID(t)]
	s.mu.RUnlock()

	switch {
	case !ok:
		return "", ErrNotFound
	case impl == "":
		return "", ErrMalformed
	default:
		return impl, nil
	}
}

func (s *Static) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.m))
	for _, typ := range slices.Sorted(maps.Keys(s.m)) {
		entries = append(entries, Entry{Type: typ, Impl: s.m[typ]})
	}
	return entries
}

// Duplicates returns the types the source file listed more than once.
func (s *Static) Duplicates() []string {
	return s.dups
}

// String names the source of the descriptors.
func (s *Static) String() string {
	if s.label == "" {
		return "static"
	}
	return s.label
}
