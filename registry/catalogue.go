package registry

import (
	"errors"
	"maps"
	"reflect"
	"slices"
	"sync"

	"metamap/fault"
)

var (
	// ErrEmptyName is returned when an empty name is registered.
	ErrEmptyName = errors.New("metamap(registry): empty name provided")
	// ErrNilConstructor is returned when a nil constructor is registered.
	ErrNilConstructor = errors.New("metamap(registry): nil constructor provided")
	// ErrConflictingRegistration indicates an attempt to register a name twice.
	ErrConflictingRegistration = errors.New("metamap(registry): conflicting registration")
)

// Constructor builds a fresh instance of a catalogued implementation.
type Constructor = func() (any, error)

// Catalogue maps string identifiers to constructors. It replaces dynamic
// loading of implementations by name: only what was registered can be built.
//
// The same structure serves converter implementations, nested implementation
// types and custom handlers; kind names the catalogue in errors.
type Catalogue struct {
	kind  string
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewCatalogue returns an empty catalogue.
func NewCatalogue(kind string) *Catalogue {
	return &Catalogue{kind: kind, ctors: make(map[string]Constructor)}
}

// Register associates name with ctor. Names can be registered only once.
func (c *Catalogue) Register(name string, ctor Constructor) error {
	if name == "" {
		return ErrEmptyName
	}
	if ctor == nil {
		return ErrNilConstructor
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.ctors[name]; ok {
		return ErrConflictingRegistration
	}
	c.ctors[name] = ctor
	return nil
}

// MustRegister is Register that panics on error, for init-time wiring.
func (c *Catalogue) MustRegister(name string, ctor Constructor) {
	if err := c.Register(name, ctor); err != nil {
		panic(err.Error() + ": " + name)
	}
}

// RegisterType registers name as a constructor of *t built with reflect.New.
func (c *Catalogue) RegisterType(name string, t reflect.Type) error {
	if t == nil {
		return ErrNilType
	}
	return c.Register(name, func() (any, error) {
		return reflect.New(t).Interface(), nil
	})
}

// RegisterValue registers name as a constructor returning v itself, for
// stateless shared instances such as handlers.
func (c *Catalogue) RegisterValue(name string, v any) error {
	return c.Register(name, func() (any, error) { return v, nil })
}

// New builds a fresh instance of name.
func (c *Catalogue) New(name string) (any, error) {
	c.mu.RLock()
	ctor, ok := c.ctors[name]
	c.mu.RUnlock()

	if !ok {
		return nil, &fault.UnknownTypeError{Catalogue: c.kind, Name: name}
	}
	return ctor()
}

// Has reports whether name is registered.
func (c *Catalogue) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.ctors[name]
	return ok
}

// Names returns the registered names in sorted order.
func (c *Catalogue) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.ctors))
}
