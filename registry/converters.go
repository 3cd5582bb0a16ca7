package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"metamap/convert"
	"metamap/fault"
	"metamap/internal/common"
	"metamap/primitive"
)

// Converters resolves types to converter instances.
//
// The first resolution of a type fills two caches, type → implementation name
// and implementation name → instance, so types sharing an implementation share
// one instance. Concurrent first resolutions of the same type may instantiate
// redundantly; the first stored instance wins.
//
// Resolve returns shared unconfigured instances which must not be configured
// by callers. ResolveConfigured returns a separate instance per (type,
// configuration), configured once when it is created.
type Converters struct {
	discovery Discovery
	impls     *Catalogue
	logger    *slog.Logger

	typeImpl   sync.Map // reflect.Type -> string
	instances  sync.Map // string -> convert.Converter
	configured sync.Map // configuredKey -> convert.Converter
}

type configuredKey struct {
	typ reflect.Type
	cfg string
}

// Option configures a Converters registry.
type Option func(*Converters)

// WithLogger sets the logger used for debug records. slog.Default() is used
// when unset.
func WithLogger(l *slog.Logger) Option {
	return func(r *Converters) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a registry backed by discovery and the implementation
// catalogue impls.
func New(discovery Discovery, impls *Catalogue, opts ...Option) *Converters {
	r := &Converters{
		discovery: discovery,
		impls:     impls,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BuiltinImplementations returns a catalogue holding the built-in converters.
func BuiltinImplementations() *Catalogue {
	c := NewCatalogue("converter implementation")
	for name, ctor := range convert.Builtins() {
		c.MustRegister(name, ctor)
	}
	return c
}

// NewDefault returns a fresh registry over the built-in descriptors and
// implementations.
func NewDefault(opts ...Option) *Converters {
	return New(DefaultDiscovery(), BuiltinImplementations(), opts...)
}

// Discovery returns the discovery collaborator of the registry.
func (r *Converters) Discovery() Discovery { return r.discovery }

// Implementations returns the implementation catalogue of the registry.
func (r *Converters) Implementations() *Catalogue { return r.impls }

// Resolve returns the shared converter for t. A pointer type resolves to the
// converter of its element type.
func (r *Converters) Resolve(t reflect.Type) (convert.Converter, error) {
	base, impl, err := r.implFor(t)
	if err != nil {
		return nil, err
	}

	if c, ok := r.instances.Load(impl); ok {
		return c.(convert.Converter), nil
	}

	c, err := r.instantiate(base, impl)
	if err != nil {
		return nil, err
	}

	actual, _ := r.instances.LoadOrStore(impl, c)
	return actual.(convert.Converter), nil
}

// ResolveConfigured returns a converter for t configured with cfg. A zero
// cfg returns the shared instance.
func (r *Converters) ResolveConfigured(t reflect.Type, cfg convert.Config) (convert.Converter, error) {
	if cfg.IsZero() {
		return r.Resolve(t)
	}

	base, impl, err := r.implFor(t)
	if err != nil {
		return nil, err
	}

	key := configuredKey{typ: base, cfg: cfg.Key()}
	if c, ok := r.configured.Load(key); ok {
		return c.(convert.Converter), nil
	}

	c, err := r.instantiate(base, impl)
	if err != nil {
		return nil, err
	}

	if err := convert.Configure(c, cfg); err != nil {
		return nil, &fault.ConverterInitializationError{
			Type:    common.TypeID(base),
			Impl:    impl,
			Message: "cannot configure converter",
			Err:     err,
		}
	}

	actual, _ := r.configured.LoadOrStore(key, c)
	return actual.(convert.Converter), nil
}

func (r *Converters) implFor(t reflect.Type) (reflect.Type, string, error) {
	if t == nil {
		return nil, "", &fault.ConverterInitializationError{Message: "cannot resolve", Err: ErrNilType}
	}

	base, _ := primitive.Unbox(t)
	if impl, ok := r.typeImpl.Load(base); ok {
		return base, impl.(string), nil
	}

	impl, err := r.discovery.Lookup(base)
	if err != nil {
		msg := "discovery failed"
		switch {
		case errors.Is(err, ErrNotFound):
			msg = "no converter registered"
		case errors.Is(err, ErrMalformed):
			msg = "descriptor names no implementation"
		}
		return nil, "", &fault.ConverterInitializationError{Type: common.TypeID(base), Message: msg, Err: err}
	}

	r.typeImpl.Store(base, impl)
	return base, impl, nil
}

func (r *Converters) instantiate(base reflect.Type, impl string) (convert.Converter, error) {
	inst, err := r.impls.New(impl)
	if err != nil {
		var unknown *fault.UnknownTypeError
		msg := "cannot instantiate implementation"
		if errors.As(err, &unknown) {
			msg = "implementation not found"
		}
		return nil, &fault.ConverterInitializationError{Type: common.TypeID(base), Impl: impl, Message: msg, Err: err}
	}

	c, ok := inst.(convert.Converter)
	if !ok {
		return nil, &fault.ConverterInitializationError{
			Type:    common.TypeID(base),
			Impl:    impl,
			Message: fmt.Sprintf("%T does not implement the converter contract", inst),
			Err:     ErrNotAConverter,
		}
	}

	r.logger.Debug("converter instantiated", "type", common.TypeID(base), "impl", impl)
	return c, nil
}
