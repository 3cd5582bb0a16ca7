// Package mapper implements the mapping engine (struct to metadata map) and
// the unmapping engine (metadata map to struct).
//
// Both engines are driven by the descriptor tables of the types involved and
// share one converter registry. A Mapper holds no per-call state and is safe
// for concurrent use once constructed.
package mapper

import (
	"errors"
	"log/slog"
	"reflect"
	"sync"

	"metamap/descriptor"
	"metamap/fault"
	"metamap/handler"
	"metamap/internal/common"
	"metamap/primitive"
	"metamap/registry"
)

var (
	ErrNilObject     = errors.New("object to map is nil")
	ErrNilMetadata   = errors.New("metadata map is nil")
	ErrInvalidTarget = errors.New("target must be a non-nil pointer to a struct")
	ErrNoKey         = errors.New("field has no key nor handler")
	ErrMissing       = errors.New("mandatory value missing")
	ErrIncompatible  = errors.New("converted value does not fit the field")
)

// Mapper maps structs to metadata maps and back.
type Mapper struct {
	converters *registry.Converters
	handlers   *registry.Catalogue
	types      *registry.Catalogue
	parser     descriptor.Parser
	logger     *slog.Logger
	categories primitive.CategoryEnum

	handlerCache sync.Map // string -> handler.Handler
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithConverters sets the converter registry. A registry over the built-in
// converters is used when unset.
func WithConverters(c *registry.Converters) Option {
	return func(m *Mapper) { m.converters = c }
}

// WithHandlers sets the catalogue custom handlers are looked up in.
func WithHandlers(c *registry.Catalogue) Option {
	return func(m *Mapper) { m.handlers = c }
}

// WithTypes sets the catalogue nested implementation types are looked up in.
func WithTypes(c *registry.Catalogue) Option {
	return func(m *Mapper) { m.types = c }
}

// WithTagName sets the struct tag key holding field directives.
func WithTagName(name string) Option {
	return func(m *Mapper) { m.parser.TagName = name }
}

// WithLogger sets the logger for debug records.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mapper) { m.logger = l }
}

// WithLossyNumbers lets the unmapping engine narrow numbers returned by
// converters and handlers (float64 into an int field, int64 into int8...)
// with Go conversion semantics. Such values are rejected by default.
func WithLossyNumbers() Option {
	return func(m *Mapper) { m.categories |= primitive.CategoryUnsafeNumber }
}

// New returns a Mapper configured by opts.
func New(opts ...Option) *Mapper {
	m := &Mapper{categories: defaultCategories}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.parser.Logger = m.logger
	if m.converters == nil {
		m.converters = registry.NewDefault(registry.WithLogger(m.logger))
	}
	if m.handlers == nil {
		m.handlers = registry.NewCatalogue("handler")
	}
	if m.types == nil {
		m.types = registry.NewCatalogue("nested type")
	}

	return m
}

// Default returns a process-wide Mapper over the built-in converters, with
// empty handler and type catalogues.
var Default = sync.OnceValue(func() *Mapper { return New() })

// Converters returns the registry used by m.
func (m *Mapper) Converters() *registry.Converters { return m.converters }

func (m *Mapper) table(t reflect.Type) (*descriptor.Table, error) {
	tbl, err := m.parser.Table(t)
	if err != nil {
		return nil, &fault.MappingError{
			Type:    common.TypeName(t),
			Message: "invalid field directives",
			Err:     err,
		}
	}
	return tbl, nil
}

func (m *Mapper) handler(f *descriptor.Field) (handler.Handler, error) {
	if h, ok := m.handlerCache.Load(f.Handler); ok {
		return h.(handler.Handler), nil
	}

	x, err := m.handlers.New(f.Handler)
	if err != nil {
		return nil, fieldError(f, "cannot build handler", err)
	}
	h, err := handler.Of(x)
	if err != nil {
		return nil, fieldError(f, "handler "+f.Handler, err)
	}

	actual, _ := m.handlerCache.LoadOrStore(f.Handler, h)
	return actual.(handler.Handler), nil
}

func fieldError(f *descriptor.Field, msg string, err error) *fault.MappingError {
	return &fault.MappingError{
		Field:   f.Name,
		Type:    f.DeclaringName(),
		Key:     f.Key,
		Message: msg,
		Err:     err,
	}
}
