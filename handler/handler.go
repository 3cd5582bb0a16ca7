// Package handler defines custom multi-field handlers.
//
// A handler owns the conversion of one struct field and sees the whole
// metadata map in both directions, so it can read or write any number of
// keys. Handlers must accept nil values.
package handler

import (
	"errors"

	"metamap/metadata"
)

// ErrNotAHandler is returned when a catalogued name builds something that is
// not a Handler.
var ErrNotAHandler = errors.New("value does not implement the handler contract")

// Handler converts one field to and from the metadata map.
type Handler interface {
	// FromMap returns the field value. ok is false when there is no value.
	FromMap(md metadata.Map) (v any, ok bool, err error)
	// ToMap writes zero or more entries for v into md.
	ToMap(v any, md metadata.Map) error
}

// Funcs adapts a pair of functions to Handler. A nil function disables its
// direction.
type Funcs struct {
	From func(md metadata.Map) (any, bool, error)
	To   func(v any, md metadata.Map) error
}

func (f Funcs) FromMap(md metadata.Map) (any, bool, error) {
	if f.From == nil {
		return nil, false, nil
	}
	return f.From(md)
}

func (f Funcs) ToMap(v any, md metadata.Map) error {
	if f.To == nil {
		return nil
	}
	return f.To(v, md)
}

// Of asserts that x built by a catalogue is a Handler.
func Of(x any) (Handler, error) {
	h, ok := x.(Handler)
	if !ok {
		return nil, ErrNotAHandler
	}
	return h, nil
}
