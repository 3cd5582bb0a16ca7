package mapper

import (
	"fmt"
	"reflect"

	"metamap/descriptor"
	"metamap/fault"
	"metamap/metadata"
)

// Map writes the metadata of obj into dst and returns it. A nil dst is
// replaced by a new map. obj must be a struct or a non-nil pointer to one.
//
// Only the fields declared on the type of obj are visited; fields of embedded
// structs are not mapped.
func (m *Mapper) Map(obj any, dst metadata.Map) (metadata.Map, error) {
	v, err := structOf(reflect.ValueOf(obj))
	if err != nil {
		return nil, &fault.MappingError{Message: "cannot map", Err: err}
	}
	if dst == nil {
		dst = metadata.Map{}
	}

	if err := m.mapStruct(v, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

func (m *Mapper) mapStruct(v reflect.Value, dst metadata.Map) error {
	tbl, err := m.table(v.Type())
	if err != nil {
		return err
	}

	for _, f := range tbl.Declared {
		fv, ok := f.Access.Get(v)
		if !ok {
			return fieldError(f, "cannot read field", nil)
		}

		switch f.Kind {
		case descriptor.KindNested:
			err = m.mapNested(f, fv, dst)
		case descriptor.KindCustom:
			err = m.mapCustom(f, fv, dst)
		default:
			err = m.mapPlain(f, fv, dst)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (m *Mapper) mapNested(f *descriptor.Field, fv reflect.Value, dst metadata.Map) error {
	if isNil(fv) {
		return nil
	}

	nv, err := structOf(fv)
	if err != nil {
		return fieldError(f, "nested value is not a struct", err)
	}
	return m.mapStruct(nv, dst)
}

func (m *Mapper) mapCustom(f *descriptor.Field, fv reflect.Value, dst metadata.Map) error {
	h, err := m.handler(f)
	if err != nil {
		return err
	}

	if err := h.ToMap(interfaceOf(fv), dst); err != nil {
		return fieldError(f, "handler failed", err)
	}
	return nil
}

func (m *Mapper) mapPlain(f *descriptor.Field, fv reflect.Value, dst metadata.Map) error {
	if f.Key == "" {
		return fieldError(f, "cannot map", ErrNoKey)
	}

	if isNil(fv) {
		switch {
		case f.Default != nil:
			dst.Set(f.Key, *f.Default)
		case f.Mandatory:
			return fieldError(f, "mandatory field is nil", ErrMissing)
		default:
			dst.SetNull(f.Key)
		}
		return nil
	}

	c, err := m.converters.ResolveConfigured(f.Type, f.Convert)
	if err != nil {
		return fieldError(f, "no converter", err)
	}

	s, err := c.ToString(fv.Interface())
	if err != nil {
		return fieldError(f, fmt.Sprintf("cannot convert %s to string", f.Type), err)
	}

	dst.Set(f.Key, s)
	return nil
}

// structOf dereferences pointers and interfaces down to a struct value.
func structOf(v reflect.Value) (reflect.Value, error) {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, ErrNilObject
		}
		v = v.Elem()
	}

	switch {
	case !v.IsValid():
		return reflect.Value{}, ErrNilObject
	case v.Kind() != reflect.Struct:
		return reflect.Value{}, fmt.Errorf("%w: got %s", descriptor.ErrNotStruct, v.Type())
	}
	return v, nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// interfaceOf returns the value held by v, with nil references as untyped nil.
func interfaceOf(v reflect.Value) any {
	if isNil(v) {
		return nil
	}
	return v.Interface()
}
