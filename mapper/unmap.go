package mapper

import (
	"reflect"

	"metamap/descriptor"
	"metamap/fault"
	"metamap/internal/common"
	"metamap/internal/match"
	"metamap/metadata"
	"metamap/primitive"
)

// Unmap fills the struct target points to from md.
//
// Fields of embedded structs are visited after the declared ones; nil
// embedded pointers are allocated when one of their fields is written. Fields
// without data keep their current value, so Unmap merges into a populated
// target. md is not modified: default metadata is injected into a working
// copy shared by the whole traversal.
func (m *Mapper) Unmap(md metadata.Map, target any) error {
	if md == nil {
		return &fault.MappingError{Message: "cannot unmap", Err: ErrNilMetadata}
	}

	v := reflect.ValueOf(target)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return &fault.MappingError{Message: "cannot unmap", Err: ErrInvalidTarget}
	}

	return m.unmapStruct(md.Clone(), v.Elem())
}

// UnmapNew unmaps md into a new value of t and returns a pointer to it. t may
// be a struct type or a pointer to one.
func (m *Mapper) UnmapNew(md metadata.Map, t reflect.Type) (any, error) {
	base, _ := primitive.Unbox(t)
	if base == nil || base.Kind() != reflect.Struct {
		return nil, &fault.MappingError{Type: common.TypeName(t), Message: "cannot instantiate", Err: ErrInvalidTarget}
	}

	p := reflect.New(base)
	if err := m.Unmap(md, p.Interface()); err != nil {
		return nil, err
	}
	return p.Interface(), nil
}

// UnmapTo unmaps md into a new T.
func UnmapTo[T any](m *Mapper, md metadata.Map) (*T, error) {
	v, err := m.UnmapNew(md, reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return v.(*T), nil
}

func (m *Mapper) unmapStruct(work metadata.Map, v reflect.Value) error {
	tbl, err := m.table(v.Type())
	if err != nil {
		return err
	}

	for _, f := range tbl.All {
		switch f.Kind {
		case descriptor.KindNested:
			err = m.unmapNested(work, v, f)
		case descriptor.KindCustom:
			err = m.unmapCustom(work, v, f)
		default:
			err = m.unmapPlain(work, v, f)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (m *Mapper) unmapPlain(work metadata.Map, root reflect.Value, f *descriptor.Field) error {
	if f.Key == "" {
		return fieldError(f, "cannot unmap", ErrNoKey)
	}
	inject(work, f)

	if raw, null, present := work.Lookup(f.Key); present {
		if null {
			return m.setDefault(root, f)
		}
		return m.convertInto(root, f, raw)
	}

	switch {
	case f.Default != nil:
		return m.convertInto(root, f, *f.Default)
	case f.BlankDefault:
		return m.convertInto(root, f, "")
	case f.Mandatory:
		err := fieldError(f, "no value for mandatory key", ErrMissing)
		err.Keys = work.Keys()
		err.Suggestion, _ = match.Closest(f.Key, err.Keys)
		return err
	}

	return nil
}

func (m *Mapper) unmapCustom(work metadata.Map, root reflect.Value, f *descriptor.Field) error {
	h, err := m.handler(f)
	if err != nil {
		return err
	}
	if f.Key != "" {
		inject(work, f)
	}

	val, ok, err := h.FromMap(work)
	if err != nil {
		return fieldError(f, "handler failed", err)
	}
	if !ok {
		return m.setDefault(root, f)
	}

	return m.set(root, f, reflect.ValueOf(val))
}

func (m *Mapper) unmapNested(work metadata.Map, root reflect.Value, f *descriptor.Field) error {
	ref, err := f.Access.Ref(root)
	if err != nil {
		return fieldError(f, "cannot access field", err)
	}

	err = m.fillNested(work, ref, f)
	switch {
	case err == nil:
		return nil
	case f.Nested.Mandatory:
		return fieldError(f, "cannot unmap mandatory nested object", err)
	default:
		m.logger.Debug("optional nested object skipped",
			"type", f.DeclaringName(), "field", f.Name, "error", err)
		return nil
	}
}

// fillNested unmaps into the object ref holds, or into a new one assigned to
// ref on success. Existing objects are filled through a copy written back only
// on success, so a failure leaves them untouched. A non-nil pointer keeps its
// identity.
func (m *Mapper) fillNested(work metadata.Map, ref reflect.Value, f *descriptor.Field) error {
	if existing, ok := pointee(ref); ok {
		tmp := reflect.New(existing.Type())
		tmp.Elem().Set(existing)
		if err := m.unmapStruct(work, tmp.Elem()); err != nil {
			return err
		}
		existing.Set(tmp.Elem())
		return nil
	}

	var obj reflect.Value
	if ref.Kind() == reflect.Struct {
		obj = reflect.New(ref.Type())
		obj.Elem().Set(ref)
	} else {
		var err error
		if obj, err = m.newNested(f); err != nil {
			return err
		}
	}

	if err := m.unmapStruct(work, obj.Elem()); err != nil {
		return err
	}
	return assign(ref, obj, m.categories)
}

// pointee returns the struct a non-nil pointer (possibly held in an
// interface) points to.
func pointee(ref reflect.Value) (reflect.Value, bool) {
	v := ref
	if v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if v.Kind() == reflect.Ptr && !v.IsNil() && v.Elem().Kind() == reflect.Struct {
		return v.Elem(), true
	}
	return reflect.Value{}, false
}

// newNested returns a pointer to a new instance of the nested type of f.
func (m *Mapper) newNested(f *descriptor.Field) (reflect.Value, error) {
	if f.Nested.Impl == "" {
		base, _ := primitive.Unbox(f.Type)
		return reflect.New(base), nil
	}

	x, err := m.types.New(f.Nested.Impl)
	if err != nil {
		return reflect.Value{}, err
	}

	obj := reflect.ValueOf(x)
	if obj.Kind() != reflect.Ptr || obj.IsNil() || obj.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, &fault.MappingError{
			Field:   f.Name,
			Type:    f.DeclaringName(),
			Message: "implementation " + f.Nested.Impl + " is not a struct pointer",
			Err:     ErrIncompatible,
		}
	}
	return obj, nil
}

func (m *Mapper) convertInto(root reflect.Value, f *descriptor.Field, raw string) error {
	c, err := m.converters.ResolveConfigured(f.Type, f.Convert)
	if err != nil {
		return fieldError(f, "no converter", err)
	}

	val, err := c.FromString(raw)
	if err != nil {
		return fieldError(f, "cannot convert "+quote(raw), err)
	}

	return m.set(root, f, reflect.ValueOf(val))
}

// setDefault applies the default of the field type: the zero value of
// primitives, nil (or the empty value) for everything else.
func (m *Mapper) setDefault(root reflect.Value, f *descriptor.Field) error {
	v, ok := primitive.DefaultOf(f.Type)
	if !ok {
		v = reflect.Zero(f.Type)
	}
	return m.set(root, f, v)
}

func (m *Mapper) set(root reflect.Value, f *descriptor.Field, val reflect.Value) error {
	ref, err := f.Access.Ref(root)
	if err != nil {
		return fieldError(f, "cannot access field", err)
	}
	if err := assign(ref, val, m.categories); err != nil {
		return fieldError(f, "cannot set field", err)
	}
	return nil
}

// inject writes the default metadata of f into work when its key is absent.
func inject(work metadata.Map, f *descriptor.Field) {
	v, ok := f.InjectedMeta()
	if !ok || work.Has(f.Key) {
		return
	}
	work.Set(f.Key, v)
}
