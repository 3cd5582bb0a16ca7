package descriptor

import (
	"fmt"
	"reflect"

	"metamap/convert"
	"metamap/internal/common"
)

// Nested describes a field mapped recursively.
type Nested struct {
	Mandatory bool
	// Impl names the implementation type in the type catalogue; empty means
	// the field's own type.
	Impl string
}

// Field is the immutable descriptor of one eligible struct field.
type Field struct {
	Name      string
	Type      reflect.Type
	Declaring reflect.Type
	Kind      Kind

	Key              string
	Mandatory        bool
	Default          *string
	BlankDefault     bool
	DefaultMeta      *string
	BlankDefaultMeta bool
	Nested           *Nested
	Handler          string
	Convert          convert.Config

	Access Accessor
}

// DeclaringName returns the short name of the declaring type, for messages.
func (f *Field) DeclaringName() string {
	return common.TypeName(f.Declaring)
}

// InjectedMeta returns the value to inject into the working metadata before
// lookup, if any.
func (f *Field) InjectedMeta() (string, bool) {
	switch {
	case f.DefaultMeta != nil:
		return *f.DefaultMeta, true
	case f.BlankDefaultMeta:
		return "", true
	default:
		return "", false
	}
}

// Accessor reads and writes one field of a root struct value, following the
// embedding path from the root.
type Accessor struct {
	index []int
}

// Get returns the field value. ok is false when an embedded pointer on the
// path is nil.
func (a Accessor) Get(root reflect.Value) (v reflect.Value, ok bool) {
	v, err := root.FieldByIndexErr(a.index)
	if err != nil {
		return reflect.Value{}, false
	}
	return v, true
}

// Ref returns the settable field value, allocating nil embedded pointers on
// the path. root must be addressable.
func (a Accessor) Ref(root reflect.Value) (reflect.Value, error) {
	v := root
	for i, x := range a.index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("cannot allocate embedded %s", v.Type())
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}

	if !v.CanSet() {
		return reflect.Value{}, fmt.Errorf("field of type %s is not settable", v.Type())
	}
	return v, nil
}

// Set assigns value to the field, allocating embedded pointers as needed.
func (a Accessor) Set(root, value reflect.Value) error {
	v, err := a.Ref(root)
	if err != nil {
		return err
	}
	v.Set(value)
	return nil
}
