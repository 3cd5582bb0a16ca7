package primitive

import "reflect"

// DefaultOf returns the zero value the engines substitute for a primitive
// field when no converted value is available.
//
// Only value-typed booleans, integers, floats and complex numbers (named or
// not) are primitive. Pointers, strings, structs and every other reference-like
// type report ok == false: they have no default and are left null-equivalent.
func DefaultOf(t reflect.Type) (v reflect.Value, ok bool) {
	if !IsPrimitive(t) {
		return reflect.Value{}, false
	}
	return reflect.Zero(t), true
}

// IsPrimitive reports whether t is a value-typed boolean or number.
func IsPrimitive(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// Unbox strips one pointer level, mapping the reference form *T of a type to
// T. boxed reports whether t was a pointer.
func Unbox(t reflect.Type) (base reflect.Type, boxed bool) {
	if t != nil && t.Kind() == reflect.Ptr {
		return t.Elem(), true
	}
	return t, false
}
