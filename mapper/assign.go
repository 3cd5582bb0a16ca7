package mapper

import (
	"fmt"
	"reflect"
	"strconv"

	"metamap/primitive"
)

// assign stores val into the settable ref, adapting between T, *T and types
// convertible under categories. An invalid val stores the zero value.
func assign(ref, val reflect.Value, categories primitive.CategoryEnum) error {
	if !val.IsValid() {
		ref.Set(reflect.Zero(ref.Type()))
		return nil
	}

	out, err := coerce(val, ref.Type(), categories)
	if err != nil {
		return err
	}
	ref.Set(out)
	return nil
}

func coerce(val reflect.Value, t reflect.Type, categories primitive.CategoryEnum) (reflect.Value, error) {
	switch {
	case val.Type().AssignableTo(t):
		return val, nil
	case val.Kind() == reflect.Interface && !val.IsNil():
		return coerce(val.Elem(), t, categories)
	case val.Kind() == reflect.Ptr && !val.IsNil():
		return coerce(val.Elem(), t, categories)
	case t.Kind() == reflect.Ptr:
		elem, err := coerce(val, t.Elem(), categories)
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(elem)
		return p, nil
	case primitive.Convertible(val.Type(), t, categories):
		return val.Convert(t), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s into %s", ErrIncompatible, val.Type(), t)
	}
}

// defaultCategories are the conversions applied to converter and handler
// results: lossless number widening and named basic types.
const defaultCategories = primitive.CategorySafeNumber | primitive.CategoryNamed

func quote(s string) string { return strconv.Quote(s) }
