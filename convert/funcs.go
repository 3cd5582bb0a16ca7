package convert

import "reflect"

// Funcs adapts a parse/format function pair into a Converter for T.
type Funcs[T any] struct {
	Parse  func(string) (T, error)
	Format func(T) string
}

func (Funcs[T]) Type() reflect.Type { return reflect.TypeFor[T]() }

func (f Funcs[T]) FromString(s string) (any, error) {
	v, err := f.Parse(s)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (f Funcs[T]) ToString(v any) (string, error) {
	switch t := v.(type) {
	case T:
		return f.Format(t), nil
	case *T:
		return f.Format(*t), nil
	default:
		return "", unsupported(f, v)
	}
}
