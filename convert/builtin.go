package convert

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"metamap/primitive"
)

// Constructor builds a fresh converter instance. It returns any so that
// catalogues can hold implementations that turn out not to be converters.
type Constructor func() (any, error)

// Builtins returns the constructors of the built-in converters keyed by
// implementation name.
func Builtins() map[string]Constructor {
	return map[string]Constructor{
		"string":   func() (any, error) { return &String{}, nil },
		"bool":     func() (any, error) { return NewBool(), nil },
		"int":      signed[int],
		"int8":     signed[int8],
		"int16":    signed[int16],
		"int32":    signed[int32],
		"int64":    signed[int64],
		"uint":     unsigned[uint],
		"uint8":    unsigned[uint8],
		"uint16":   unsigned[uint16],
		"uint32":   unsigned[uint32],
		"uint64":   unsigned[uint64],
		"float32":  float[float32],
		"float64":  float[float64],
		"bigint":   func() (any, error) { return &BigInt{}, nil },
		"time":     func() (any, error) { return NewTime(), nil },
		"duration": func() (any, error) { return &Duration{}, nil },
	}
}

func signed[T int | int8 | int16 | int32 | int64]() (any, error) {
	c, err := NewInteger(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return c, nil
}

func unsigned[T uint | uint8 | uint16 | uint32 | uint64]() (any, error) {
	c, err := NewInteger(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return c, nil
}

func float[T float32 | float64]() (any, error) {
	c, err := NewFloat(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return c, nil
}

// String is the identity converter.
type String struct{}

func (*String) Type() reflect.Type { return reflect.TypeFor[string]() }

func (*String) FromString(s string) (any, error) { return s, nil }

func (c *String) ToString(v any) (string, error) {
	rv := indirect(v)
	if rv.Kind() != reflect.String {
		return "", unsupported(c, v)
	}
	return rv.String(), nil
}

// Bool converts booleans using configurable literal lists.
type Bool struct {
	trueLiterals  []string
	falseLiterals []string
}

// NewBool returns a Bool accepting "true" and "false".
func NewBool() *Bool {
	return &Bool{trueLiterals: []string{"true"}, falseLiterals: []string{"false"}}
}

func (*Bool) Type() reflect.Type { return reflect.TypeFor[bool]() }

func (c *Bool) SetTrueFalseLiterals(trueLiterals, falseLiterals []string) error {
	if len(trueLiterals) == 0 || len(falseLiterals) == 0 {
		return ErrEmptyLiteralList
	}
	c.trueLiterals = append([]string(nil), trueLiterals...)
	c.falseLiterals = append([]string(nil), falseLiterals...)
	return nil
}

func (c *Bool) FromString(s string) (any, error) {
	for _, lit := range c.trueLiterals {
		if strings.EqualFold(lit, s) {
			return true, nil
		}
	}
	for _, lit := range c.falseLiterals {
		if strings.EqualFold(lit, s) {
			return false, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (true: %v, false: %v)", ErrInvalidLiteral, s, c.trueLiterals, c.falseLiterals)
}

func (c *Bool) ToString(v any) (string, error) {
	rv := indirect(v)
	if rv.Kind() != reflect.Bool {
		return "", unsupported(c, v)
	}
	if rv.Bool() {
		return c.trueLiterals[0], nil
	}
	return c.falseLiterals[0], nil
}

// Integer converts signed and unsigned integers of one concrete type.
type Integer struct {
	typ  reflect.Type
	kind primitive.KindEnum
}

// NewInteger returns an integer converter for t.
func NewInteger(t reflect.Type) (*Integer, error) {
	kind := primitive.FromReflectType(t)
	if !kind.IsInteger() {
		return nil, fmt.Errorf("%w: %s is not an integer type", ErrUnsupportedValue, t)
	}
	return &Integer{typ: t, kind: kind}, nil
}

func (c *Integer) Type() reflect.Type { return c.typ }

func (c *Integer) FromString(s string) (any, error) {
	if c.kind.IsSigned() {
		n, err := strconv.ParseInt(s, 10, c.kind.Bits())
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(n).Convert(c.typ).Interface(), nil
	}

	n, err := strconv.ParseUint(s, 10, c.kind.Bits())
	if err != nil {
		return nil, err
	}
	return reflect.ValueOf(n).Convert(c.typ).Interface(), nil
}

func (c *Integer) ToString(v any) (string, error) {
	rv := indirect(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	default:
		return "", unsupported(c, v)
	}
}

// Float converts float32 and float64 values.
type Float struct {
	typ  reflect.Type
	bits int
}

// NewFloat returns a float converter for t.
func NewFloat(t reflect.Type) (*Float, error) {
	kind := primitive.FromReflectType(t)
	if kind != primitive.KindFloat32 && kind != primitive.KindFloat64 {
		return nil, fmt.Errorf("%w: %s is not a float type", ErrUnsupportedValue, t)
	}
	return &Float{typ: t, bits: kind.Bits()}, nil
}

func (c *Float) Type() reflect.Type { return c.typ }

func (c *Float) FromString(s string) (any, error) {
	f, err := strconv.ParseFloat(s, c.bits)
	if err != nil {
		return nil, err
	}
	return reflect.ValueOf(f).Convert(c.typ).Interface(), nil
}

func (c *Float) ToString(v any) (string, error) {
	rv := indirect(v)
	if rv.Kind() != reflect.Float32 && rv.Kind() != reflect.Float64 {
		return "", unsupported(c, v)
	}
	return strconv.FormatFloat(rv.Float(), 'f', -1, c.bits), nil
}

// BigInt converts arbitrary precision integers. FromString yields *big.Int.
type BigInt struct{}

func (*BigInt) Type() reflect.Type { return reflect.TypeFor[big.Int]() }

func (*BigInt) FromString(s string) (any, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid big integer %q", s)
	}
	return n, nil
}

func (c *BigInt) ToString(v any) (string, error) {
	switch n := v.(type) {
	case *big.Int:
		return n.String(), nil
	case big.Int:
		return n.String(), nil
	default:
		return "", unsupported(c, v)
	}
}

// Time converts time.Time using a Go layout, RFC 3339 with nanoseconds by
// default.
type Time struct {
	layout string
}

// NewTime returns a Time using time.RFC3339Nano.
func NewTime() *Time {
	return &Time{layout: time.RFC3339Nano}
}

func (*Time) Type() reflect.Type { return reflect.TypeFor[time.Time]() }

func (c *Time) SetFormat(layout string) error {
	if layout == "" {
		return fmt.Errorf("%w: empty time layout", ErrInvalidFormat)
	}
	c.layout = layout
	return nil
}

func (c *Time) FromString(s string) (any, error) {
	return time.Parse(c.layout, s)
}

func (c *Time) ToString(v any) (string, error) {
	t, ok := indirect(v).Interface().(time.Time)
	if !ok {
		return "", unsupported(c, v)
	}
	return t.Format(c.layout), nil
}

var durationUnits = map[string]time.Duration{
	"ns": time.Nanosecond,
	"us": time.Microsecond,
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
}

// Duration converts time.Duration. Without a format it uses the Go duration
// syntax ("1h30m"); with a unit format ("ms", "s", ...) it uses an integer
// count of that unit.
type Duration struct {
	unit time.Duration
	name string
}

func (*Duration) Type() reflect.Type { return reflect.TypeFor[time.Duration]() }

func (c *Duration) SetFormat(unit string) error {
	d, ok := durationUnits[unit]
	if !ok {
		return fmt.Errorf("%w: unknown duration unit %q", ErrInvalidFormat, unit)
	}
	c.unit, c.name = d, unit
	return nil
}

func (c *Duration) FromString(s string) (any, error) {
	if c.unit == 0 {
		return time.ParseDuration(s)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return time.Duration(n) * c.unit, nil
}

func (c *Duration) ToString(v any) (string, error) {
	rv := indirect(v)
	if rv.Type() != reflect.TypeFor[time.Duration]() {
		return "", unsupported(c, v)
	}
	d := time.Duration(rv.Int())
	if c.unit == 0 {
		return d.String(), nil
	}
	return strconv.FormatInt(int64(d/c.unit), 10), nil
}
