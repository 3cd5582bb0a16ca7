package primitive_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"metamap/primitive"
)

func TestDefaultOf(t *testing.T) {
	type Status int

	tests := []struct {
		name string
		typ  reflect.Type
		want any
		ok   bool
	}{
		{"bool", reflect.TypeFor[bool](), false, true},
		{"int", reflect.TypeFor[int](), 0, true},
		{"int64", reflect.TypeFor[int64](), int64(0), true},
		{"rune", reflect.TypeFor[rune](), rune(0), true},
		{"byte", reflect.TypeFor[byte](), byte(0), true},
		{"float64", reflect.TypeFor[float64](), float64(0), true},
		{"named int", reflect.TypeFor[Status](), Status(0), true},
		{"boxed int", reflect.TypeFor[*int](), nil, false},
		{"string", reflect.TypeFor[string](), nil, false},
		{"time", reflect.TypeFor[time.Time](), nil, false},
		{"slice", reflect.TypeFor[[]int](), nil, false},
		{"nil", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := primitive.DefaultOf(tt.typ)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, v.Interface())
			} else {
				assert.False(t, v.IsValid())
			}
		})
	}
}

func TestUnbox(t *testing.T) {
	base, boxed := primitive.Unbox(reflect.TypeFor[*int]())
	assert.True(t, boxed)
	assert.Equal(t, reflect.TypeFor[int](), base)

	base, boxed = primitive.Unbox(reflect.TypeFor[string]())
	assert.False(t, boxed)
	assert.Equal(t, reflect.TypeFor[string](), base)
}

func TestKindEnum_Bits(t *testing.T) {
	assert.Equal(t, 8, primitive.KindInt8.Bits())
	assert.Equal(t, 32, primitive.KindUint32.Bits())
	assert.Equal(t, 64, primitive.KindFloat64.Bits())
	assert.Panics(t, func() { primitive.KindString.Bits() })
	assert.True(t, primitive.KindUint16.IsUnsigned())
	assert.True(t, primitive.KindInt.IsSigned())
	assert.False(t, primitive.KindBigInt.IsNumber())
}
