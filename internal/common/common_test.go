package common

import (
	"math/big"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypeNames(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		id   string
		name string
	}{
		{reflect.TypeFor[int](), "int", "int"},
		{reflect.TypeFor[*int](), "*int", "*int"},
		{reflect.TypeFor[time.Time](), "time.Time", "time.Time"},
		{reflect.TypeFor[big.Int](), "math/big.Int", "big.Int"},
		{reflect.TypeFor[[]string](), "[]string", "[]string"},
		{nil, "", "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, TypeID(tt.typ))
			assert.Equal(t, tt.name, TypeName(tt.typ))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Equal(t, []string{"OUI", "O"}, SplitList("OUI| O |"))
}

func TestFirst(t *testing.T) {
	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = First([]int(nil))
	assert.False(t, ok)
}
