package convert_test

import (
	"math/big"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metamap/convert"
)

func newBuiltin(t *testing.T, name string) convert.Converter {
	t.Helper()

	ctor, ok := convert.Builtins()[name]
	require.True(t, ok, "builtin %q", name)

	inst, err := ctor()
	require.NoError(t, err)

	c, ok := inst.(convert.Converter)
	require.True(t, ok)

	return c
}

func TestBuiltins_RoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		impl  string
		value any
		text  string
	}{
		{"string", "hello", "hello"},
		{"bool", true, "true"},
		{"bool", false, "false"},
		{"int", 42, "42"},
		{"int8", int8(-8), "-8"},
		{"int16", int16(300), "300"},
		{"int32", int32(-70000), "-70000"},
		{"int64", int64(1) << 40, "1099511627776"},
		{"uint", uint(7), "7"},
		{"uint8", uint8(255), "255"},
		{"uint16", uint16(65535), "65535"},
		{"uint32", uint32(4000000000), "4000000000"},
		{"uint64", uint64(18446744073709551615), "18446744073709551615"},
		{"float32", float32(1.5), "1.5"},
		{"float64", 3.25, "3.25"},
		{"time", ts, "2024-03-01T10:30:00Z"},
		{"time", ts.Add(123456789), "2024-03-01T10:30:00.123456789Z"},
		{"duration", 90 * time.Minute, "1h30m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.impl+"/"+tt.text, func(t *testing.T) {
			c := newBuiltin(t, tt.impl)

			s, err := c.ToString(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.text, s)

			v, err := c.FromString(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.value, v)
			assert.Equal(t, c.Type(), reflect.TypeOf(v))
		})
	}
}

func TestInteger_Overflow(t *testing.T) {
	c := newBuiltin(t, "int8")

	_, err := c.FromString("128")
	require.Error(t, err)
	assert.ErrorIs(t, err, strconv.ErrRange)

	_, err = newBuiltin(t, "uint").FromString("-1")
	assert.Error(t, err)
}

func TestConverters_AcceptPointers(t *testing.T) {
	n := 12
	s, err := newBuiltin(t, "int").ToString(&n)
	require.NoError(t, err)
	assert.Equal(t, "12", s)

	_, err = newBuiltin(t, "int").ToString("nope")
	assert.ErrorIs(t, err, convert.ErrUnsupportedValue)
}

func TestBigInt(t *testing.T) {
	c := newBuiltin(t, "bigint")

	v, err := c.FromString("123456789012345678901234567890")
	require.NoError(t, err)
	n, ok := v.(*big.Int)
	require.True(t, ok)

	s, err := c.ToString(n)
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", s)

	_, err = c.FromString("12x")
	assert.Error(t, err)
}

func TestBool_Literals(t *testing.T) {
	c := convert.NewBool()
	require.NoError(t, c.SetTrueFalseLiterals([]string{"OUI", "O"}, []string{"NON", "N"}))

	s, err := c.ToString(true)
	require.NoError(t, err)
	assert.Equal(t, "OUI", s)

	s, err = c.ToString(false)
	require.NoError(t, err)
	assert.Equal(t, "NON", s)

	v, err := c.FromString("NON")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	v, err = c.FromString("o")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = c.FromString("YES")
	assert.ErrorIs(t, err, convert.ErrInvalidLiteral)

	assert.ErrorIs(t, c.SetTrueFalseLiterals(nil, []string{"x"}), convert.ErrEmptyLiteralList)
}

func TestBool_DefaultLiteralsAreCaseInsensitive(t *testing.T) {
	v, err := convert.NewBool().FromString("TRUE")
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestTime_Format(t *testing.T) {
	c := convert.NewTime()
	require.NoError(t, c.SetFormat("2006-01-02"))

	v, err := c.FromString("2023-12-25")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC), v)

	s, err := c.ToString(time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2001-02-03", s)

	assert.ErrorIs(t, c.SetFormat(""), convert.ErrInvalidFormat)
}

func TestDuration_Units(t *testing.T) {
	c := &convert.Duration{}
	require.NoError(t, c.SetFormat("ms"))

	s, err := c.ToString(1500 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "1500", s)

	v, err := c.FromString("250")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, v)

	assert.ErrorIs(t, c.SetFormat("fortnight"), convert.ErrInvalidFormat)
}

func TestConfigure(t *testing.T) {
	assert.NoError(t, convert.Configure(newBuiltin(t, "int"), convert.Config{}))

	err := convert.Configure(newBuiltin(t, "int"), convert.Config{Format: "x"})
	assert.ErrorIs(t, err, convert.ErrNotConfigurable)

	err = convert.Configure(newBuiltin(t, "time"), convert.Config{TrueLiterals: []string{"y"}, FalseLiterals: []string{"n"}})
	assert.ErrorIs(t, err, convert.ErrNotConfigurable)

	err = convert.Configure(newBuiltin(t, "bool"), convert.Config{TrueLiterals: []string{"y"}})
	assert.ErrorIs(t, err, convert.ErrIncompleteLiterals)

	b := newBuiltin(t, "bool")
	require.NoError(t, convert.Configure(b, convert.Config{TrueLiterals: []string{"Y"}, FalseLiterals: []string{"N"}}))
	s, err := b.ToString(true)
	require.NoError(t, err)
	assert.Equal(t, "Y", s)
}

func TestConfig_Key(t *testing.T) {
	a := convert.Config{Format: "x"}
	b := convert.Config{TrueLiterals: []string{"x"}}
	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, convert.Config{}.Key(), convert.Config{TrueLiterals: []string{}}.Key())
	assert.True(t, convert.Config{}.IsZero())
	assert.False(t, a.IsZero())
}

func TestFuncs(t *testing.T) {
	type Celsius float64

	c := convert.Funcs[Celsius]{
		Parse: func(s string) (Celsius, error) {
			f, err := strconv.ParseFloat(s, 64)
			return Celsius(f), err
		},
		Format: func(v Celsius) string { return strconv.FormatFloat(float64(v), 'f', 1, 64) },
	}

	v, err := c.FromString("21.5")
	require.NoError(t, err)
	assert.Equal(t, Celsius(21.5), v)

	temp := Celsius(3)
	s, err := c.ToString(&temp)
	require.NoError(t, err)
	assert.Equal(t, "3.0", s)

	_, err = c.ToString(3)
	assert.ErrorIs(t, err, convert.ErrUnsupportedValue)
}
