package mapper_test

import (
	"math/big"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metamap/fault"
	"metamap/mapper"
	"metamap/metadata"
)

func TestMap_PlainFields(t *testing.T) {
	m := newMapper()

	c := Customer{
		Entity:  Entity{ID: "c-1", Version: 3},
		Name:    "Ada",
		Age:     36,
		Score:   ptr(7),
		VIP:     true,
		Since:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Timeout: 1500 * time.Millisecond,
		Balance: big.NewInt(1 << 62),
		Ratio:   0.25,
	}

	md, err := m.Map(&c, nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"name":    "Ada",
		"age":     "36",
		"score":   "7",
		"vip":     "OUI",
		"since":   "2024-03-01",
		"timeout": "1500",
		"balance": "4611686018427387904",
		"ratio":   "0.25",
	}, md.Strings(), spew.Sdump(md))
}

func TestMap_NilValues(t *testing.T) {
	type row struct {
		Defaulted *int    `meta:"defaulted,default=42"`
		Optional  *string `meta:"optional"`
	}
	type strict struct {
		Required *int `meta:"required,mandatory"`
	}
	type both struct {
		Required *int `meta:"required,mandatory,default=x"`
	}

	m := newMapper()

	md, err := m.Map(row{}, metadata.Map{})
	require.NoError(t, err)
	assert.Equal(t, "42", md.Get("defaulted"), "default literal written as is")
	_, null, present := md.Lookup("optional")
	assert.True(t, present, spew.Sdump(md))
	assert.True(t, null, "nil is written as explicit null")

	_, err = m.Map(strict{}, nil)
	var merr *fault.MappingError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "Required", merr.Field)
	assert.Contains(t, merr.Type, "strict")
	assert.ErrorIs(t, err, mapper.ErrMissing)

	md, err = m.Map(both{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "x", md.Get("required"), "default is not converted")
}

func TestMap_NilNestedIsSkipped(t *testing.T) {
	type optional struct {
		Home *Address `meta:"home,nested"`
	}
	type mandatory struct {
		Home *Address `meta:"home,nestedMandatory"`
	}

	m := newMapper()
	for _, obj := range []any{optional{}, mandatory{}} {
		md, err := m.Map(obj, nil)
		require.NoError(t, err)
		assert.Empty(t, md, spew.Sdump(md))
	}
}

func TestMap_NestedIsFlattened(t *testing.T) {
	type order struct {
		Ref     string   `meta:"ref"`
		Billing Address  `meta:"billing,nested"`
		Ship    *Address `meta:"ship,nestedMandatory"`
	}

	md, err := newMapper().Map(order{
		Ref:     "o-1",
		Billing: Address{City: "Paris"},
		Ship:    &Address{Street: "Main St", City: "Lyon"},
	}, nil)
	require.NoError(t, err)

	// nested keys share one namespace, the last writer wins
	assert.Equal(t, map[string]string{"ref": "o-1", "street": "Main St", "city": "Lyon"}, md.Strings())
}

func TestMap_EmbeddedFieldsAreNotMapped(t *testing.T) {
	c := Customer{Entity: Entity{ID: "c-1", Version: 2}, Name: "Ada"}

	md, err := newMapper().Map(c, nil)
	require.NoError(t, err)

	assert.False(t, md.Has("id"), spew.Sdump(md))
	assert.False(t, md.Has("version"), spew.Sdump(md))
	assert.Equal(t, "Ada", md.Get("name"))
}

func TestMap_CustomHandlerSeesSiblings(t *testing.T) {
	md, err := newMapper().Map(Person{First: "Ada", Last: "Lovelace"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Lovelace, Ada", md.Get("display"))
	assert.False(t, md.Has(""), "the handler owns its keys")
}

func TestMap_WritesIntoCallerMap(t *testing.T) {
	dst := metadata.FromStrings(map[string]string{"keep": "me"})

	out, err := newMapper().Map(&Address{City: "Oslo"}, dst)
	require.NoError(t, err)

	assert.Equal(t, "me", dst.Get("keep"))
	assert.Equal(t, "Oslo", dst.Get("city"))
	assert.Equal(t, reflect.ValueOf(dst).Pointer(), reflect.ValueOf(out).Pointer())
}

func TestMap_Errors(t *testing.T) {
	type keyless struct {
		V string `meta:""`
	}
	type noConverter struct {
		V []string `meta:"v"`
	}
	type badTag struct {
		V string `meta:"v,bogus"`
	}
	type unknownHandler struct {
		V string `meta:"v,handler=nope"`
	}

	m := newMapper()
	var nilAddr *Address

	tests := []struct {
		name string
		obj  any
		is   error
	}{
		{name: "nil", obj: nil, is: mapper.ErrNilObject},
		{name: "nil pointer", obj: nilAddr, is: mapper.ErrNilObject},
		{name: "not a struct", obj: 42},
		{name: "empty key", obj: keyless{V: "x"}, is: mapper.ErrNoKey},
		{name: "no converter", obj: noConverter{V: []string{"a"}}},
		{name: "invalid tag", obj: badTag{}},
		{name: "unknown handler", obj: unknownHandler{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Map(tt.obj, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, fault.ErrMapper)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}
