package mapper_test

import (
	"math/big"
	"strings"
	"time"

	"metamap/handler"
	"metamap/mapper"
	"metamap/metadata"
	"metamap/registry"
)

type Address struct {
	Street string `meta:"street"`
	City   string `meta:"city,mandatory"`
}

type Entity struct {
	ID      string `meta:"id"`
	Version int    `meta:"version"`
}

type Customer struct {
	Entity

	Name    string        `meta:"name,mandatory"`
	Age     int           `meta:"age"`
	Score   *int          `meta:"score,default=42"`
	VIP     bool          `meta:"vip,true=OUI,false=NON"`
	Since   time.Time     `meta:"since,format=2006-01-02"`
	Timeout time.Duration `meta:"timeout,format=ms"`
	Balance *big.Int      `meta:"balance"`
	Ratio   float64       `meta:"ratio"`
	Home    *Address      `meta:"home,nested"`
}

// Flat has only plain convertible fields.
type Flat struct {
	S   string        `meta:"s"`
	B   bool          `meta:"b"`
	I   int           `meta:"i"`
	I8  int8          `meta:"i8"`
	U16 uint16        `meta:"u16"`
	I64 int64         `meta:"i64"`
	F32 float32       `meta:"f32"`
	F64 float64       `meta:"f64"`
	P   *int          `meta:"p"`
	N   *big.Int      `meta:"n"`
	T   time.Time     `meta:"t"`
	D   time.Duration `meta:"d"`
}

type Person struct {
	First string `meta:"first"`
	Last  string `meta:"last"`
	Full  string `meta:",handler=fullName"`
}

func fullName() handler.Handler {
	return handler.Funcs{
		From: func(md metadata.Map) (any, bool, error) {
			first, last := md.Get("first"), md.Get("last")
			if first == "" && last == "" {
				return nil, false, nil
			}
			return strings.TrimSpace(first + " " + last), true, nil
		},
		To: func(v any, md metadata.Map) error {
			// composed from the sibling keys already written
			md.Set("display", md.Get("last")+", "+md.Get("first"))
			return nil
		},
	}
}

func newMapper(opts ...mapper.Option) *mapper.Mapper {
	handlers := registry.NewCatalogue("handler")
	handlers.MustRegister("fullName", func() (any, error) { return fullName(), nil })

	return mapper.New(append([]mapper.Option{mapper.WithHandlers(handlers)}, opts...)...)
}

func ptr[T any](v T) *T { return &v }
