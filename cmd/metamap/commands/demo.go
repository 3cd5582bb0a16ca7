package commands

import (
	"math/big"
	"reflect"
	"time"

	"metamap/handler"
	"metamap/mapper"
	"metamap/registry"
)

// Demo types shown by describe and sample.

type Audit struct {
	CreatedBy string    `meta:"created_by,defaultMeta=system"`
	CreatedAt time.Time `meta:"created_at,format=2006-01-02"`
}

type Address struct {
	Street string `meta:"street"`
	City   string `meta:"city,mandatory"`
}

type Customer struct {
	Audit

	ID       string        `meta:"id,mandatory"`
	Name     string        `meta:"name"`
	Tier     *int          `meta:"tier,default=1"`
	Active   bool          `meta:"active,true=Y|yes,false=N|no"`
	Credit   *big.Int      `meta:"credit"`
	Timeout  time.Duration `meta:"timeout,format=s"`
	Billing  *Address      `meta:"billing,nestedMandatory"`
	Shipping *Address      `meta:"shipping,nested"`
	Label    string        `meta:"label,handler=label"`
}

func demoTypes() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[Customer](), reflect.TypeFor[Address](), reflect.TypeFor[Audit]()}
}

func demoValue() Customer {
	return Customer{
		Audit:   Audit{CreatedBy: "ops", CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		ID:      "c-1001",
		Name:    "Ada Lovelace",
		Active:  true,
		Credit:  big.NewInt(250_000),
		Timeout: 90 * time.Second,
		Billing: &Address{Street: "12 St James's Sq", City: "London"},
	}
}

func demoMapper() *mapper.Mapper {
	handlers := registry.NewCatalogue("handler")
	handlers.MustRegister("label", func() (any, error) {
		h, err := handler.NewExpr("label", `md.id + ":" + md.city`, `"label" in md ? md.label : nil`)
		if err != nil {
			return nil, err
		}
		return h, nil
	})
	return mapper.New(mapper.WithHandlers(handlers))
}
