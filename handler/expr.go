package handler

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"metamap/metadata"
)

// Expr is a Handler driven by two compiled expressions.
//
// Both expressions see md, the metadata map with explicit nulls omitted, and
// the helpers isNull(key) and blank(s). The mapping expression also sees value, the field
// value. Its result is written under Key; a nil result is written as an
// explicit null. A nil result of the unmapping expression means no value.
type Expr struct {
	Key string

	toMap   *vm.Program
	fromMap *vm.Program
}

// NewExpr compiles toMap and fromMap. An empty expression disables its
// direction.
func NewExpr(key, toMap, fromMap string) (*Expr, error) {
	e := &Expr{Key: key}

	var err error
	if toMap != "" {
		if key == "" {
			return nil, fmt.Errorf("expression handler: mapping expression %q needs a key", toMap)
		}
		if e.toMap, err = expr.Compile(toMap, exprOpts()...); err != nil {
			return nil, fmt.Errorf("expression handler: compiling %q: %w", toMap, err)
		}
	}
	if fromMap != "" {
		if e.fromMap, err = expr.Compile(fromMap, exprOpts()...); err != nil {
			return nil, fmt.Errorf("expression handler: compiling %q: %w", fromMap, err)
		}
	}

	return e, nil
}

// MustExpr is NewExpr that panics on error.
func MustExpr(key, toMap, fromMap string) *Expr {
	e, err := NewExpr(key, toMap, fromMap)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Expr) FromMap(md metadata.Map) (any, bool, error) {
	if e.fromMap == nil {
		return nil, false, nil
	}

	res, err := expr.Run(e.fromMap, env(md, nil))
	if err != nil {
		return nil, false, fmt.Errorf("expression handler %q: %w", e.Key, err)
	}
	if res == nil {
		return nil, false, nil
	}
	return res, true, nil
}

func (e *Expr) ToMap(v any, md metadata.Map) error {
	if e.toMap == nil {
		return nil
	}

	res, err := expr.Run(e.toMap, env(md, v))
	if err != nil {
		return fmt.Errorf("expression handler %q: %w", e.Key, err)
	}

	if res == nil {
		md.SetNull(e.Key)
		return nil
	}
	md.Set(e.Key, fmt.Sprint(res))
	return nil
}

func env(md metadata.Map, v any) map[string]any {
	return map[string]any{
		"md":    md.Strings(),
		"value": v,
		"isNull": func(key string) bool {
			_, null, present := md.Lookup(key)
			return present && null
		},
	}
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("blank", func(params ...any) (any, error) {
			s, _ := params[0].(string)
			return s == "", nil
		}, new(func(string) bool)),
	}
}
