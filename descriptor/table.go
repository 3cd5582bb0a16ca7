package descriptor

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"metamap/convert"
	"metamap/internal/common"
)

// Table holds the descriptors of one struct type.
type Table struct {
	Type reflect.Type
	// Declared lists the tagged fields declared directly on Type.
	Declared []*Field
	// All lists Declared followed by the fields of embedded structs,
	// depth-first.
	All []*Field
}

// Parser builds descriptor tables for one tag name.
type Parser struct {
	// TagName is the struct tag key; DefaultTagName when empty.
	TagName string
	// Logger receives a debug record per table build; slog.Default() when nil.
	Logger *slog.Logger
}

type cacheKey struct {
	tag string
	typ reflect.Type
}

var tables sync.Map // cacheKey -> *Table

// For returns the table of t (or of the struct t points to) for the default
// tag name.
func For(t reflect.Type) (*Table, error) {
	return Parser{}.Table(t)
}

// Table returns the cached table of t, building it on first use.
func (p Parser) Table(t reflect.Type) (*Table, error) {
	if t == nil {
		return nil, ErrNotStruct
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	tag := p.TagName
	if tag == "" {
		tag = DefaultTagName
	}

	key := cacheKey{tag: tag, typ: t}
	if tbl, ok := tables.Load(key); ok {
		return tbl.(*Table), nil
	}

	tbl := &Table{Type: t}
	if err := collect(tbl, t, tag, nil, true); err != nil {
		return nil, err
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("descriptor table built", "type", common.TypeID(t), "declared", len(tbl.Declared), "all", len(tbl.All))

	actual, _ := tables.LoadOrStore(key, tbl)
	return actual.(*Table), nil
}

// collect appends the descriptors of t to tbl. prefix is the index path of t
// from the table root; own is true for the root type itself.
func collect(tbl *Table, t reflect.Type, tag string, prefix []int, own bool) error {
	var embedded []reflect.StructField

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		raw, tagged := sf.Tag.Lookup(tag)

		if sf.Anonymous && !tagged {
			if isEmbeddable(sf) {
				embedded = append(embedded, sf)
			}
			continue
		}
		if !tagged || raw == "-" || !sf.IsExported() {
			continue
		}

		index := append(append([]int(nil), prefix...), i)
		f, err := newField(sf, t, raw, index)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", common.TypeName(t), sf.Name, err)
		}

		if own {
			tbl.Declared = append(tbl.Declared, f)
		}
		tbl.All = append(tbl.All, f)
	}

	for _, sf := range embedded {
		index := append(append([]int(nil), prefix...), sf.Index...)
		et := sf.Type
		if et.Kind() == reflect.Ptr {
			et = et.Elem()
		}
		if err := collect(tbl, et, tag, index, false); err != nil {
			return err
		}
	}

	return nil
}

// isEmbeddable reports whether an untagged embedded field stands for
// inherited fields. Unexported pointer embeds cannot be allocated and are
// skipped.
func isEmbeddable(sf reflect.StructField) bool {
	switch {
	case sf.Type.Kind() == reflect.Struct:
		return true
	case sf.Type.Kind() == reflect.Ptr && sf.Type.Elem().Kind() == reflect.Struct:
		return sf.IsExported()
	default:
		return false
	}
}

func newField(sf reflect.StructField, declaring reflect.Type, raw string, index []int) (*Field, error) {
	d, err := ParseTag(raw)
	if err != nil {
		return nil, err
	}

	f := &Field{
		Name:             sf.Name,
		Type:             sf.Type,
		Declaring:        declaring,
		Key:              d.Key,
		Mandatory:        d.Has("mandatory"),
		BlankDefault:     d.Has("blankDefault"),
		BlankDefaultMeta: d.Has("blankDefaultMeta"),
		Handler:          d.Options["handler"],
		Access:           Accessor{index: index},
		Convert: convert.Config{
			Format:        d.Options["format"],
			TrueLiterals:  common.SplitList(d.Options["true"]),
			FalseLiterals: common.SplitList(d.Options["false"]),
		},
	}

	if v := d.Options["default"]; v != "" {
		f.Default = &v
	}
	if v := d.Options["defaultMeta"]; v != "" {
		f.DefaultMeta = &v
	}

	nested := d.Has("nested") || d.Has("nestedMandatory")
	if nested {
		f.Nested = &Nested{Mandatory: d.Has("nestedMandatory"), Impl: d.Options["impl"]}
	}

	switch {
	case d.Has("nested") && d.Has("nestedMandatory"):
		return nil, fmt.Errorf("%w: nested and nestedMandatory are exclusive", ErrInvalidTag)
	case nested && d.Has("handler"):
		return nil, fmt.Errorf("%w: a field is either nested or custom-handled", ErrInvalidTag)
	case d.Has("handler") && f.Handler == "":
		return nil, fmt.Errorf("%w: empty handler name", ErrInvalidTag)
	case d.Has("impl") && !nested:
		return nil, fmt.Errorf("%w: impl applies to nested fields only", ErrInvalidTag)
	case (nested || d.Has("handler")) && !f.Convert.IsZero():
		return nil, fmt.Errorf("%w: format and literals apply to plain fields only", ErrInvalidTag)
	case (len(f.Convert.TrueLiterals) == 0) != (len(f.Convert.FalseLiterals) == 0):
		return nil, fmt.Errorf("%w: true and false literals go together", ErrInvalidTag)
	}

	switch {
	case nested:
		f.Kind = KindNested
		if f.Nested.Impl == "" {
			base := sf.Type
			if base.Kind() == reflect.Ptr {
				base = base.Elem()
			}
			if base.Kind() != reflect.Struct {
				return nil, fmt.Errorf("%w: %s", ErrNotNestable, sf.Type)
			}
		}
	case f.Handler != "":
		f.Kind = KindCustom
	default:
		f.Kind = KindPlain
	}

	return f, nil
}
