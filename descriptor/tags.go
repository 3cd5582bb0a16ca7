package descriptor

import (
	"errors"
	"fmt"
	"strings"

	"metamap/internal/common"
)

// DefaultTagName is the struct tag key read when none is configured.
const DefaultTagName = "meta"

var (
	ErrInvalidTag  = errors.New("invalid meta tag")
	ErrNotStruct   = errors.New("descriptor tables are built for struct types only")
	ErrNotNestable = errors.New("nested field type is not a struct")
)

// Directives is the parsed content of one field tag.
type Directives struct {
	Key     string
	Options map[string]string // flags map to ""
}

// Has reports whether option name is present.
func (d Directives) Has(name string) bool {
	_, ok := d.Options[name]
	return ok
}

var knownOptions = map[string]bool{
	"mandatory":        false,
	"default":          true,
	"blankDefault":     false,
	"defaultMeta":      true,
	"blankDefaultMeta": false,
	"nested":           false,
	"nestedMandatory":  false,
	"impl":             true,
	"handler":          true,
	"format":           true,
	"true":             true,
	"false":            true,
}

// ParseTag splits a tag value into its key and options.
// Items are separated by commas; single quotes protect commas inside values.
func ParseTag(tag string) (Directives, error) {
	parts, err := splitTag(tag)
	if err != nil {
		return Directives{}, err
	}

	d := Directives{Options: make(map[string]string)}
	if key, ok := common.First(parts); ok {
		if strings.Contains(key, "=") {
			return Directives{}, fmt.Errorf("%w: first item %q must be the key", ErrInvalidTag, key)
		}
		d.Key = key
	}

	for _, part := range parts[min(1, len(parts)):] {
		name, value, hasValue := strings.Cut(part, "=")
		name = strings.TrimSpace(name)

		wantsValue, known := knownOptions[name]
		switch {
		case name == "":
			return Directives{}, fmt.Errorf("%w: empty option in %q", ErrInvalidTag, tag)
		case !known:
			return Directives{}, fmt.Errorf("%w: unknown option %q", ErrInvalidTag, name)
		case wantsValue != hasValue:
			return Directives{}, fmt.Errorf("%w: option %q takes %s", ErrInvalidTag, name, valueArity(wantsValue))
		}

		if _, dup := d.Options[name]; dup {
			return Directives{}, fmt.Errorf("%w: option %q repeated", ErrInvalidTag, name)
		}
		d.Options[name] = unquoteValue(strings.TrimSpace(value))
	}

	return d, nil
}

func valueArity(wantsValue bool) string {
	if wantsValue {
		return "a value"
	}
	return "no value"
}

func splitTag(tag string) ([]string, error) {
	var (
		parts   []string
		current strings.Builder
		quoted  bool
	)

	for i := 0; i < len(tag); i++ {
		char := tag[i]

		switch {
		case char == '\'':
			quoted = !quoted
			current.WriteByte(char)
		case char == ',' && !quoted:
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(char)
		}
	}

	if quoted {
		return nil, fmt.Errorf("%w: unterminated quote in %q", ErrInvalidTag, tag)
	}

	return append(parts, strings.TrimSpace(current.String())), nil
}

// unquoteValue removes surrounding single quotes from a value.
func unquoteValue(value string) string {
	if len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'' {
		return value[1 : len(value)-1]
	}
	return value
}
