package common

import (
	"path"
	"reflect"
)

// UnknownStr is the String form of enum values outside their declared range.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// TypeName returns a short "alias.Name" form of t for messages.
// Unnamed and builtin types use reflect's own spelling.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}

	return PkgAlias(t.PkgPath()) + "." + t.Name()
}

// TypeID returns the full identity of t: "pkgpath.Name" for named types and
// reflect's spelling for builtin and unnamed types.
func TypeID(t reflect.Type) string {
	if t == nil {
		return ""
	}

	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}

	return t.PkgPath() + "." + t.Name()
}
