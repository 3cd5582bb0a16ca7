package registry

import (
	"errors"
	"fmt"

	"metamap/convert"
	"metamap/fault"
	"metamap/internal/common"
	"metamap/internal/diagnostic"
)

// Audit instantiates the implementation of every descriptor known to the
// discovery and reports what would fail at resolution time. It does not touch
// the registry caches.
func (r *Converters) Audit() diagnostic.Diagnostics {
	var d diagnostic.Diagnostics

	if dd, ok := r.discovery.(interface{ Duplicates() []string }); ok {
		for _, typ := range dd.Duplicates() {
			d.AddWarning(diagnostic.CodeDuplicateType, "type listed more than once, last entry wins", typ, "")
		}
	}

	used := make(map[string]bool)
	for _, e := range r.discovery.Entries() {
		if e.Impl == "" {
			d.AddError(diagnostic.CodeMalformed, "descriptor names no implementation", e.Type, "")
			continue
		}
		used[e.Impl] = true

		inst, err := r.impls.New(e.Impl)
		if err != nil {
			d.AddError(Classify(err), err.Error(), e.Type, e.Impl)
			continue
		}

		c, ok := inst.(convert.Converter)
		if !ok {
			d.AddError(diagnostic.CodeNotAConverter, fmt.Sprintf("%T does not implement the converter contract", inst), e.Type, e.Impl)
			continue
		}

		if got := common.TypeID(c.Type()); got != e.Type {
			d.AddWarning(diagnostic.CodeTypeMismatch, fmt.Sprintf("implementation produces %s", got), e.Type, e.Impl)
			continue
		}

		d.AddInfo(diagnostic.CodeResolved, "ok", e.Type, e.Impl)
	}

	for _, name := range r.impls.Names() {
		if !used[name] {
			d.AddInfo(diagnostic.CodeUnusedImpl, "implementation not referenced by any descriptor", "", name)
		}
	}

	return d
}

// Classify maps a resolution error to a diagnostic code.
func Classify(err error) string {
	var (
		unknown *fault.UnknownTypeError
		cie     *fault.ConverterInitializationError
	)
	if errors.As(err, &cie) && cie.Err != nil {
		err = cie.Err
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return diagnostic.CodeNotFound
	case errors.Is(err, ErrMalformed):
		return diagnostic.CodeMalformed
	case errors.Is(err, ErrNotAConverter):
		return diagnostic.CodeNotAConverter
	case errors.As(err, &unknown):
		return diagnostic.CodeUnknownImpl
	case errors.Is(err, convert.ErrNotConfigurable), errors.Is(err, convert.ErrInvalidFormat),
		errors.Is(err, convert.ErrIncompleteLiterals), errors.Is(err, convert.ErrEmptyLiteralList):
		return diagnostic.CodeInitialization
	default:
		return diagnostic.CodeInstantiation
	}
}
