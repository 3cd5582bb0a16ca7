// Package diagnostic provides structured findings about converter
// descriptors and registry resolution.
//
// Key capabilities:
//   - Per-type findings with a stable code
//   - Severity levels (info, warning, error)
//   - Classification of registry failures into codes
package diagnostic
