package descriptor

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind tells how a field is converted.
type Kind int

const (
	KindPlain  Kind = iota // converted by a registered converter
	KindNested             // mapped recursively
	KindCustom             // delegated to a custom handler
)
