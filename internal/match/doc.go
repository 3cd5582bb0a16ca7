// Package match finds the metadata key closest to a missing one, to enrich
// error messages with a suggestion.
//
// Keys are compared after normalization (case folded, separators removed)
// by their normalized Levenshtein similarity.
package match
