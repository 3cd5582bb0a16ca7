package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"hello", "hello", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"ab", "abc", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"ABC", "abc", 3},
		{"created_at", "updated_at", 3},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "symmetry")
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "customerid", NormalizeKey("Customer_ID"))
	assert.Equal(t, "customerid", NormalizeKey("customer-id"))
	assert.Equal(t, "customerid", NormalizeKey("customer.id"))
	assert.Equal(t, "", NormalizeKey(""))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 1.0, Similarity("order_id", "OrderID"))
	assert.InDelta(t, 0.75, Similarity("city", "citz"), 1e-9)
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
}

func TestClosest(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		candidates []string
		want       string
		ok         bool
	}{
		{"typo", "city", []string{"street", "citty", "zip"}, "citty", true},
		{"separator", "created_at", []string{"createdAt", "updatedAt"}, "createdAt", true},
		{"too far", "host", []string{"hostname"}, "", false},
		{"empty", "city", nil, "", false},
		{"tie keeps first", "ab", []string{"ax", "xb"}, "", false},
		{"tie above threshold", "abcd", []string{"abcx", "abxd"}, "abcx", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Closest(tt.key, tt.candidates)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
