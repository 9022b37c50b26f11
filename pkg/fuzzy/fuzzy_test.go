package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
		{"Same", "sAME", 0}, // normalization makes comparison case-insensitive
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevenshteinDistance(tt.s1, tt.s2), "LevenshteinDistance(%q, %q)", tt.s1, tt.s2)
	}
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("Panda Express", "panda  express"))
	assert.Equal(t, 1.0, Ratio("", ""))

	// Dropping a hyphen should still score very high.
	got := Ratio("Panda Express - San Antonio", "Panda Express San Antonio")
	assert.Greater(t, got, 0.9)

	// Unrelated names stay low.
	got = Ratio("Completely Unrelated Name", "Panda Express San Antonio")
	assert.Less(t, got, 0.5)

	assert.Equal(t, 0.0, Ratio("abc", "xyz"))
}

func TestNormalizeString(t *testing.T) {
	assert.Equal(t, "panda express", NormalizeString("  Panda   Express "))
	assert.Equal(t, "", NormalizeString("   "))
}
