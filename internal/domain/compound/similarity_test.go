package compound

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"glucose", "glucose", 0},
		{"glucose", "fructose", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Levenshtein(c.a, c.b), "%q vs %q", c.a, c.b)
		assert.Equal(t, c.want, Levenshtein(c.b, c.a), "%q vs %q reversed", c.b, c.a)
	}
}

func TestSimilarity_Identity(t *testing.T) {
	for _, s := range []string{"Glucose", "D-Glucose", "x", "norcholane"} {
		assert.Equal(t, 1.0, Similarity(s, s))
	}
}

func TestSimilarity_CaseInsensitive(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("glucose", "GLUCOSE"))
	assert.Equal(t, 1.0, Similarity("D-Glucose", "d-glucose"))
}

func TestSimilarity_DistinctNames(t *testing.T) {
	// distance("glucose", "fructose") = 3, longer length 8.
	assert.InDelta(t, 0.625, Similarity("Glucose", "Fructose"), 1e-9)
}

func TestSimilarity_BothEmptyDefinedAsOne(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
}

func TestSimilarity_OneEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("", "abc"))
}

func TestSimilarity_LengthMismatchApproachesZero(t *testing.T) {
	low := Similarity("x", "completely different compound name")
	assert.GreaterOrEqual(t, low, 0.0)
	assert.Less(t, low, 0.1)
}

func TestSimilarity_Unicode(t *testing.T) {
	// One rune substitution over three runes.
	assert.InDelta(t, 2.0/3.0, Similarity("αβγ", "αδγ"), 1e-9)
}
