package compound

import "strings"

// Levenshtein computes the edit distance between two strings: the minimum
// number of single-character insertions, deletions or substitutions that
// transform one into the other.  Operates on runes so multi-byte characters
// count as single edits.
//
// Time O(len(a)*len(b)), space O(min(len(a), len(b))).
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Keep ra the shorter side so the rows stay small.
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[i] = min3(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity scores how close two compound names are: both inputs are
// lower-cased, then 1 - d/L is returned where d is the Levenshtein distance
// and L the length of the longer input.  Identical names score 1.0 and the
// score falls toward 0.0 as the names diverge.
//
// Two empty strings are defined to score 1.0; the naive formula would divide
// by zero there.
func Similarity(name1, name2 string) float64 {
	a := strings.ToLower(name1)
	b := strings.ToLower(name2)

	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 && lb == 0 {
		return 1.0
	}

	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(maxLen)
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
