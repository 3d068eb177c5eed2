package compound

import (
	"regexp"
	"strings"
)

// The name normalizer strips the noise that accumulates on vendor-exported
// metabolite names before they are compared against KEGG official names.
// The transforms run in a fixed order; hyphen collapsing must come last so
// that hyphen runs exposed by the earlier removals are also collapsed.
var (
	// [...] spans are database-added annotations, e.g. "[Similar to Androgen]".
	bracketSpanRe = regexp.MustCompile(`\[.*?\]`)

	// (...) spans with any immediately preceding whitespace are
	// stereochemical descriptors, e.g. " (2S,3R)".
	parenSpanRe = regexp.MustCompile(`\s*\(.*?\)`)

	// A -<digits>- artifact at string start or after whitespace, left behind
	// by export tools, e.g. "-123-Cholestane".  RE2 has no lookahead, so the
	// following letter or hyphen is captured and re-emitted.
	leadingNumTokenRe = regexp.MustCompile(`(^|\s)-[0-9]+-([A-Za-z-])`)

	// A trailing -<digits> token, optionally hyphen-terminated; the final
	// hyphen survives when present.  Anchored at end of string so that
	// positional locants inside names (e.g. "chol-5-ene") are untouched.
	trailingNumTokenRe = regexp.MustCompile(`-[0-9]+(-?)$`)

	hyphenRunRe = regexp.MustCompile(`-{2,}`)
)

// NormalizeName applies the cleanup transforms to a single name, in order:
// bracketed spans, parenthesized spans, leading and trailing numeric-dash
// tokens, the known "norchol" KEGG abbreviation, whitespace trim, hyphen-run
// collapse.  Pure and total; any input is accepted.
func NormalizeName(name string) string {
	s := bracketSpanRe.ReplaceAllString(name, "")
	s = parenSpanRe.ReplaceAllString(s, "")
	s = leadingNumTokenRe.ReplaceAllString(s, "$1$2")
	s = trailingNumTokenRe.ReplaceAllString(s, "$1")
	s = strings.Replace(s, "norchol", "norcholane", 1)
	s = strings.TrimSpace(s)
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return s
}

// NormalizeNames normalizes a slice of names element-wise, preserving order
// and length.
func NormalizeNames(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = NormalizeName(n)
	}
	return out
}

// NormalizeFormula removes every space from a molecular formula and trims
// surrounding whitespace, so "  C6 H12 O6 " becomes "C6H12O6".
func NormalizeFormula(formula string) string {
	return strings.TrimSpace(strings.ReplaceAll(formula, " ", ""))
}

// NormalizeFormulas normalizes a slice of formulas element-wise, preserving
// order and length.
func NormalizeFormulas(formulas []string) []string {
	out := make([]string, len(formulas))
	for i, f := range formulas {
		out[i] = NormalizeFormula(f)
	}
	return out
}
