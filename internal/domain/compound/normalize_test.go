package compound

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFormula(t *testing.T) {
	in := []string{" H2O ", " C6 H12 O6 ", "Na Cl", " Fe3 O4 ", ""}
	want := []string{"H2O", "C6H12O6", "NaCl", "Fe3O4", ""}
	assert.Equal(t, want, NormalizeFormulas(in))
}

func TestNormalizeName_BracketedAnnotations(t *testing.T) {
	assert.Equal(t, "Testosterone", NormalizeName("Testosterone [Similar to Androgen]"))
	assert.Equal(t, "Estrone", NormalizeName("[flag] Estrone [isomer 2]"))
}

func TestNormalizeName_StereoDescriptors(t *testing.T) {
	assert.Equal(t, "D-Glucose", NormalizeName("D-Glucose (2S,3R)"))
	assert.Equal(t, "Citrate", NormalizeName("Citrate (2R,3S) (anhydrous)"))
}

func TestNormalizeName_LeadingNumericToken(t *testing.T) {
	assert.Equal(t, "Cholestane", NormalizeName("-123-Cholestane"))
	assert.Equal(t, "Cholestane", NormalizeName("  -45-Cholestane"))
	// Names starting with digits are not artifacts and stay intact.
	assert.Equal(t, "1-Methylhistidine", NormalizeName("1-Methylhistidine"))
}

func TestNormalizeName_TrailingNumericToken(t *testing.T) {
	assert.Equal(t, "Cholestane", NormalizeName("Cholestane-123"))
	assert.Equal(t, "Cholestane-", NormalizeName("Cholestane-123-"))
	// Interior locants survive.
	assert.Equal(t, "Cholest-5-ene", NormalizeName("Cholest-5-ene"))
}

func TestNormalizeName_KnownAbbreviation(t *testing.T) {
	assert.Equal(t, "norcholane derivative", NormalizeName("norchol derivative"))
	// Case-sensitive: the capitalized form is not the KEGG abbreviation.
	assert.Equal(t, "Norchol acid", NormalizeName("Norchol acid"))
}

func TestNormalizeName_HyphenCollapseRunsLast(t *testing.T) {
	// The bracketed span removal exposes a double hyphen that must collapse.
	assert.Equal(t, "alpha-tocopherol", NormalizeName("alpha-[x]-tocopherol"))
	assert.Equal(t, "a-b", NormalizeName("a---b"))
}

func TestNormalizeName_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "Glycine", NormalizeName("  Glycine  "))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestNormalizeName_IdempotentOnCleanNames(t *testing.T) {
	clean := []string{
		"Testosterone",
		"D-Glucose",
		"1-Methylhistidine",
		"Cholest-5-ene",
		"alpha-Tocopherol",
		"",
	}
	for _, name := range clean {
		once := NormalizeName(name)
		assert.Equal(t, once, NormalizeName(once), "name %q", name)
	}
}

func TestNormalizeNames_PreservesOrderAndLength(t *testing.T) {
	in := []string{"B [x]", "A (1R)", "C"}
	out := NormalizeNames(in)
	assert.Equal(t, []string{"B", "A", "C"}, out)
	assert.Len(t, out, len(in))
}
