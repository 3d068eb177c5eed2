// Package compound holds the domain model for metabolite-to-KEGG matching:
// the query and result value types, the name/formula normalization rules and
// the edit-distance similarity score.  Everything in this package is pure;
// the external database lives behind an interface in the application layer.
package compound

// Query is the input unit for a single match attempt: a vendor-exported
// compound name and its molecular formula.
type Query struct {
	Name    string `json:"name"`
	Formula string `json:"formula"`
}

// Candidate is one reference returned by a formula-based database search.
// It exists only for the duration of a match operation.
type Candidate struct {
	// ID is the KEGG compound identifier, e.g. "C00031".
	ID string `json:"id"`
}

// Record is the full database entry behind a Candidate.
type Record struct {
	ID        string   `json:"id"`
	Names     []string `json:"names"`
	Formula   string   `json:"formula,omitempty"`
	ExactMass float64  `json:"exact_mass,omitempty"`
}

// OfficialName returns the first listed name, which KEGG designates as the
// official one, or "" when the record carries no names.
func (r *Record) OfficialName() string {
	if r == nil || len(r.Names) == 0 {
		return ""
	}
	return r.Names[0]
}

// MatchStatus classifies the terminal outcome of a single match attempt.
type MatchStatus string

const (
	// StatusAutoAccepted means the best similarity met the threshold.
	StatusAutoAccepted MatchStatus = "auto_accepted"
	// StatusNeedsVerification means a best match exists but its similarity
	// fell below the threshold; a human should review it.
	StatusNeedsVerification MatchStatus = "needs_verification"
	// StatusNoMatch means the formula search returned zero candidates.
	StatusNoMatch MatchStatus = "no_match"
	// StatusError means the lookup failed; MatchResult.Err holds the cause.
	StatusError MatchStatus = "error"
)

// IsValid reports whether s is one of the defined statuses.
func (s MatchStatus) IsValid() bool {
	switch s {
	case StatusAutoAccepted, StatusNeedsVerification, StatusNoMatch, StatusError:
		return true
	default:
		return false
	}
}

func (s MatchStatus) String() string { return string(s) }

// MatchResult is the terminal output of a single match attempt.
//
// Invariant: Similarity is non-nil if and only if Status is StatusAutoAccepted
// or StatusNeedsVerification; KEGGID and KEGGName are empty otherwise.
type MatchResult struct {
	KEGGID     string      `json:"kegg_id,omitempty"`
	KEGGName   string      `json:"kegg_name,omitempty"`
	Similarity *float64    `json:"similarity,omitempty"`
	Status     MatchStatus `json:"status"`
	Err        string      `json:"error,omitempty"`
}

// Matched constructs a MatchResult for a scored best candidate, classifying
// it against threshold.
func Matched(id, name string, similarity, threshold float64) MatchResult {
	status := StatusNeedsVerification
	if similarity >= threshold {
		status = StatusAutoAccepted
	}
	return MatchResult{
		KEGGID:     id,
		KEGGName:   name,
		Similarity: &similarity,
		Status:     status,
	}
}

// NoMatch constructs the zero-candidate result.
func NoMatch() MatchResult {
	return MatchResult{Status: StatusNoMatch}
}

// Failed converts a lookup failure into a result, preserving the diagnostic
// text.  A nil err yields an empty message rather than a panic.
func Failed(err error) MatchResult {
	res := MatchResult{Status: StatusError}
	if err != nil {
		res.Err = err.Error()
	}
	return res
}

// HasMatch reports whether the result identifies a KEGG compound.
func (m MatchResult) HasMatch() bool {
	return m.Status == StatusAutoAccepted || m.Status == StatusNeedsVerification
}
