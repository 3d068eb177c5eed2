package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmetab/keggmatch/internal/domain/compound"
	"github.com/openmetab/keggmatch/internal/infrastructure/kegg"
	"github.com/openmetab/keggmatch/pkg/errors"
)

// The KEGG REST client must satisfy the database port.
var _ CompoundDatabase = (*kegg.Client)(nil)

// fakeDB serves canned candidates and records, keyed by formula and ID.
type fakeDB struct {
	candidates map[string][]compound.Candidate
	records    map[string]*compound.Record
	findErr    error
	fetchErr   map[string]error
	findCalls  int
	fetchCalls []string
}

func (f *fakeDB) FindByFormula(ctx context.Context, formula string) ([]compound.Candidate, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.candidates[formula], nil
}

func (f *fakeDB) FetchRecord(ctx context.Context, id string) (*compound.Record, error) {
	f.fetchCalls = append(f.fetchCalls, id)
	if err := f.fetchErr[id]; err != nil {
		return nil, err
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeKEGGNotFound, "no record").WithDetail(id)
	}
	return rec, nil
}

func glucoseDB() *fakeDB {
	return &fakeDB{
		candidates: map[string][]compound.Candidate{
			"C6H12O6": {{ID: "C00031"}, {ID: "C00095"}},
		},
		records: map[string]*compound.Record{
			"C00031": {ID: "C00031", Names: []string{"D-Glucose", "Grape sugar", "Dextrose"}, Formula: "C6H12O6"},
			"C00095": {ID: "C00095", Names: []string{"D-Fructose", "Levulose"}, Formula: "C6H12O6"},
		},
	}
}

func TestNewService_RequiresDatabase(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestNewService_ValidatesThreshold(t *testing.T) {
	for _, bad := range []float64{-0.1, 1.1, 2} {
		_, err := NewService(glucoseDB(), WithThreshold(bad))
		require.Error(t, err, "threshold %v", bad)
		assert.True(t, errors.IsCode(err, errors.ErrCodeThresholdInvalid))
	}

	svc, err := NewService(glucoseDB(), WithThreshold(0.9))
	require.NoError(t, err)
	assert.Equal(t, 0.9, svc.Threshold())
}

func TestMatch_ExactNameAutoAccepted(t *testing.T) {
	svc, err := NewService(glucoseDB())
	require.NoError(t, err)

	res := svc.Match(context.Background(), compound.Query{Name: "D-Glucose", Formula: "C6H12O6"})
	assert.Equal(t, compound.StatusAutoAccepted, res.Status)
	assert.Equal(t, "C00031", res.KEGGID)
	assert.Equal(t, "D-Glucose", res.KEGGName)
	require.NotNil(t, res.Similarity)
	assert.Equal(t, 1.0, *res.Similarity)
}

func TestMatch_NormalizesBeforeScoring(t *testing.T) {
	svc, err := NewService(glucoseDB())
	require.NoError(t, err)

	// Annotation and stereo descriptor are stripped, formula spaces removed.
	res := svc.Match(context.Background(), compound.Query{
		Name:    "D-Glucose (2S,3R) [Similar to Dextrose]",
		Formula: " C6 H12 O6 ",
	})
	assert.Equal(t, compound.StatusAutoAccepted, res.Status)
	assert.Equal(t, "C00031", res.KEGGID)
	require.NotNil(t, res.Similarity)
	assert.Equal(t, 1.0, *res.Similarity)
}

func TestMatch_OnlyOfficialNameIsScored(t *testing.T) {
	// The query equals a synonym exactly, but scoring runs against the first
	// listed name only, so the result stays below the threshold.
	db := &fakeDB{
		candidates: map[string][]compound.Candidate{"X": {{ID: "C1"}}},
		records: map[string]*compound.Record{
			"C1": {ID: "C1", Names: []string{"2-Acetamidopentanedioate", "zzzz"}},
		},
	}
	svc, err := NewService(db)
	require.NoError(t, err)

	res := svc.Match(context.Background(), compound.Query{Name: "zzzz", Formula: "X"})
	assert.Equal(t, compound.StatusNeedsVerification, res.Status)
	assert.Equal(t, "C1", res.KEGGID)
	assert.Equal(t, "2-Acetamidopentanedioate", res.KEGGName)
	require.NotNil(t, res.Similarity)
	assert.Less(t, *res.Similarity, DefaultThreshold)
}

func TestMatch_SynonymQueryNeedsVerification(t *testing.T) {
	svc, err := NewService(glucoseDB())
	require.NoError(t, err)

	// "Dextrose" is a listed synonym of C00031 but scores against "D-Glucose".
	res := svc.Match(context.Background(), compound.Query{Name: "Dextrose", Formula: "C6H12O6"})
	assert.Equal(t, compound.StatusNeedsVerification, res.Status)
	require.NotNil(t, res.Similarity)
	assert.Less(t, *res.Similarity, 1.0)
}

func TestMatch_BelowThresholdNeedsVerification(t *testing.T) {
	svc, err := NewService(glucoseDB(), WithThreshold(0.99))
	require.NoError(t, err)

	res := svc.Match(context.Background(), compound.Query{Name: "Glucose-ish", Formula: "C6H12O6"})
	assert.Equal(t, compound.StatusNeedsVerification, res.Status)
	assert.NotEmpty(t, res.KEGGID)
	require.NotNil(t, res.Similarity)
	assert.Less(t, *res.Similarity, 0.99)
}

func TestMatch_ThresholdBoundaryIsInclusive(t *testing.T) {
	db := &fakeDB{
		candidates: map[string][]compound.Candidate{"X": {{ID: "C1"}}},
		records:    map[string]*compound.Record{"C1": {ID: "C1", Names: []string{"abcd"}}},
	}
	// similarity("abcx", "abcd") = 0.75 exactly.
	svc, err := NewService(db, WithThreshold(0.75))
	require.NoError(t, err)

	res := svc.Match(context.Background(), compound.Query{Name: "abcx", Formula: "X"})
	assert.Equal(t, compound.StatusAutoAccepted, res.Status)
}

func TestMatch_TieKeepsFirstCandidate(t *testing.T) {
	db := &fakeDB{
		candidates: map[string][]compound.Candidate{"X": {{ID: "C1"}, {ID: "C2"}}},
		records: map[string]*compound.Record{
			"C1": {ID: "C1", Names: []string{"alanine"}},
			"C2": {ID: "C2", Names: []string{"alanine"}},
		},
	}
	svc, err := NewService(db)
	require.NoError(t, err)

	res := svc.Match(context.Background(), compound.Query{Name: "alanine", Formula: "X"})
	assert.Equal(t, "C1", res.KEGGID)
}

func TestMatch_NoCandidatesIsNoMatch(t *testing.T) {
	svc, err := NewService(glucoseDB())
	require.NoError(t, err)

	res := svc.Match(context.Background(), compound.Query{Name: "Unobtainium", Formula: "Xx99"})
	assert.Equal(t, compound.StatusNoMatch, res.Status)
	assert.Empty(t, res.KEGGID)
	assert.Nil(t, res.Similarity)
}

func TestMatch_EmptyFormulaIsNoMatch(t *testing.T) {
	db := glucoseDB()
	svc, err := NewService(db)
	require.NoError(t, err)

	res := svc.Match(context.Background(), compound.Query{Name: "D-Glucose", Formula: "   "})
	assert.Equal(t, compound.StatusNoMatch, res.Status)
	// No database round trip for a blank formula.
	assert.Zero(t, db.findCalls)
}

func TestMatch_FindErrorBecomesErrorResult(t *testing.T) {
	db := glucoseDB()
	db.findErr = errors.New(errors.ErrCodeKEGGUnavailable, "connection refused")
	svc, err := NewService(db)
	require.NoError(t, err)

	res := svc.Match(context.Background(), compound.Query{Name: "D-Glucose", Formula: "C6H12O6"})
	assert.Equal(t, compound.StatusError, res.Status)
	assert.Contains(t, res.Err, "connection refused")
	assert.Nil(t, res.Similarity)
}

func TestMatch_FetchErrorBecomesErrorResult(t *testing.T) {
	db := glucoseDB()
	db.fetchErr = map[string]error{
		"C00095": errors.New(errors.ErrCodeKEGGBadStatus, "status 502"),
	}
	svc, err := NewService(db)
	require.NoError(t, err)

	res := svc.Match(context.Background(), compound.Query{Name: "D-Glucose", Formula: "C6H12O6"})
	assert.Equal(t, compound.StatusError, res.Status)
	assert.Contains(t, res.Err, "status 502")
}

func TestMatch_CandidatesWithoutNamesIsNoMatch(t *testing.T) {
	db := &fakeDB{
		candidates: map[string][]compound.Candidate{"X": {{ID: "C1"}}},
		records:    map[string]*compound.Record{"C1": {ID: "C1", Formula: "X"}},
	}
	svc, err := NewService(db)
	require.NoError(t, err)

	res := svc.Match(context.Background(), compound.Query{Name: "anything", Formula: "X"})
	assert.Equal(t, compound.StatusNoMatch, res.Status)
}
