package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmetab/keggmatch/internal/domain/compound"
	"github.com/openmetab/keggmatch/pkg/errors"
)

// stubMatcher returns canned results keyed by formula.
type stubMatcher struct {
	results  map[string]compound.MatchResult
	allErr   error
	received []compound.Query
}

func (s *stubMatcher) Match(ctx context.Context, q compound.Query) compound.MatchResult {
	s.received = append(s.received, q)
	if res, ok := s.results[q.Formula]; ok {
		return res
	}
	return compound.NoMatch()
}

func (s *stubMatcher) MatchAll(ctx context.Context, queries []compound.Query, delay time.Duration) ([]compound.MatchResult, error) {
	if s.allErr != nil {
		return nil, s.allErr
	}
	out := make([]compound.MatchResult, len(queries))
	for i, q := range queries {
		out[i] = s.Match(ctx, q)
	}
	return out, nil
}

func (s *stubMatcher) Threshold() float64 { return 0.8 }

func newMatchRouter(m Matcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMatchHandler(m, time.Millisecond)
	r := gin.New()
	r.POST("/api/v1/compounds/match", h.Match)
	r.POST("/api/v1/compounds/match/batch", h.MatchBatch)
	return r
}

func postJSON(t *testing.T, r http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestMatch_ReturnsResult(t *testing.T) {
	stub := &stubMatcher{results: map[string]compound.MatchResult{
		"C6H12O6": compound.Matched("C00031", "D-Glucose", 1.0, 0.8),
	}}
	r := newMatchRouter(stub)

	rec := postJSON(t, r, "/api/v1/compounds/match", `{"name":"D-Glucose","formula":"C6H12O6"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "C00031", resp.Result.KEGGID)
	assert.Equal(t, compound.StatusAutoAccepted, resp.Result.Status)
	assert.Equal(t, "D-Glucose", resp.Query.Name)
}

func TestMatch_RequiresFormula(t *testing.T) {
	r := newMatchRouter(&stubMatcher{})

	rec := postJSON(t, r, "/api/v1/compounds/match", `{"name":"D-Glucose"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatch_MalformedBody(t *testing.T) {
	r := newMatchRouter(&stubMatcher{})

	rec := postJSON(t, r, "/api/v1/compounds/match", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchBatch_ResultsInOrder(t *testing.T) {
	stub := &stubMatcher{results: map[string]compound.MatchResult{
		"C6H12O6": compound.Matched("C00031", "D-Glucose", 1.0, 0.8),
	}}
	r := newMatchRouter(stub)

	rec := postJSON(t, r, "/api/v1/compounds/match/batch",
		`{"queries":[{"name":"D-Glucose","formula":"C6H12O6"},{"name":"x","formula":"Zz9"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BatchMatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, compound.StatusAutoAccepted, resp.Results[0].Result.Status)
	assert.Equal(t, compound.StatusNoMatch, resp.Results[1].Result.Status)
}

func TestMatchBatch_EmptyQueries(t *testing.T) {
	r := newMatchRouter(&stubMatcher{})

	rec := postJSON(t, r, "/api/v1/compounds/match/batch", `{"queries":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BatchMatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.Total)
	assert.NotNil(t, resp.Results)
}

func TestMatchBatch_TooLarge(t *testing.T) {
	r := newMatchRouter(&stubMatcher{})

	var sb strings.Builder
	sb.WriteString(`{"queries":[`)
	for i := 0; i <= DefaultMaxBatchSize; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"name":"x","formula":"Y"}`)
	}
	sb.WriteString(`]}`)

	rec := postJSON(t, r, "/api/v1/compounds/match/batch", sb.String())
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMatchBatch_AbortMapsToGatewayTimeout(t *testing.T) {
	stub := &stubMatcher{
		allErr: errors.Wrap(context.Canceled, errors.ErrCodeTimeout, "batch aborted"),
	}
	r := newMatchRouter(stub)

	rec := postJSON(t, r, "/api/v1/compounds/match/batch",
		`{"queries":[{"name":"a","formula":"B"}]}`)
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "COMMON_004", resp.Code)
}
