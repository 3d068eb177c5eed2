package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)

	_, err = NewClient("ftp://example.com")
	assert.Error(t, err)

	c, err := NewClient("http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.baseURL)
}

func TestClient_Match(t *testing.T) {
	var gotPath, gotAgent, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")

		var q Query
		require.NoError(t, json.NewDecoder(r.Body).Decode(&q))
		assert.Equal(t, "D-Glucose", q.Name)

		sim := 1.0
		json.NewEncoder(w).Encode(MatchResponse{
			Query: q,
			Result: MatchResult{
				KEGGID:     "C00031",
				KEGGName:   "D-Glucose",
				Similarity: &sim,
				Status:     "auto_accepted",
			},
		})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	resp, err := c.Match(context.Background(), Query{Name: "D-Glucose", Formula: "C6H12O6"})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/compounds/match", gotPath)
	assert.Contains(t, gotAgent, "keggmatch-go-sdk/")
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "C00031", resp.Result.KEGGID)
	assert.True(t, resp.Result.HasMatch())
}

func TestClient_MatchBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/compounds/match/batch", r.URL.Path)

		var body struct {
			Queries []Query `json:"queries"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		resp := BatchMatchResponse{Total: len(body.Queries)}
		for _, q := range body.Queries {
			resp.Results = append(resp.Results, MatchResponse{
				Query:  q,
				Result: MatchResult{Status: "no_match"},
			})
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	resp, err := c.MatchBatch(context.Background(), []Query{
		{Name: "a", Formula: "CH4"},
		{Name: "b", Formula: "H2O"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "a", resp.Results[0].Query.Name)
	assert.False(t, resp.Results[0].Result.HasMatch())
}

func TestClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/healthz", r.URL.Path)
		json.NewEncoder(w).Encode(HealthStatus{Status: "ok", Version: "1.2.3", Uptime: "5s"})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	hs, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", hs.Status)
	assert.Equal(t, "1.2.3", hs.Version)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "COMMON_007",
			"message": "rate limit exceeded",
		})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.Match(context.Background(), Query{Formula: "C6H12O6"})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "COMMON_007", apiErr.Code)
	assert.True(t, apiErr.IsRateLimited())
	assert.False(t, apiErr.IsNotFound())
	assert.False(t, apiErr.IsServerError())
	assert.Contains(t, apiErr.Error(), "rate limit exceeded")
}

func TestClient_APIError_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.Health(context.Background())
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.True(t, apiErr.IsServerError())
	assert.Contains(t, apiErr.Message, "upstream exploded")
}

func TestClient_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err = c.Health(ctx)
	assert.Error(t, err)
}
