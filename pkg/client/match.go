package client

import (
	"context"
)

// Query is a single compound lookup request.
type Query struct {
	Name    string `json:"name"`
	Formula string `json:"formula"`
}

// MatchResult mirrors the API's result object for one query.
type MatchResult struct {
	KEGGID     string   `json:"kegg_id,omitempty"`
	KEGGName   string   `json:"kegg_name,omitempty"`
	Similarity *float64 `json:"similarity,omitempty"`
	Status     string   `json:"status"`
	Err        string   `json:"error,omitempty"`
}

// HasMatch reports whether the result identifies a KEGG compound.
func (m MatchResult) HasMatch() bool {
	return m.Status == "auto_accepted" || m.Status == "needs_verification"
}

// MatchResponse pairs a query with its result.
type MatchResponse struct {
	Query  Query       `json:"query"`
	Result MatchResult `json:"result"`
}

// BatchMatchResponse carries one entry per query, in input order.
type BatchMatchResponse struct {
	Results []MatchResponse `json:"results"`
	Total   int             `json:"total"`
}

// HealthStatus is the healthz payload.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Match resolves a single compound name and formula.
func (c *Client) Match(ctx context.Context, q Query) (*MatchResponse, error) {
	var resp MatchResponse
	if err := c.post(ctx, "/api/v1/compounds/match", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MatchBatch resolves queries sequentially on the server. The server paces
// one upstream request per query, so the call blocks for roughly one pacing
// interval per query; size the context deadline accordingly.
func (c *Client) MatchBatch(ctx context.Context, queries []Query) (*BatchMatchResponse, error) {
	body := struct {
		Queries []Query `json:"queries"`
	}{Queries: queries}

	var resp BatchMatchResponse
	if err := c.post(ctx, "/api/v1/compounds/match/batch", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health reports the server's liveness status.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var resp HealthStatus
	if err := c.get(ctx, "/healthz", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
