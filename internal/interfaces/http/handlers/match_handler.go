package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openmetab/keggmatch/internal/domain/compound"
)

// Matcher is the application service the handlers call.
// *matching.Service implements it.
type Matcher interface {
	Match(ctx context.Context, q compound.Query) compound.MatchResult
	MatchAll(ctx context.Context, queries []compound.Query, delay time.Duration) ([]compound.MatchResult, error)
	Threshold() float64
}

// MatchHandler serves the compound matching endpoints.
type MatchHandler struct {
	matcher Matcher

	// batchDelay paces the upstream database requests of a batch call.
	batchDelay time.Duration
	// maxBatchSize bounds a single batch request.
	maxBatchSize int
}

// DefaultMaxBatchSize bounds the number of queries in one batch request.
// At one upstream request per second a full batch already takes minutes.
const DefaultMaxBatchSize = 500

// NewMatchHandler creates a MatchHandler.
func NewMatchHandler(matcher Matcher, batchDelay time.Duration) *MatchHandler {
	if batchDelay <= 0 {
		batchDelay = time.Second
	}
	return &MatchHandler{
		matcher:      matcher,
		batchDelay:   batchDelay,
		maxBatchSize: DefaultMaxBatchSize,
	}
}

// MatchRequest is the body of POST /api/v1/compounds/match.
type MatchRequest struct {
	Name    string `json:"name"`
	Formula string `json:"formula" binding:"required"`
}

// MatchResponse wraps a single match result together with its input.
type MatchResponse struct {
	Query  compound.Query       `json:"query"`
	Result compound.MatchResult `json:"result"`
}

// Match handles POST /api/v1/compounds/match.
func (h *MatchHandler) Match(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	q := compound.Query{Name: req.Name, Formula: req.Formula}
	res := h.matcher.Match(c.Request.Context(), q)

	c.JSON(http.StatusOK, MatchResponse{Query: q, Result: res})
}

// BatchMatchRequest is the body of POST /api/v1/compounds/match/batch.
// An empty query list is answered with an empty result list.
type BatchMatchRequest struct {
	Queries []compound.Query `json:"queries"`
}

// BatchMatchResponse carries one response entry per query, in input order.
type BatchMatchResponse struct {
	Results []MatchResponse `json:"results"`
	Total   int             `json:"total"`
}

// MatchBatch handles POST /api/v1/compounds/match/batch. Queries run
// sequentially with the configured pacing delay; clients needing more than
// maxBatchSize rows should use the CLI.
func (h *MatchHandler) MatchBatch(c *gin.Context) {
	var req BatchMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if len(req.Queries) == 0 {
		c.JSON(http.StatusOK, BatchMatchResponse{Results: []MatchResponse{}})
		return
	}
	if len(req.Queries) > h.maxBatchSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Code:    "COMMON_002",
			Message: "batch exceeds maximum size",
		})
		return
	}

	results, err := h.matcher.MatchAll(c.Request.Context(), req.Queries, h.batchDelay)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := BatchMatchResponse{
		Results: make([]MatchResponse, len(results)),
		Total:   len(results),
	}
	for i, res := range results {
		resp.Results[i] = MatchResponse{Query: req.Queries[i], Result: res}
	}
	c.JSON(http.StatusOK, resp)
}
