// Package matching implements the compound matching workflow: normalize the
// incoming name and formula, search the compound database by formula, score
// each candidate's official name by edit-distance similarity and classify
// the best one against the acceptance threshold.
package matching

import (
	"context"
	"time"

	"github.com/openmetab/keggmatch/internal/domain/compound"
	"github.com/openmetab/keggmatch/internal/infrastructure/monitoring/logging"
	"github.com/openmetab/keggmatch/internal/infrastructure/monitoring/prometheus"
	"github.com/openmetab/keggmatch/pkg/errors"
)

// DefaultThreshold is the similarity score at or above which a match is
// auto-accepted instead of flagged for human verification.
const DefaultThreshold = 0.8

// CompoundDatabase is the external compound reference the matcher queries.
// The KEGG REST client implements it; tests substitute a fake.
type CompoundDatabase interface {
	FindByFormula(ctx context.Context, formula string) ([]compound.Candidate, error)
	FetchRecord(ctx context.Context, id string) (*compound.Record, error)
}

// Service matches free-text compound queries against the database.
type Service struct {
	db        CompoundDatabase
	threshold float64
	logger    logging.Logger
	metrics   *prometheus.AppMetrics
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithThreshold overrides the auto-accept similarity threshold.
func WithThreshold(threshold float64) ServiceOption {
	return func(s *Service) {
		s.threshold = threshold
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger logging.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics attaches application metrics. Without it the service records
// nothing.
func WithMetrics(metrics *prometheus.AppMetrics) ServiceOption {
	return func(s *Service) {
		s.metrics = metrics
	}
}

// NewService creates a matching Service over the given database.
func NewService(db CompoundDatabase, opts ...ServiceOption) (*Service, error) {
	if db == nil {
		return nil, errors.New(errors.CodeInvalidParam, "compound database is required")
	}

	s := &Service{
		db:        db,
		threshold: DefaultThreshold,
		logger:    logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.threshold < 0 || s.threshold > 1 {
		return nil, errors.Newf(errors.ErrCodeThresholdInvalid,
			"threshold %v is outside [0, 1]", s.threshold)
	}
	return s, nil
}

// Threshold returns the configured auto-accept threshold.
func (s *Service) Threshold() float64 {
	return s.threshold
}

// Match resolves one query to a MatchResult. Lookup failures become a result
// with StatusError rather than an error return, so one bad query never sinks
// a batch; the returned result always satisfies the MatchResult invariant.
func (s *Service) Match(ctx context.Context, q compound.Query) compound.MatchResult {
	start := time.Now()
	res := s.match(ctx, q)
	s.metrics.RecordMatch(res.Status.String(), res.Similarity, time.Since(start))

	if res.Status == compound.StatusError {
		s.logger.Warn("compound match failed",
			logging.String("name", q.Name),
			logging.String("formula", q.Formula),
			logging.String("error", res.Err),
		)
	} else {
		s.logger.Debug("compound matched",
			logging.String("name", q.Name),
			logging.String("formula", q.Formula),
			logging.String("status", res.Status.String()),
			logging.String("kegg_id", res.KEGGID),
		)
	}
	return res
}

func (s *Service) match(ctx context.Context, q compound.Query) compound.MatchResult {
	name := compound.NormalizeName(q.Name)
	formula := compound.NormalizeFormula(q.Formula)
	if formula == "" {
		return compound.NoMatch()
	}

	candidates, err := s.db.FindByFormula(ctx, formula)
	if err != nil {
		return compound.Failed(err)
	}
	if len(candidates) == 0 {
		return compound.NoMatch()
	}

	// Best candidate wins on strict improvement, so on a tie the candidate
	// encountered first is kept. Only the official name (the first listed)
	// is scored; synonyms identify the record but never compete.
	var (
		bestRec   *compound.Record
		bestScore float64
	)
	for _, cand := range candidates {
		rec, err := s.db.FetchRecord(ctx, cand.ID)
		if err != nil {
			return compound.Failed(err)
		}
		official := rec.OfficialName()
		if official == "" {
			continue
		}
		score := compound.Similarity(name, official)
		if bestRec == nil || score > bestScore {
			bestRec = rec
			bestScore = score
		}
	}
	if bestRec == nil {
		// Candidates existed but none carried a name.
		return compound.NoMatch()
	}

	return compound.Matched(bestRec.ID, bestRec.OfficialName(), bestScore, s.threshold)
}
