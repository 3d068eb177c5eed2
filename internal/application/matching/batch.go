package matching

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openmetab/keggmatch/internal/domain/compound"
	"github.com/openmetab/keggmatch/internal/infrastructure/monitoring/logging"
	"github.com/openmetab/keggmatch/internal/infrastructure/monitoring/prometheus"
	"github.com/openmetab/keggmatch/pkg/errors"
	"github.com/openmetab/keggmatch/pkg/tabular"
)

// Input column defaults, matching the headers metabolomics vendors export.
const (
	DefaultNameColumn    = "Standardized_Name"
	DefaultFormulaColumn = "Formula"

	// DefaultDelay paces sequential database requests. Public KEGG asks
	// clients to stay at or below roughly one request per second.
	DefaultDelay = time.Second
)

// Result column names appended to batch output.
const (
	ColKEGGID         = "KEGG_ID"
	ColKEGGName       = "KEGG_Name"
	ColKEGGSimilarity = "KEGG_Similarity"
	ColKEGGStatus     = "KEGG_Status"
)

// BatchConfig controls a table-matching run. Zero values take defaults.
type BatchConfig struct {
	NameColumn    string
	FormulaColumn string
	Delay         time.Duration
}

func (c BatchConfig) withDefaults() BatchConfig {
	if c.NameColumn == "" {
		c.NameColumn = DefaultNameColumn
	}
	if c.FormulaColumn == "" {
		c.FormulaColumn = DefaultFormulaColumn
	}
	if c.Delay <= 0 {
		c.Delay = DefaultDelay
	}
	return c
}

// MatchTable matches every row of t and returns a new table with the four
// result columns appended. Rows are processed sequentially in order, with a
// fixed delay between consecutive rows.
//
// Per-row lookup failures land in the row's result cells and processing
// continues. The whole run fails only when a required input column is
// missing or the context is cancelled.
func (s *Service) MatchTable(ctx context.Context, t *tabular.Table, cfg BatchConfig) (*tabular.Table, error) {
	cfg = cfg.withDefaults()

	if missing := t.MissingColumns(cfg.NameColumn, cfg.FormulaColumn); len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeMissingColumn, "input table is missing required columns").
			WithDetail(strings.Join(missing, ", "))
	}

	runID := uuid.NewString()
	log := s.logger.With(logging.String("run_id", runID))
	log.Info("batch match started",
		logging.Int("rows", t.Len()),
		logging.String("name_column", cfg.NameColumn),
		logging.String("formula_column", cfg.FormulaColumn),
		logging.Duration("delay", cfg.Delay),
	)

	if s.metrics != nil {
		s.metrics.BatchActiveRuns.WithLabelValues().Inc()
		defer s.metrics.BatchActiveRuns.WithLabelValues().Dec()
		defer prometheus.NewTimer(s.metrics.BatchDuration.WithLabelValues()).ObserveDuration()
	}

	counts := make(map[compound.MatchStatus]int, 4)
	cells := make([][]string, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if i > 0 {
			if err := sleepOrAbort(ctx, cfg.Delay); err != nil {
				return nil, err
			}
		}

		name, _ := t.Value(i, cfg.NameColumn)
		formula, _ := t.Value(i, cfg.FormulaColumn)
		res := s.Match(ctx, compound.Query{Name: name, Formula: formula})

		s.metrics.RecordBatchRow(res.Status.String())
		counts[res.Status]++
		cells = append(cells, resultCells(res))

		log.Info("batch row done",
			logging.Int("row", i),
			logging.Int("total", t.Len()),
			logging.String("name", name),
			logging.String("status", res.Status.String()),
		)
	}

	out, err := t.WithColumns(
		[]string{ColKEGGID, ColKEGGName, ColKEGGSimilarity, ColKEGGStatus},
		cells,
	)
	if err != nil {
		return nil, err
	}

	log.Info("batch match finished",
		logging.Int("rows", t.Len()),
		logging.Int("auto_accepted", counts[compound.StatusAutoAccepted]),
		logging.Int("needs_verification", counts[compound.StatusNeedsVerification]),
		logging.Int("no_match", counts[compound.StatusNoMatch]),
		logging.Int("errors", counts[compound.StatusError]),
	)
	return out, nil
}

// MatchAll matches queries sequentially with the same pacing as MatchTable,
// returning one result per query in input order.
func (s *Service) MatchAll(ctx context.Context, queries []compound.Query, delay time.Duration) ([]compound.MatchResult, error) {
	if delay <= 0 {
		delay = DefaultDelay
	}

	results := make([]compound.MatchResult, 0, len(queries))
	for i, q := range queries {
		if i > 0 {
			if err := sleepOrAbort(ctx, delay); err != nil {
				return nil, err
			}
		}
		results = append(results, s.Match(ctx, q))
	}
	return results, nil
}

func sleepOrAbort(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), errors.ErrCodeTimeout, "batch aborted")
	}
}

// resultCells renders a MatchResult into the four appended columns. Absent
// values stay empty so spreadsheet filters behave predictably.
func resultCells(res compound.MatchResult) []string {
	sim := ""
	if res.Similarity != nil {
		sim = strconv.FormatFloat(*res.Similarity, 'f', 4, 64)
	}
	return []string{res.KEGGID, res.KEGGName, sim, res.Status.String()}
}
