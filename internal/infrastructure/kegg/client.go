// Package kegg is a thin client for the KEGG REST API, covering the two
// operations compound matching needs: finding compound IDs by molecular
// formula and fetching a compound's flat-file record.
//
// The client deliberately does no retrying and no caching; batch callers
// pace themselves instead, out of courtesy to the public KEGG servers.
package kegg

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/openmetab/keggmatch/internal/domain/compound"
	"github.com/openmetab/keggmatch/internal/infrastructure/monitoring/logging"
	"github.com/openmetab/keggmatch/pkg/errors"
)

const (
	// DefaultBaseURL is the public KEGG REST endpoint.
	DefaultBaseURL = "https://rest.kegg.jp"

	// DefaultTimeout bounds a single KEGG request.
	DefaultTimeout = 30 * time.Second

	defaultUserAgent = "keggmatch/" + Version

	// Flat-file records pad field names to a fixed-width label column.
	recordLabelWidth = 12
)

// Version is the client version reported in the User-Agent header.
const Version = "0.1.0"

// Client talks to the KEGG REST API.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
	logger     logging.Logger
}

// NewClient creates a KEGG REST client. The zero configuration talks to the
// public endpoint with a 30s timeout.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: defaultUserAgent,
		logger:    logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidParam, "invalid KEGG base URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New(errors.CodeInvalidParam, "KEGG base URL scheme must be http or https")
	}
	c.baseURL = strings.TrimSuffix(c.baseURL, "/")

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

// FindByFormula returns the KEGG compound IDs whose FORMULA field equals the
// given formula exactly. KEGG's /find endpoint matches formulas partially
// (C7H10O5 also returns C7H10O5R2 entries), so the response is filtered down
// to byte-exact equality before IDs are returned.
//
// An empty result is not an error; callers decide what "no candidates" means.
func (c *Client) FindByFormula(ctx context.Context, formula string) ([]compound.Candidate, error) {
	if strings.TrimSpace(formula) == "" {
		return nil, errors.New(errors.ErrCodeEmptyQuery, "formula must not be empty")
	}

	endpoint := fmt.Sprintf("%s/find/compound/%s/formula", c.baseURL, url.PathEscape(formula))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	candidates, err := parseFindResponse(body, formula)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("KEGG formula lookup",
		logging.String("formula", formula),
		logging.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

// FetchRecord retrieves and parses the flat-file record for a compound ID
// such as "C00031". A 404 from KEGG maps to ErrCodeKEGGNotFound.
func (c *Client) FetchRecord(ctx context.Context, id string) (*compound.Record, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New(errors.ErrCodeEmptyQuery, "compound ID must not be empty")
	}

	endpoint := fmt.Sprintf("%s/get/cpd:%s", c.baseURL, url.PathEscape(id))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	rec, err := parseRecord(body, id)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("KEGG record fetched",
		logging.String("id", id),
		logging.Int("names", len(rec.Names)),
	)
	return rec, nil
}

func (c *Client) get(ctx context.Context, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeKEGGUnavailable, "building KEGG request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeKEGGUnavailable, "KEGG request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", errors.New(errors.ErrCodeKEGGNotFound, "KEGG entry not found").
			WithDetail(endpoint)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.New(errors.ErrCodeKEGGBadStatus,
			"unexpected KEGG response status "+strconv.Itoa(resp.StatusCode)).
			WithDetail(endpoint)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeKEGGUnavailable, "reading KEGG response")
	}
	return string(b), nil
}

// parseFindResponse parses the TSV body of /find/compound/{q}/formula, each
// line "cpd:C00031\tC6H12O6", keeping only entries whose formula equals
// wantFormula exactly.
func parseFindResponse(body, wantFormula string) ([]compound.Candidate, error) {
	var candidates []compound.Candidate

	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		id, formula, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, errors.New(errors.ErrCodeKEGGParse, "malformed KEGG find line").
				WithDetail(line)
		}
		if formula != wantFormula {
			continue
		}
		candidates = append(candidates, compound.Candidate{
			ID: strings.TrimPrefix(id, "cpd:"),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeKEGGParse, "scanning KEGG find response")
	}
	return candidates, nil
}

// parseRecord parses a KEGG compound flat-file record. Lines start with a
// field label in a fixed-width column; continuation lines are indented.
// Only the NAME, FORMULA and EXACT_MASS fields are extracted. NAME entries
// are ';'-terminated and may span lines; the first entry is the compound's
// official name.
func parseRecord(body, id string) (*compound.Record, error) {
	rec := &compound.Record{ID: id}
	inName := false

	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		if line == "///" {
			break
		}

		label, value := splitRecordLine(line)
		if label != "" {
			inName = label == "NAME"
		}

		switch {
		case label == "NAME" || (label == "" && inName):
			name := strings.TrimSuffix(strings.TrimSpace(value), ";")
			if name != "" {
				rec.Names = append(rec.Names, name)
			}
		case label == "FORMULA":
			rec.Formula = strings.TrimSpace(value)
		case label == "EXACT_MASS":
			mass, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeKEGGParse, "parsing EXACT_MASS").
					WithDetail(value)
			}
			rec.ExactMass = mass
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeKEGGParse, "scanning KEGG record")
	}

	if len(rec.Names) == 0 && rec.Formula == "" {
		return nil, errors.New(errors.ErrCodeKEGGParse, "KEGG record has no NAME or FORMULA field").
			WithDetail(id)
	}
	return rec, nil
}

// splitRecordLine separates a flat-file line into its label and value. A
// line starting with whitespace is a continuation and has an empty label.
func splitRecordLine(line string) (label, value string) {
	if line == "" || line[0] == ' ' || line[0] == '\t' {
		return "", line
	}
	if len(line) <= recordLabelWidth {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:recordLabelWidth]), line[recordLabelWidth:]
}
