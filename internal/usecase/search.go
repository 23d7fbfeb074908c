package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"DonationsTracker/internal/aggregate"
	"DonationsTracker/internal/domain"
	"DonationsTracker/internal/match"
	"DonationsTracker/internal/normalize"
	"DonationsTracker/internal/source"
)

// SearchDeps wires the adapter registry into the search use case.
type SearchDeps struct {
	Registry       *source.Registry
	AdapterTimeout time.Duration
	Logger         *slog.Logger
}

// Search runs one query across every jurisdiction concurrently and joins the
// results into an aggregated report. Each adapter gets an independent
// deadline; one jurisdiction failing or timing out never cancels the others.
type Search struct {
	registry *source.Registry
	timeout  time.Duration
	logger   *slog.Logger
}

// NewSearch constructs the orchestration component.
func NewSearch(deps SearchDeps) *Search {
	timeout := deps.AdapterTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Search{
		registry: deps.Registry,
		timeout:  timeout,
		logger:   deps.Logger,
	}
}

// Run executes the full pipeline for one query. It returns only after every
// adapter reached a terminal state; per-jurisdiction failures are carried
// inside the report, not returned as errors.
func (s *Search) Run(ctx context.Context, query string) (domain.AggregatedReport, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.AggregatedReport{}, fmt.Errorf("query must not be empty")
	}

	jurisdictions := domain.AllJurisdictions()
	results := make([]domain.JurisdictionResult, len(jurisdictions))

	var wg sync.WaitGroup
	for i, j := range jurisdictions {
		adapter, err := s.registry.Resolve(j)
		if err != nil {
			results[i] = domain.JurisdictionResult{Jurisdiction: j, FetchErr: err}
			continue
		}

		wg.Add(1)
		go func(slot int, adapter source.Adapter) {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			results[slot] = s.collect(fetchCtx, adapter, query)
		}(i, adapter)
	}
	wg.Wait()

	return aggregate.Build(query, results), nil
}

// collect runs one adapter to its terminal state: rows fetched, normalized,
// and matched, or a fetch error captured for that jurisdiction alone.
func (s *Search) collect(ctx context.Context, adapter source.Adapter, query string) domain.JurisdictionResult {
	j := adapter.Jurisdiction()

	rows, err := adapter.Fetch(ctx, query)
	if err != nil {
		s.warn("fetch failed", "jurisdiction", j, "error", err)
		return domain.JurisdictionResult{Jurisdiction: j, FetchErr: err}
	}

	records, skipped := normalize.Records(j, rows)

	matched := make([]domain.DonationRecord, 0, len(records))
	for _, record := range records {
		if match.Matches(record.DonorName, query) {
			matched = append(matched, record)
		}
	}

	s.debug("jurisdiction done",
		"jurisdiction", j, "rows", len(rows), "matched", len(matched), "skipped", skipped)

	return domain.JurisdictionResult{
		Jurisdiction: j,
		Records:      matched,
		SkippedRows:  skipped,
	}
}

func (s *Search) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Search) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
