// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/metrics"
	"github.com/tomtom215/foodaware/internal/models"
)

// Hybrid strategy names.
const (
	StrategyWeightedMerge = "weighted_merge"
	StrategyCatalogHead   = "catalog_head"
	StrategyPlaceholder   = "placeholder"
)

// filterOrder fixes the precedence used when merged candidates disagree on
// name, cuisine or category.
var filterOrder = map[string]int{
	FilterCollaborative: 0,
	FilterContent:       1,
	FilterContext:       2,
}

// Engine combines the registered filters into one ranked list.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	filters  []Filter
	filterMu sync.RWMutex

	dataProvider DataProvider

	requestCount  atomic.Int64
	fallbackCount atomic.Int64
	failureCount  atomic.Int64
}

// Stats is a snapshot of engine counters.
type Stats struct {
	RequestCount  int64    `json:"request_count"`
	FallbackCount int64    `json:"fallback_count"`
	FailureCount  int64    `json:"filter_failure_count"`
	Filters       []string `json:"filters"`
}

// NewEngine creates a new hybrid engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		filters: make([]Filter, 0, 3),
	}, nil
}

// SetDataProvider sets the store used for catalog backfill and fallbacks.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// RegisterFilter adds a filter to the ensemble.
func (e *Engine) RegisterFilter(f Filter) {
	e.filterMu.Lock()
	defer e.filterMu.Unlock()

	e.filters = append(e.filters, f)
	sort.SliceStable(e.filters, func(i, j int) bool {
		return rankOf(e.filters[i].Name()) < rankOf(e.filters[j].Name())
	})
	e.logger.Info().
		Str("filter", f.Name()).
		Msg("registered filter")
}

func rankOf(name string) int {
	if r, ok := filterOrder[name]; ok {
		return r
	}
	return len(filterOrder)
}

// getFilters returns a copy of the registered filters.
func (e *Engine) getFilters() []Filter {
	e.filterMu.RLock()
	defer e.filterMu.RUnlock()
	out := make([]Filter, len(e.filters))
	copy(out, e.filters)
	return out
}

// Recommend produces the hybrid ranking. It never fails; degraded inputs
// yield catalog or placeholder items instead.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) *Response {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	if req.N <= 0 {
		metrics.RecordHybrid(StrategyEmpty, 0, time.Since(start))
		return e.buildResponse(req, nil, nil, StrategyEmpty, start)
	}

	results := e.runFilters(ctx, req)

	catalog, catErr := e.loadCatalog(ctx)
	if catErr != nil {
		logger.Warn().Err(catErr).Msg("catalog unavailable")
	}

	chain := NewChain("hybrid", logger,
		Strategy{
			Name: StrategyWeightedMerge,
			Run: func(context.Context) ([]Candidate, error) {
				return e.weightedMerge(results, catalog, req.N)
			},
		},
		Strategy{
			Name:    StrategyCatalogHead,
			Handles: On(ErrNoData),
			Run: func(context.Context) ([]Candidate, error) {
				if catErr != nil {
					return nil, fmt.Errorf("catalog head: %w", catErr)
				}
				return e.catalogHead(catalog, req.N)
			},
		},
		Strategy{
			Name: StrategyPlaceholder,
			Run: func(context.Context) ([]Candidate, error) {
				return e.placeholders(req.N), nil
			},
		},
	)

	out := chain.Run(ctx)
	if out.Strategy != StrategyWeightedMerge {
		e.fallbackCount.Add(1)
	}

	resp := e.buildResponse(req, results, out.Candidates, out.Strategy, start)
	metrics.RecordHybrid(out.Strategy, len(resp.Items), time.Since(start))
	logger.Debug().
		Str("strategy", out.Strategy).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")
	return resp
}

// RecommendFilter runs a single registered filter. The result is truncated
// to req.N.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) RecommendFilter(ctx context.Context, name string, req Request) (FilterResult, error) {
	var target Filter
	for _, f := range e.getFilters() {
		if f.Name() == name {
			target = f
			break
		}
	}
	if target == nil {
		return FilterResult{}, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
	}

	req = e.prepareRequest(req)
	if req.N <= 0 {
		return FilterResult{Candidates: []Candidate{}, Strategy: StrategyEmpty}, nil
	}

	res := e.runSingleFilter(ctx, target, e.filterRequest(req, req.N))
	res.Candidates = TopN(res.Candidates, req.N)
	return res, nil
}

// prepareRequest applies the N cap and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.N > e.config.Limits.MaxN {
		req.N = e.config.Limits.MaxN
	}
	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Str("weather", req.Weather).
		Str("mood", req.Mood).
		Int("n", req.N).
		Logger()
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) filterRequest(req Request, n int) FilterRequest {
	return FilterRequest{
		UserID:  req.UserID,
		Weather: req.Weather,
		Mood:    req.Mood,
		N:       n,
		Seed:    e.config.Seed,
	}
}

// filterOutcome holds the result of a single filter call.
type filterOutcome struct {
	name   string
	result FilterResult
}

// runFilters calls every filter in parallel for a widened candidate pool.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) runFilters(ctx context.Context, req Request) []filterOutcome {
	filters := e.getFilters()
	freq := e.filterRequest(req, req.N*e.config.Limits.CandidateMultiplier)

	results := make([]filterOutcome, len(filters))
	var wg sync.WaitGroup

	for i, f := range filters {
		wg.Add(1)
		go func(idx int, flt Filter) {
			defer wg.Done()
			results[idx] = filterOutcome{
				name:   flt.Name(),
				result: e.runSingleFilter(ctx, flt, freq),
			}
		}(i, f)
	}

	wg.Wait()
	return results
}

// runSingleFilter isolates one filter call behind a timeout and a panic
// guard. Any failure yields an empty contribution recorded as StrategyNone.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) runSingleFilter(ctx context.Context, f Filter, req FilterRequest) (res FilterResult) {
	start := time.Now()
	// Registered first so it observes the result set by the panic guard.
	defer func() {
		metrics.RecordFilterDuration(f.Name(), time.Since(start))
		metrics.RecordFilterStrategy(f.Name(), res.Strategy)
	}()

	fctx, cancel := context.WithTimeout(ctx, e.config.Limits.FilterTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			e.failureCount.Add(1)
			e.logger.Error().
				Str("filter", f.Name()).
				Interface("panic", r).
				Msg("filter panicked")
			res = FilterResult{Candidates: []Candidate{}, Strategy: StrategyNone}
		}
	}()

	res = f.Recommend(fctx, req)
	if fctx.Err() != nil {
		e.failureCount.Add(1)
		e.logger.Warn().
			Str("filter", f.Name()).
			Err(fctx.Err()).
			Msg("filter timed out")
		return FilterResult{Candidates: []Candidate{}, Strategy: StrategyNone}
	}
	if res.Candidates == nil {
		res.Candidates = []Candidate{}
	}
	return res
}

// loadCatalog fetches the catalog used for backfill and fallbacks.
func (e *Engine) loadCatalog(ctx context.Context) ([]models.FoodItem, error) {
	if e.dataProvider == nil {
		return nil, ErrNoProvider
	}
	foods, err := e.dataProvider.ListFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return foods, nil
}

// weightedMerge sums weighted filter scores per food. Returns ErrNoData
// when no filter produced a candidate.
func (e *Engine) weightedMerge(results []filterOutcome, catalog []models.FoodItem, n int) ([]Candidate, error) {
	weights := e.config.Weights.ToMap()
	index := make(map[string]*models.FoodItem, len(catalog))
	for i := range catalog {
		if _, dup := index[catalog[i].FoodID]; !dup {
			index[catalog[i].FoodID] = &catalog[i]
		}
	}

	merged := make(map[string]*Candidate)
	for _, r := range results {
		w := weights[r.name]
		if w <= 0 || len(r.result.Candidates) == 0 {
			continue
		}
		for _, c := range r.result.Candidates {
			e.mergeCandidate(merged, index, c, w)
		}
	}

	if len(merged) == 0 {
		return nil, ErrNoData
	}

	out := make([]Candidate, 0, len(merged))
	for _, c := range merged {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].FoodID < out[j].FoodID
	})
	return TopN(out, n), nil
}

// mergeCandidate adds one weighted contribution. Descriptive fields keep
// the first non-empty value seen.
func (e *Engine) mergeCandidate(merged map[string]*Candidate, index map[string]*models.FoodItem, c Candidate, weight float64) {
	score := c.Score
	if !c.HasScore {
		score = 1.0
	}

	if f, ok := index[c.FoodID]; ok {
		c.Name = firstNonEmpty(c.Name, f.Name)
		c.Cuisine = firstNonEmpty(c.Cuisine, f.Cuisine)
		c.Category = firstNonEmpty(c.Category, f.Category)
	}

	m, ok := merged[c.FoodID]
	if !ok {
		m = &Candidate{FoodID: c.FoodID, HasScore: true}
		merged[c.FoodID] = m
	}
	m.Score += weight * score
	m.Name = firstNonEmpty(m.Name, c.Name)
	m.Cuisine = firstNonEmpty(m.Cuisine, c.Cuisine)
	m.Category = firstNonEmpty(m.Category, c.Category)
}

// catalogHead returns the first n catalog items at a neutral score.
func (e *Engine) catalogHead(catalog []models.FoodItem, n int) ([]Candidate, error) {
	if len(catalog) == 0 {
		return nil, fmt.Errorf("catalog head: %w", ErrNoData)
	}
	if n > len(catalog) {
		n = len(catalog)
	}
	out := make([]Candidate, n)
	for i := 0; i < n; i++ {
		out[i] = CandidateFromFood(&catalog[i], e.config.Fallback.CatalogScore)
	}
	return out, nil
}

// placeholders fabricates n items, numbered from 1, when the catalog
// cannot be read.
func (e *Engine) placeholders(n int) []Candidate {
	unknown := e.config.Fallback.UnknownField
	out := make([]Candidate, n)
	for i := 0; i < n; i++ {
		out[i] = Candidate{
			FoodID:   fmt.Sprintf("f%d", i+1),
			Name:     fmt.Sprintf("Food %d", i+1),
			Cuisine:  unknown,
			Category: unknown,
			Score:    e.config.Fallback.PlaceholderScore,
			HasScore: true,
		}
	}
	return out
}

// buildResponse converts the winning candidates into recommendations.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponse(req Request, results []filterOutcome, items []Candidate, strategy string, start time.Time) *Response {
	unknown := e.config.Fallback.UnknownField
	recs := make([]models.Recommendation, 0, len(items))
	for _, c := range items {
		recs = append(recs, models.Recommendation{
			FoodID:   c.FoodID,
			Name:     firstNonEmpty(c.Name, unknown),
			Cuisine:  firstNonEmpty(c.Cuisine, unknown),
			Category: firstNonEmpty(c.Category, unknown),
			Score:    c.Score,
		})
	}

	strategies := make(map[string]string, len(results))
	used := make([]string, 0, len(results))
	for _, r := range results {
		strategies[r.name] = r.result.Strategy
		if len(r.result.Candidates) > 0 {
			used = append(used, r.name)
		}
	}

	return &Response{
		Items: recs,
		Metadata: ResponseMetadata{
			RequestID:        req.RequestID,
			UserID:           req.UserID,
			Weather:          req.Weather,
			Mood:             req.Mood,
			Strategy:         strategy,
			FilterStrategies: strategies,
			FiltersUsed:      used,
			LatencyMS:        time.Since(start).Milliseconds(),
			Timestamp:        time.Now(),
		},
	}
}

// GetStats returns the current engine counters.
func (e *Engine) GetStats() Stats {
	filters := e.getFilters()
	names := make([]string, len(filters))
	for i, f := range filters {
		names[i] = f.Name()
	}
	return Stats{
		RequestCount:  e.requestCount.Load(),
		FallbackCount: e.fallbackCount.Load(),
		FailureCount:  e.failureCount.Load(),
		Filters:       names,
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
