// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package algorithms

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/recommend"
)

// Content strategy names.
const (
	StrategyTFIDF        = "tfidf"
	StrategyCuisineMatch = "cuisine_match"
)

// ContentConfig contains configuration for the content-based filter.
type ContentConfig struct {
	// RandomScoreMin and RandomScoreMax bound the scores given by the
	// random-sample and cuisine-match fallbacks.
	// Default: 0.5 and 0.9.
	RandomScoreMin float64
	RandomScoreMax float64
}

// ContentBased ranks foods by TF-IDF cosine similarity between their
// metadata and a query built from the user's preferences, dietary
// restrictions, the weather and the mood.
type ContentBased struct {
	BaseFilter
	config ContentConfig
	data   recommend.DataProvider
	model  *tfidfModel
}

// NewContentBased creates a content-based filter reading from data.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewContentBased(data recommend.DataProvider, cfg ContentConfig, logger zerolog.Logger) *ContentBased {
	if cfg.RandomScoreMax <= cfg.RandomScoreMin {
		cfg.RandomScoreMin, cfg.RandomScoreMax = 0.5, 0.9
	}
	return &ContentBased{
		BaseFilter: NewBaseFilter(recommend.FilterContent, logger),
		config:     cfg,
		data:       data,
	}
}

// contentState carries what the primary strategy loaded to the fallbacks.
type contentState struct {
	user  models.User
	foods []models.FoodItem
}

// Recommend implements recommend.Filter.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (c *ContentBased) Recommend(ctx context.Context, req recommend.FilterRequest) recommend.FilterResult {
	if req.N <= 0 {
		return emptyResult()
	}

	st := &contentState{}
	return recommend.NewChain(c.name, c.logger,
		recommend.Strategy{
			Name: StrategyTFIDF,
			Run: func(ctx context.Context) ([]recommend.Candidate, error) {
				return c.rankBySimilarity(ctx, req, st)
			},
		},
		recommend.Strategy{
			Name:    recommend.StrategyRandomSample,
			Handles: recommend.On(recommend.ErrUnknownUser),
			Run: func(ctx context.Context) ([]recommend.Candidate, error) {
				return c.randomSample(ctx, req)
			},
		},
		recommend.Strategy{
			Name:    StrategyCuisineMatch,
			Handles: recommend.On(recommend.ErrVectorizer),
			Run: func(context.Context) ([]recommend.Candidate, error) {
				return c.cuisineMatch(req, st), nil
			},
		},
		recommend.EmptyStrategy(),
	).Run(ctx)
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (c *ContentBased) rankBySimilarity(ctx context.Context, req recommend.FilterRequest, st *contentState) ([]recommend.Candidate, error) {
	if c.data == nil {
		return nil, recommend.ErrNoProvider
	}

	user, found, err := c.data.LookupUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("user %q: %w", req.UserID, recommend.ErrUnknownUser)
	}

	foods, err := c.data.ListFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	if len(foods) == 0 {
		return nil, fmt.Errorf("catalog: %w", recommend.ErrNoData)
	}
	st.user, st.foods = user, foods

	model, err := c.fittedModel(foods)
	if err != nil {
		return nil, err
	}

	sims := model.similarities(buildQuery(&user, req.Weather, req.Mood))
	out := make([]recommend.Candidate, len(foods))
	for i := range foods {
		out[i] = recommend.CandidateFromFood(&foods[i], sims[i])
	}

	recommend.SortByScore(out)
	return recommend.TopN(out, req.N), nil
}

// buildQuery joins the user's preferences with the current context.
func buildQuery(u *models.User, weather, mood string) string {
	return strings.Join(u.CuisinePreferences, " ") + " " +
		strings.Join(u.DietaryRestrictions, " ") + " " + weather + " " + mood
}

// fittedModel returns the cached vectorizer, refitting when the catalog changed.
func (c *ContentBased) fittedModel(foods []models.FoodItem) (*tfidfModel, error) {
	fp := catalogFingerprint(foods)

	c.mu.RLock()
	if c.isCurrent(fp) {
		m := c.model
		c.mu.RUnlock()
		return m, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isCurrent(fp) {
		return c.model, nil
	}

	docs := make([]string, len(foods))
	for i := range foods {
		docs[i] = itemDocument(&foods[i])
	}
	m, err := fitTFIDF(docs)
	if err != nil {
		return nil, err
	}
	c.model = m
	c.markFitted(fp)
	c.logger.Debug().
		Int("documents", len(docs)).
		Int("vocabulary", len(m.vocabulary)).
		Msg("tfidf vectorizer fitted")
	return m, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (c *ContentBased) randomSample(ctx context.Context, req recommend.FilterRequest) ([]recommend.Candidate, error) {
	foods, err := c.data.ListFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	if len(foods) == 0 {
		return nil, fmt.Errorf("catalog: %w", recommend.ErrNoData)
	}

	rng := recommend.RequestRand(req, c.name)
	sample := recommend.SampleFoods(rng, foods, req.N)
	out := make([]recommend.Candidate, len(sample))
	for i := range sample {
		out[i] = recommend.CandidateFromFood(&sample[i], recommend.Uniform(rng, c.config.RandomScoreMin, c.config.RandomScoreMax))
	}
	recommend.SortByScore(out)
	return out, nil
}

// cuisineMatch keeps foods whose cuisine the user prefers, pads with random
// other foods, scores everything randomly and keeps the best N.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (c *ContentBased) cuisineMatch(req recommend.FilterRequest, st *contentState) []recommend.Candidate {
	prefs := make(map[string]struct{}, len(st.user.CuisinePreferences))
	for _, p := range st.user.CuisinePreferences {
		prefs[strings.ToLower(p)] = struct{}{}
	}

	var matched, rest []models.FoodItem
	for i := range st.foods {
		if _, ok := prefs[strings.ToLower(st.foods[i].Cuisine)]; ok {
			matched = append(matched, st.foods[i])
		} else {
			rest = append(rest, st.foods[i])
		}
	}

	rng := recommend.RequestRand(req, c.name+"/"+StrategyCuisineMatch)
	if len(matched) < req.N {
		matched = append(matched, recommend.SampleFoods(rng, rest, req.N-len(matched))...)
	}

	out := make([]recommend.Candidate, len(matched))
	for i := range matched {
		out[i] = recommend.CandidateFromFood(&matched[i], recommend.Uniform(rng, c.config.RandomScoreMin, c.config.RandomScoreMax))
	}
	recommend.SortByScore(out)
	return recommend.TopN(out, req.N)
}
