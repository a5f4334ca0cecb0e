// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

// Package places finds restaurants near a location through the Google
// Places nearby search API.
package places

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/breaker"
	"github.com/tomtom215/foodaware/internal/config"
	"github.com/tomtom215/foodaware/internal/metrics"
)

// Restaurant is one nearby search result. Rating is nil when Google has
// none.
type Restaurant struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Rating  *float64 `json:"rating"`
}

// Searcher finds restaurants.
type Searcher interface {
	Nearby(ctx context.Context, location, keyword string) []Restaurant
}

// Client calls the nearby search endpoint. Failures are logged and yield an
// empty list.
type Client struct {
	client  *http.Client
	apiKey  string
	baseURL string
	radius  int
	cb      *breaker.Breaker[[]Restaurant]
	logger  zerolog.Logger
}

type nearbyResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Name     string   `json:"name"`
		Vicinity string   `json:"vicinity"`
		Rating   *float64 `json:"rating"`
	} `json:"results"`
}

// NewClient creates a client from cfg.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewClient(cfg *config.PlacesConfig, logger zerolog.Logger) *Client {
	l := logger.With().Str("component", "places").Logger()
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	radius := cfg.Radius
	if radius <= 0 {
		radius = 1500
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		radius:  radius,
		cb:      breaker.New[[]Restaurant](breaker.DefaultConfig("google-places"), l),
		logger:  l,
	}
}

// Nearby implements Searcher. location is "lat,lng".
func (c *Client) Nearby(ctx context.Context, location, keyword string) []Restaurant {
	if c.apiKey == "" {
		return []Restaurant{}
	}

	out, err := c.cb.Execute(func() ([]Restaurant, error) {
		return c.search(ctx, location, keyword)
	})
	metrics.RecordPlacesRequest(err)
	if err != nil {
		c.logger.Warn().Err(err).Str("location", location).Str("keyword", keyword).Msg("restaurant search failed")
		return []Restaurant{}
	}
	return out
}

func (c *Client) search(ctx context.Context, location, keyword string) ([]Restaurant, error) {
	q := url.Values{}
	q.Set("location", location)
	q.Set("radius", strconv.Itoa(c.radius))
	q.Set("type", "restaurant")
	q.Set("keyword", keyword)
	q.Set("key", c.apiKey)
	endpoint := c.baseURL + "/maps/api/place/nearbysearch/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query Google Places: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google Places returned status %d", resp.StatusCode)
	}

	var body nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode Google Places response: %w", err)
	}

	// ZERO_RESULTS is a valid empty answer.
	if body.Status != "" && body.Status != "OK" && body.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("google Places error (%s): %s", body.Status, body.ErrorMessage)
	}

	out := make([]Restaurant, 0, len(body.Results))
	for _, r := range body.Results {
		out = append(out, Restaurant{Name: r.Name, Address: r.Vicinity, Rating: r.Rating})
	}
	return out, nil
}
