// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/foodaware/internal/breaker"
	"github.com/tomtom215/foodaware/internal/config"
	"github.com/tomtom215/foodaware/internal/metrics"
)

// OpenWeatherClient queries the OpenWeatherMap current weather endpoint.
type OpenWeatherClient struct {
	client  *http.Client
	apiKey  string
	baseURL string
	limiter *rate.Limiter
	cb      *breaker.Breaker[*owmResponse]
	logger  zerolog.Logger
}

// owmResponse is the subset of /data/2.5/weather the service reads.
type owmResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

type owmErrorResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

// NewOpenWeatherClient creates a client from cfg. RateLimit is requests per
// second with a burst of one.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewOpenWeatherClient(cfg *config.WeatherConfig, logger zerolog.Logger) *OpenWeatherClient {
	l := logger.With().Str("component", "openweather").Logger()
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenWeatherClient{
		client:  &http.Client{Timeout: timeout},
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: rate.NewLimiter(limit, 1),
		cb:      breaker.New[*owmResponse](breaker.DefaultConfig("openweather"), l),
		logger:  l,
	}
}

// Current implements Provider.
func (c *OpenWeatherClient) Current(ctx context.Context, city string) (Report, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Report{}, ErrEmptyCity
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return Report{}, fmt.Errorf("weather rate limiter: %w", err)
	}

	result, err := c.cb.Execute(func() (*owmResponse, error) {
		return c.query(ctx, city)
	})
	metrics.RecordWeatherLookup(SourceOpenWeather, err)
	if err != nil {
		return Report{}, err
	}
	if len(result.Weather) == 0 {
		return Report{}, fmt.Errorf("OpenWeatherMap returned no conditions for %s", city)
	}

	return Report{
		City:      city,
		Condition: MapCondition(result.Weather[0].Main),
		TempC:     roundTenth(result.Main.Temp),
		Source:    SourceOpenWeather,
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (c *OpenWeatherClient) query(ctx context.Context, city string) (*owmResponse, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	endpoint := c.baseURL + "/data/2.5/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query OpenWeatherMap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp owmErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return nil, fmt.Errorf("OpenWeatherMap error (status %d): %s", resp.StatusCode, errResp.Message)
		}
		return nil, fmt.Errorf("OpenWeatherMap returned status %d", resp.StatusCode)
	}

	var result owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode OpenWeatherMap response: %w", err)
	}
	return &result, nil
}
