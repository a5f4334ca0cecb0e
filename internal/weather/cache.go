// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/metrics"
)

const cacheKeyPrefix = "weather:"

// CachedProvider stores successful reports in Badger and serves them until
// their TTL expires.
type CachedProvider struct {
	next   Provider
	db     *badger.DB
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedProvider opens a Badger store at path, or in memory when path is
// empty, in front of next.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCachedProvider(next Provider, path string, ttl time.Duration, logger zerolog.Logger) (*CachedProvider, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open weather cache: %w", err)
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CachedProvider{
		next:   next,
		db:     db,
		ttl:    ttl,
		logger: logger.With().Str("component", "weather_cache").Logger(),
	}, nil
}

// Current implements Provider.
func (c *CachedProvider) Current(ctx context.Context, city string) (Report, error) {
	key := cacheKey(city)

	if r, ok := c.get(key); ok {
		metrics.RecordWeatherCache(true)
		r.Source = SourceCache
		return r, nil
	}
	metrics.RecordWeatherCache(false)

	r, err := c.next.Current(ctx, city)
	if err != nil {
		return Report{}, err
	}
	if err := c.set(key, &r); err != nil {
		c.logger.Warn().Err(err).Str("city", city).Msg("failed to cache weather report")
	}
	return r, nil
}

func (c *CachedProvider) get(key []byte) (Report, bool) {
	var r Report
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.logger.Warn().Err(err).Msg("weather cache read failed")
		}
		return Report{}, false
	}
	return r, true
}

func (c *CachedProvider) set(key []byte, r *Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key, data).WithTTL(c.ttl))
	})
}

// Close closes the Badger store.
func (c *CachedProvider) Close() error {
	return c.db.Close()
}

func cacheKey(city string) []byte {
	return []byte(cacheKeyPrefix + strings.ToLower(strings.TrimSpace(city)))
}
