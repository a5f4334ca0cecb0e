// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package algorithms

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/foodaware/internal/config"
	"github.com/tomtom215/foodaware/internal/recommend"
)

// EngineConfig converts application settings into engine settings. Zero
// values keep the engine defaults.
func EngineConfig(cfg *config.RecommendConfig) *recommend.Config {
	ec := recommend.DefaultConfig()
	if cfg == nil {
		return ec
	}
	if w := (recommend.FilterWeights{
		Collaborative: cfg.WeightCollaborative,
		Content:       cfg.WeightContent,
		Context:       cfg.WeightContext,
	}); w.Sum() > 0 {
		ec.Weights = w
	}
	if cfg.DefaultN > 0 {
		ec.Limits.DefaultN = cfg.DefaultN
	}
	if cfg.MaxN > 0 {
		ec.Limits.MaxN = cfg.MaxN
	}
	if cfg.CandidateMultiplier > 0 {
		ec.Limits.CandidateMultiplier = cfg.CandidateMultiplier
	}
	if cfg.FilterTimeout > 0 {
		ec.Limits.FilterTimeout = cfg.FilterTimeout
	}
	if cfg.Seed != 0 {
		ec.Seed = cfg.Seed
	}
	return ec
}

// BuildEngine creates an engine over data with the collaborative,
// content-based and context-aware filters registered.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func BuildEngine(cfg *config.RecommendConfig, data recommend.DataProvider, logger zerolog.Logger) (*recommend.Engine, error) {
	engine, err := recommend.NewEngine(EngineConfig(cfg), logger)
	if err != nil {
		return nil, err
	}
	engine.SetDataProvider(data)

	mf := DefaultMFConfig()
	if cfg != nil {
		mf.NumFactors = cfg.MFFactors
		mf.NumEpochs = cfg.MFEpochs
		mf.LearningRate = cfg.MFLearningRate
		mf.Regularization = cfg.MFRegularization
		if cfg.Seed != 0 {
			mf.Seed = cfg.Seed
		}
	}

	engine.RegisterFilter(NewCollaborative(data, CollaborativeConfig{MF: mf}, logger))
	engine.RegisterFilter(NewContentBased(data, ContentConfig{}, logger))
	engine.RegisterFilter(NewContextAware(data, ContextConfig{}, logger))

	logger.Debug().
		Float64("weight_collaborative", engine.GetConfig().Weights.Collaborative).
		Float64("weight_content", engine.GetConfig().Weights.Content).
		Float64("weight_context", engine.GetConfig().Weights.Context).
		Msg("recommendation engine ready")
	return engine, nil
}
