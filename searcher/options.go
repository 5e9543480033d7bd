package searcher

import (
	"time"

	"creatures/eval"
	"creatures/experiments/metrics"
)

type Option func(e *Engine)

// WithClock replaces time.Now, e.g. with a stepping clock for reproducible searches.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithSeed seeds every tier's evaluation jitter.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.seeded = true
	}
}

func WithTTCapacity(capacity int) Option {
	return func(e *Engine) {
		if capacity > 0 {
			e.ttCapacity = capacity
		}
	}
}

func WithEvalCacheCapacity(capacity int) Option {
	return func(e *Engine) {
		if capacity > 0 {
			e.evalCapacity = capacity
		}
	}
}

func WithMetrics() Option {
	return func(e *Engine) {
		e.metrics = metrics.NewCollector()
	}
}

// WithTierConfig overrides the settings of cfg.Tier.
func WithTierConfig(cfg TierConfig) Option {
	return func(e *Engine) {
		if cfg.Tier.Valid() {
			e.tiers[cfg.Tier] = cfg
		}
	}
}

func defaultTiers() map[eval.Tier]TierConfig {
	tiers := make(map[eval.Tier]TierConfig, len(eval.Tiers))
	for _, t := range eval.Tiers {
		tiers[t] = DefaultTierConfig(t)
	}
	return tiers
}
