package dyclee

import (
	"fmt"

	"github.com/piratevector/dyclee/core"
	"github.com/piratevector/dyclee/internal/config"
)

// NewFromConfig builds an Engine from a JSON-tunable EngineConfig,
// giving callers driving DyClee from a tuning file (internal/config)
// the same entry point New's functional options provide directly.
func NewFromConfig(cfg config.EngineConfig) (*Engine, error) {
	if cfg.Context == nil {
		return nil, fmt.Errorf("dyclee: config must set context: %w", core.ErrBadConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("dyclee: %w: %v", core.ErrBadConfig, err)
	}

	defaults := config.DefaultEngineConfig()
	phi := *defaults.Phi
	if cfg.Phi != nil {
		phi = *cfg.Phi
	}
	alpha := *defaults.PyramidAlpha
	if cfg.PyramidAlpha != nil {
		alpha = *cfg.PyramidAlpha
	}
	l := *defaults.PyramidL
	if cfg.PyramidL != nil {
		l = *cfg.PyramidL
	}

	opts := []Option{WithPyramid(alpha, l)}
	if cfg.TGlobal != nil {
		opts = append(opts, WithTGlobal(*cfg.TGlobal))
	}
	if cfg.Ordinal != nil {
		opts = append(opts, WithOrdinal(*cfg.Ordinal))
	}

	return New(phi, *cfg.Context, opts...)
}
