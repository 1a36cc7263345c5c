// Package config loads JSON-serializable engine tuning parameters,
// mirroring the teacher's internal/config.TuningConfig: every field is
// a pointer so a partial JSON document can override only the knobs it
// names, leaving the rest at DefaultEngineConfig's compiled-in values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// EngineConfig mirrors dyclee.Engine's tunables for JSON-file-driven
// construction (dyclee.NewFromConfig).
type EngineConfig struct {
	Phi          *float64      `json:"phi,omitempty"`
	TGlobal      *int64        `json:"t_global,omitempty"`
	PyramidAlpha *int          `json:"pyramid_alpha,omitempty"`
	PyramidL     *int          `json:"pyramid_l,omitempty"`
	Context      *[][2]float64 `json:"context,omitempty"`
	Ordinal      *[]bool       `json:"ordinal,omitempty"`
}

// DefaultEngineConfig returns the compiled-in defaults used when no
// tuning file is supplied or a field is omitted from one.
func DefaultEngineConfig() EngineConfig {
	phi := 0.06
	tGlobal := int64(2000)
	alpha := 2
	l := 5
	return EngineConfig{
		Phi:          &phi,
		TGlobal:      &tGlobal,
		PyramidAlpha: &alpha,
		PyramidL:     &l,
	}
}

// LoadEngineConfig loads an EngineConfig from a JSON file, validating
// its extension and size the same way the teacher's LoadTuningConfig
// does, then overlaying it on DefaultEngineConfig for any omitted field.
func LoadEngineConfig(path string) (*EngineConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config: tuning file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("config: failed to stat tuning file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config: tuning file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read tuning file: %w", err)
	}

	cfg := DefaultEngineConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse tuning JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid tuning configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks every set field for a value the engine could
// actually construct a Context/Archive from.
func (c *EngineConfig) Validate() error {
	if c.Phi != nil && (*c.Phi <= 0 || *c.Phi > 1) {
		return fmt.Errorf("phi must be in (0,1], got %v", *c.Phi)
	}
	if c.TGlobal != nil && *c.TGlobal < 1 {
		return fmt.Errorf("t_global must be >= 1, got %d", *c.TGlobal)
	}
	if c.PyramidAlpha != nil && *c.PyramidAlpha < 2 {
		return fmt.Errorf("pyramid_alpha must be >= 2, got %d", *c.PyramidAlpha)
	}
	if c.PyramidL != nil && *c.PyramidL < 0 {
		return fmt.Errorf("pyramid_l must be >= 0, got %d", *c.PyramidL)
	}
	if c.Context != nil {
		for i, b := range *c.Context {
			if b[1] <= b[0] {
				return fmt.Errorf("context dimension %d has non-positive range [%v,%v]", i, b[0], b[1])
			}
		}
	}
	return nil
}
