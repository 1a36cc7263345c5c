package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piratevector/dyclee/internal/config"
)

func TestDefaultEngineConfig_IsValid(t *testing.T) {
	cfg := config.DefaultEngineConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate cleanly: %v", err)
	}
}

func TestLoadEngineConfig_PartialOverrideKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.json")
	if err := os.WriteFile(path, []byte(`{"phi":0.1}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadEngineConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Phi)
	require.NotNil(t, cfg.TGlobal)
	require.InDelta(t, 0.1, *cfg.Phi, 1e-9, "phi should be overridden")
	require.Equal(t, int64(2000), *cfg.TGlobal, "t_global should keep the default")
}

func TestLoadEngineConfig_RejectsNonJSONExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.txt")
	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadEngineConfig(path); err == nil {
		t.Fatal("expected an error for a non-.json extension")
	}
}

func TestLoadEngineConfig_RejectsInvalidPhi(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.json")
	if err := os.WriteFile(path, []byte(`{"phi":1.5}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadEngineConfig(path); err == nil {
		t.Fatal("expected a validation error for phi > 1")
	}
}
