package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"l14flow/pkg/layout"
	"l14flow/pkg/text"
)

func TestDefaults(t *testing.T) {
	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 800.0, cfg.Viewport.Width)
	assert.Equal(t, 600.0, cfg.Viewport.Height)
	assert.True(t, cfg.Layout.Parallel)
	assert.Equal(t, float64(layout.DefaultOverflowInflation), cfg.Layout.OverflowInflation)
	assert.Equal(t, "console", cfg.Logger.Format)

	m, err := cfg.Measurer()
	require.NoError(t, err)
	assert.IsType(t, text.EstimateMeasurer{}, m)
}

func TestConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "l14flow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
viewport:
  width: 1024
layout:
  workers: 3
  overflow_inflation: 12.5
logger:
  format: json
`), 0o644))
	t.Setenv("L14FLOW_VIEWPORT_HEIGHT", "900")

	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)

	opts := cfg.LayoutOptions()
	assert.Equal(t, layout.Options{
		ViewportWidth:     1024,
		ViewportHeight:    900,
		Parallel:          true,
		Workers:           3,
		OverflowInflation: 12.5,
	}, opts)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestMissingExplicitConfigFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateCollectsEveryError(t *testing.T) {
	cfg := Config{
		Viewport: ViewportConfig{Width: 0, Height: -1},
		Layout:   LayoutConfig{Workers: -2, OverflowInflation: -1},
		Logger:   LoggerConfig{Format: "xml"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 5)
}
