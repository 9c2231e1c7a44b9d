package scorer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1.0, cfg.CSRWeight)
	assert.Equal(t, 2.0, cfg.SolvencyWeight)
	assert.Equal(t, 2500.0, cfg.PremiumDivisor)
	assert.Equal(t, 3, cfg.TopN)
	assert.NoError(t, Validate(cfg))
}

func TestValidate_Rejects(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PremiumDivisor = 0
	cfg.TopN = 0

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "premium_divisor must be > 0")
	assert.Contains(t, err.Error(), "top_n must be > 0")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ranker:
  solvency_weight: 3
  top_n: 5
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.SolvencyWeight)
	assert.Equal(t, 5, cfg.TopN)
	// Absent keys keep defaults.
	assert.Equal(t, 2500.0, cfg.PremiumDivisor)
	assert.Equal(t, 1.0, cfg.CSRWeight)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("absent.yaml")
	require.Error(t, err)
}
