package fortress

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 800.0, cfg.Screen.Width)
	assert.Equal(t, 600.0, cfg.Screen.Height)
	assert.Equal(t, 550.0, cfg.GroundY())
	assert.Equal(t, 50.0, cfg.Physics.Gravity)
	assert.InDelta(t, 1.0/120, cfg.Physics.Step, 1e-12)
	assert.Equal(t, 10, cfg.Physics.Iterations)
	assert.Equal(t, KindLimits{Military: 5, Chinese: 1, Go: 3}, cfg.Piece.Limits)
	assert.Equal(t, 0.7, cfg.Piece.DestroyedFraction)
	assert.Equal(t, 2000.0, cfg.Projectile.MaxStrength)
	assert.Equal(t, 50.0, cfg.Projectile.ChargeRate)
	assert.Equal(t, 2*time.Second, cfg.Tip.Duration)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Store.Path)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Piece, cfg.Piece)
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := `
physics:
  gravity: 80
piece:
  limits:
    military: 7
tip:
  duration: 500ms
store:
  path: fortress.db
logLevel: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fortress.yaml"), []byte(yaml), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 80.0, cfg.Physics.Gravity)
	assert.Equal(t, 7, cfg.Piece.Limits.Military)
	assert.Equal(t, 1, cfg.Piece.Limits.Chinese, "unset keys keep their defaults")
	assert.Equal(t, 500*time.Millisecond, cfg.Tip.Duration)
	assert.Equal(t, "fortress.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fortress.yaml"), []byte("physics: [unclosed"), 0o644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestKindLimitsOf(t *testing.T) {
	l := KindLimits{Military: 1, Chinese: 2, Go: 3}
	assert.Equal(t, 1, l.Of(KindMilitary))
	assert.Equal(t, 2, l.Of(KindChinese))
	assert.Equal(t, 3, l.Of(KindGo))
	assert.Zero(t, l.Of(PieceKind(0)))
}
