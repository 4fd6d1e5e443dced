package config

import (
	"os"
	"path/filepath"
	"testing"

	"nexachart/internal/features/chart"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, chart.KindLine, cfg.Chart.Kind)
	assert.Equal(t, 200.0, cfg.Chart.Height)
	assert.Equal(t, 600.0, cfg.Chart.Width)
	assert.Equal(t, 2.0, cfg.Chart.DevicePixelRatio)
	assert.True(t, cfg.Chart.ShowGrid)
	assert.True(t, cfg.Chart.ShowTooltip)
	assert.Equal(t, "etc/charts", cfg.Output.Dir)
	assert.Equal(t, 500, cfg.Chart.BaseCacheMin)
	assert.Error(t, cfg.ValidateTelegram())
}

func TestLoad_FileEnvAndFlagsLayer(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	yaml := []byte(`chart:
  kind: bar
  height: 320
  label: Staking rewards
  show_grid: false
telegram:
  bot_token: file-token
  chat_id: 42
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0644))
	t.Setenv("CHART_LABEL", "From env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--chart.height=250"}))

	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, chart.KindBar, cfg.Chart.Kind)
	assert.Equal(t, 250.0, cfg.Chart.Height, "flag beats file")
	assert.Equal(t, "From env", cfg.Chart.Label, "env beats file")
	assert.False(t, cfg.Chart.ShowGrid)
	assert.NoError(t, cfg.ValidateTelegram())
	assert.Equal(t, int64(42), cfg.Telegram.ChatID)
}

func TestLoad_RejectsUnsupportedKind(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CHART_KIND", "pie")

	_, err := Load(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
