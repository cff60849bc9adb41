package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kvisser/scrollto/internal/config"
)

func loadScroll(t *testing.T, path string) config.ScrollConfig {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	var cfg config.Config
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg.Scroll
}

func TestSaveScroll_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	scroll := config.ScrollConfig{
		Alignment:       0.5,
		DurationMS:      150,
		Curve:           "linear",
		Overscan:        4,
		EstimatedHeight: 2,
	}

	require.NoError(t, config.SaveScroll(path, scroll))
	assert.Equal(t, scroll, loadScroll(t, path))
}

func TestSaveScroll_ReplacesExistingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))

	scroll := config.ScrollConfig{
		Alignment:  1,
		DurationMS: 0,
		Curve:      "ease-out",
	}
	require.NoError(t, config.SaveScroll(path, scroll))

	got := loadScroll(t, path)
	assert.Equal(t, 1.0, got.Alignment)
	assert.Equal(t, 0, got.DurationMS)
	assert.Equal(t, "ease-out", got.Curve)
}

func TestSaveScroll_PreservesOtherSectionsAndComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	original := `# my tweaked setup
auto_reload: false
items: 42

scroll:
  alignment: 0.0
  duration_ms: 300
`
	require.NoError(t, os.WriteFile(path, []byte(original), 0o644))

	require.NoError(t, config.SaveScroll(path, config.ScrollConfig{
		Alignment:  0.5,
		DurationMS: 200,
		Curve:      "linear",
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# my tweaked setup")
	assert.Contains(t, text, "auto_reload: false")
	assert.Contains(t, text, "items: 42")

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	assert.Equal(t, false, parsed["auto_reload"])
}

func TestSaveScroll_RejectsInvalidSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := config.SaveScroll(path, config.ScrollConfig{Curve: "bounce"})

	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "invalid config must not be written")
}
