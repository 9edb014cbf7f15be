package furshell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGameConfig_MissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadGameConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultGameConfig(), cfg)

	// The defaults are persisted for the user to edit.
	_, err = os.Stat(path)
	assert.NoError(t, err)

	again, err := LoadGameConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadGameConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	want := GameConfig{
		Fullscreen:       true,
		Monitor:          "DP-1",
		MouseSensitivity: 0.25,
		Width:            2560,
		Height:           1440,
	}
	require.NoError(t, SaveGameConfig(path, want))

	got, err := LoadGameConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadGameConfig_InvalidSizeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"width": 0, "height": -5}`), 0644))

	cfg, err := LoadGameConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultGameConfig().Width, cfg.Width)
	assert.Equal(t, DefaultGameConfig().Height, cfg.Height)
}

func TestLoadGameConfig_MalformedJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	_, err := LoadGameConfig(path)
	assert.Error(t, err)
}
