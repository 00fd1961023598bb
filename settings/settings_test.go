package settings_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oranginaround/bw-tui/settings"
)

func TestInitializeWithExplicitConfigFile(t *testing.T) {
	content := []byte(`
cli:
  path: /opt/tools/bw
clipboard:
  command: "xclip -selection clipboard"
  clear_after: 5
reveal:
  timeout: 0
`)
	configFile := filepath.Join(t.TempDir(), "bw-tui.yaml")
	require.NoError(t, os.WriteFile(configFile, content, 0o600))

	require.NoError(t, settings.Initialize(configFile))

	assert.Equal(t, "/opt/tools/bw", settings.CliPath())
	assert.Equal(t, "xclip -selection clipboard", settings.ClipboardCommand())
	assert.Equal(t, 5*time.Second, settings.ClipboardClearAfter())
	// Reveal timeout never goes below one second.
	assert.Equal(t, time.Second, settings.RevealTimeout())
	assert.True(t, settings.IconsEnabled())
}

func TestHomeHonorsOverrideVariable(t *testing.T) {
	custom := t.TempDir()
	t.Setenv(settings.HomeVariable, custom)
	assert.Equal(t, custom, settings.Home())
}
