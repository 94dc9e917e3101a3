package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/texit/internal/config"
)

func TestInitConfig_ReadsSettingsFile(t *testing.T) {
	t.Cleanup(resetForTesting)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "theme": "purple",
  "autosave_secs": 60
}`), 0o600))

	cfgFile = path
	initConfig()

	require.Equal(t, "purple", cfg.Theme)
	require.Equal(t, 60, cfg.AutosaveSecs)
	// Unset keys keep their defaults.
	require.Equal(t, config.Defaults().FontFamily, cfg.FontFamily)
}

func TestInitConfig_CorruptFileFallsBackToDefaults(t *testing.T) {
	t.Cleanup(resetForTesting)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json at all`), 0o600))

	cfgFile = path
	initConfig()

	require.Equal(t, config.Defaults(), cfg)
}

func TestInitConfig_NormalizesOutOfRangeValues(t *testing.T) {
	t.Cleanup(resetForTesting)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "theme": "mauve",
  "autosave_secs": 9999
}`), 0o600))

	cfgFile = path
	initConfig()

	require.Equal(t, config.Defaults().Theme, cfg.Theme)
	require.Equal(t, 300, cfg.AutosaveSecs)
}

func TestThemesCommand_ListsPresets(t *testing.T) {
	t.Cleanup(resetForTesting)
	cfg = config.Defaults()

	var buf bytes.Buffer
	themesCmd.SetOut(&buf)
	require.NoError(t, themesCmd.RunE(themesCmd, nil))

	out := buf.String()
	require.Contains(t, out, "blue")
	require.Contains(t, out, "green")
	require.Contains(t, out, "purple")
	require.Contains(t, out, "* blue")
}

func TestRootCommand_RejectsExtraArgs(t *testing.T) {
	err := rootCmd.Args(rootCmd, []string{"a.txt", "b.txt"})
	require.Error(t, err)
}
