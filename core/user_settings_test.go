package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", settingsFileName)

	settings := &UserSettings{SortOrder: SortBySize, SteamRoot: "/mnt/steam"}
	require.NoError(t, WriteUserSettings(path, settings))

	loaded, err := ReadUserSettings(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestReadUserSettings_Defaults(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadUserSettings(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, DefaultUserSettings(), ReadUserSettingsOrDefault(filepath.Join(dir, "missing.yaml")))

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	settings, err := ReadUserSettings(empty)
	require.NoError(t, err)
	assert.Equal(t, SortByName, settings.SortOrder)
	assert.Empty(t, settings.SteamRoot)
}

func TestReadUserSettings_Invalid(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"bad-yaml.yaml":  "sort_order: [",
		"bad-order.yaml": "sort_order: date\n",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := ReadUserSettings(path)
		assert.Error(t, err, name)
		assert.Equal(t, DefaultUserSettings(), ReadUserSettingsOrDefault(path), name)
	}
}
