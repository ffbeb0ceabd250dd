package core

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateSteamRoot_FirstExistingDirectoryWins(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/home/user/.local/share/Steam", 0o755))
	require.NoError(t, fs.MkdirAll("/home/user/.var/app/com.valvesoftware.Steam/data/Steam", 0o755))
	writeFile(t, fs, "/home/user/.steam/steam", "not a directory")

	root, err := LocateSteamRoot(fs, []string{
		"",
		"/home/user/.steam/steam",
		"/home/user/.local/share/Steam",
		"/home/user/.var/app/com.valvesoftware.Steam/data/Steam",
	})
	assert.NoError(t, err)
	assert.Equal(t, "/home/user/.local/share/Steam", root)
}

func TestLocateSteamRoot_NotFound(t *testing.T) {
	fs := afero.NewMemMapFs()

	root, err := LocateSteamRoot(fs, []string{"/a", "/b"})
	assert.Empty(t, root)
	assert.True(t, errors.Is(err, ErrSteamNotFound))
	assert.Contains(t, err.Error(), "/a, /b")

	_, err = LocateSteamRoot(fs, nil)
	assert.True(t, errors.Is(err, ErrSteamNotFound))
}

func TestDefaultSteamRootCandidates(t *testing.T) {
	for _, c := range DefaultSteamRootCandidates() {
		assert.NotEmpty(t, c)
	}
}
