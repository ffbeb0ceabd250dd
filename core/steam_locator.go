package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"steamshelf/platform"

	"github.com/spf13/afero"
)

const (
	SteamAppsDir         = "steamapps"
	LibraryRegistryFile  = "libraryfolders.vdf"
	appManifestPrefix    = "appmanifest_"
	appManifestExtension = ".acf"
)

// DefaultSteamRootCandidates returns the conventional install locations for
// the running operating system, most likely first.
func DefaultSteamRootCandidates() []string {
	return platform.SteamRootCandidates()
}

// LocateSteamRoot returns the first candidate that is an existing
// directory, with symlinks resolved. It fails with ErrSteamNotFound when
// none is.
func LocateSteamRoot(fs afero.Fs, candidates []string) (string, error) {
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if ok, err := afero.DirExists(fs, candidate); err == nil && ok {
			return canonicalPath(fs, candidate), nil
		}
	}
	return "", fmt.Errorf("%w (looked in: %s)", ErrSteamNotFound, strings.Join(candidates, ", "))
}

// canonicalPath makes p absolute. On the OS filesystem it also resolves
// symlinks, since ~/.steam/steam usually links to the folder Steam records
// in libraryfolders.vdf.
func canonicalPath(fs afero.Fs, p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = filepath.Clean(p)
	}
	if _, ok := fs.(*afero.OsFs); ok {
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			return resolved
		}
	}
	return abs
}
