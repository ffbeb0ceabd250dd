package core

import (
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Platform is the runtime a game's launchers are built for.
type Platform string

const (
	PlatformNative Platform = "native"
	PlatformWine   Platform = "wine"
)

var (
	nativeLauncherExtensions = []string{".sh", ".x86", ".x86_64"}
	wineLauncherExtensions   = []string{".exe"}
)

// Launchers lists the files in the top level of dir that look like they
// start the game: shell scripts, x86 binaries, Windows executables, or a
// file named after dir itself. Uninstallers are left out. A missing dir has
// no launchers.
func Launchers(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if exists, _ := afero.DirExists(fs, dir); !exists {
			return nil, nil
		}
		return nil, err
	}

	var launchers []string
	for _, entry := range entries {
		if entry.IsDir() || !isLauncher(entry.Name(), filepath.Base(dir)) {
			continue
		}
		launchers = append(launchers, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(launchers)
	return launchers, nil
}

// InferPlatform returns the platform shared by every launcher. It is ""
// when there are none, or when they disagree or cannot be classified.
func InferPlatform(launchers []string) Platform {
	if len(launchers) == 0 {
		return ""
	}
	first := launcherPlatform(launchers[0])
	for _, l := range launchers[1:] {
		if launcherPlatform(l) != first {
			return ""
		}
	}
	return first
}

func isLauncher(name, dirName string) bool {
	if strings.Contains(strings.ToLower(name), "uninstall") {
		return false
	}
	return launcherPlatform(name) != "" || name == dirName
}

func launcherPlatform(name string) Platform {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case slices.Contains(nativeLauncherExtensions, ext):
		return PlatformNative
	case slices.Contains(wineLauncherExtensions, ext):
		return PlatformWine
	default:
		return ""
	}
}
