package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"steamshelf/keyvalues"

	"github.com/spf13/afero"
)

var appManifestPattern = regexp.MustCompile(`^` + appManifestPrefix + `(\d+)\` + appManifestExtension + `$`)

// ScanResult holds either a parsed game or the reason its manifest was
// skipped.
type ScanResult struct {
	Game *Game
	Err  *ManifestError
}

// ManifestDir is the directory holding the appmanifest files of library.
func ManifestDir(library string) string {
	return filepath.Join(library, SteamAppsDir)
}

// Scan reads every appmanifest in library. A broken manifest produces an
// error entry and never hides the others. A library without a steamapps
// directory has nothing installed and yields no results.
func Scan(fs afero.Fs, library string) []ScanResult {
	dir := ManifestDir(library)
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return []ScanResult{{Err: &ManifestError{Path: dir, Err: err}}}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !appManifestPattern.MatchString(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	results := make([]ScanResult, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		game, err := ReadGameManifest(fs, path, library)
		if err != nil {
			ErrorLogger.Println(err)
			results = append(results, ScanResult{Err: err})
			continue
		}
		results = append(results, ScanResult{Game: game})
	}
	return results
}

// ReadGameManifest parses a single appmanifest file belonging to library.
func ReadGameManifest(fs afero.Fs, path, library string) (*Game, *ManifestError) {
	fileID := appIDFromFileName(filepath.Base(path))
	fail := func(err error) (*Game, *ManifestError) {
		return nil, &ManifestError{Path: path, AppID: fileID, Err: err}
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fail(err)
	}
	tree, err := keyvalues.Parse(string(data))
	if err != nil {
		return fail(err)
	}
	game, err := gameFromTree(tree)
	if err != nil {
		return fail(err)
	}
	game.Library = library
	game.ManifestPath = path
	return game, nil
}

// ReadManifestTree returns the raw parsed tree of an appmanifest file.
func ReadManifestTree(fs afero.Fs, path string) (*keyvalues.Node, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	tree, err := keyvalues.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

func appIDFromFileName(name string) uint32 {
	m := appManifestPattern.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	id, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return 0
	}
	return uint32(id)
}

func gameFromTree(tree *keyvalues.Node) (*Game, error) {
	state, ok := tree.Lookup("AppState")
	if !ok || state.IsLeaf() {
		return nil, errNoAppState
	}

	required := func(key string) (string, error) {
		v, ok := state.String(key)
		if !ok || v == "" {
			return "", fmt.Errorf("%w %q", errMissingField, key)
		}
		return v, nil
	}
	requiredUint32 := func(key string) (uint32, error) {
		v, err := required(key)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w %q: %q is not a number", errMalformedField, key, v)
		}
		return uint32(n), nil
	}

	appID, err := requiredUint32("appid")
	if err != nil {
		return nil, err
	}
	name, err := required("name")
	if err != nil {
		return nil, err
	}
	installDir, err := required("installdir")
	if err != nil {
		return nil, err
	}
	flags, err := requiredUint32("StateFlags")
	if err != nil {
		return nil, err
	}

	game := &Game{
		AppID:      appID,
		Name:       name,
		InstallDir: installDir,
		State:      DeriveInstallState(flags),
		StateFlags: flags,
	}

	// Optional fields; unreadable values are left unset.
	if v, ok := state.String("SizeOnDisk"); ok {
		if size, err := strconv.ParseUint(v, 10, 64); err == nil {
			game.SizeOnDisk = &size
		}
	}
	if v, ok := state.String("buildid"); ok && v != "0" {
		game.BuildID = v
	}
	if v, ok := state.String("LastUpdated"); ok {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil && secs > 0 {
			game.LastUpdated = time.Unix(secs, 0).UTC()
		}
	}
	return game, nil
}
