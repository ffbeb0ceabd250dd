package core

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"steamshelf/keyvalues"

	"github.com/spf13/afero"
)

// RegistryPath is where Steam keeps the list of library folders for root.
func RegistryPath(root string) string {
	return filepath.Join(root, SteamAppsDir, LibraryRegistryFile)
}

// ReadLibraries returns the library folders configured under root. The root
// itself is always the first entry. Folders listed in the registry but
// missing on disk are dropped.
//
// A registry that cannot be read or interpreted yields a *ReaderError
// together with the root-only list, so callers can continue. A single entry
// without a path is logged and skipped.
func ReadLibraries(fs afero.Fs, root string) ([]string, error) {
	root = normalizeLibraryPath(fs, root, "")
	libraries := []string{root}

	path := RegistryPath(root)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return libraries, nil
		}
		return libraries, &ReaderError{Path: path, Err: err}
	}

	tree, err := keyvalues.Parse(string(data))
	if err != nil {
		return libraries, &ReaderError{Path: path, Err: err}
	}

	listed, err := decodeLibraryFolders(tree)
	if err != nil {
		return libraries, &ReaderError{Path: path, Err: err}
	}

	seen := map[string]bool{root: true}
	for _, p := range listed {
		p = normalizeLibraryPath(fs, p, root)
		if seen[p] {
			continue
		}
		seen[p] = true

		if ok, err := afero.DirExists(fs, p); err != nil || !ok {
			InfoLogger.Printf("skipping library %s: folder does not exist", p)
			continue
		}
		libraries = append(libraries, p)
	}
	return libraries, nil
}

// decodeLibraryFolders extracts library paths from both registry layouts:
//
//	"libraryfolders" { "1" "D:\\SteamLibrary" }              (legacy)
//	"libraryfolders" { "1" { "path" "D:\\SteamLibrary" } }   (current)
//
// Non-numeric keys carry registry metadata and are ignored.
func decodeLibraryFolders(tree *keyvalues.Node) ([]string, error) {
	folders, ok := tree.Lookup("libraryfolders")
	if !ok || folders.IsLeaf() {
		return nil, errors.New(`no "libraryfolders" block`)
	}

	var paths []string
	for _, e := range folders.Entries() {
		if _, err := strconv.ParseUint(e.Key, 10, 32); err != nil {
			continue
		}
		if p, ok := libraryPathFromFlat(e.Node); ok {
			paths = append(paths, p)
			continue
		}
		if p, ok := libraryPathFromIndexed(e.Node); ok {
			paths = append(paths, p)
			continue
		}
		ErrorLogger.Printf("ignoring library entry %q: no path", e.Key)
	}
	return paths, nil
}

func libraryPathFromFlat(n *keyvalues.Node) (string, bool) {
	if !n.IsLeaf() || n.Value() == "" {
		return "", false
	}
	return n.Value(), true
}

func libraryPathFromIndexed(n *keyvalues.Node) (string, bool) {
	if n.IsLeaf() {
		return "", false
	}
	p, ok := n.String("path")
	return p, ok && p != ""
}

func normalizeLibraryPath(fs afero.Fs, p, root string) string {
	if !filepath.IsAbs(p) && root != "" {
		p = filepath.Join(root, p)
	}
	return canonicalPath(fs, p)
}
