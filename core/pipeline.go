package core

import (
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

type BuildOptions struct {
	// Parallelism bounds the number of libraries scanned at once. Values
	// below 2 scan sequentially.
	Parallelism int
}

// Report is everything one discovery pass learned about a Steam root.
type Report struct {
	Root           string
	Libraries      []string
	Catalog        *Catalog
	ManifestErrors []*ManifestError
	// RegistryErr is set when libraryfolders.vdf could not be used; the
	// catalog then only covers the root library.
	RegistryErr error
}

// BuildCatalog discovers the libraries of root, scans them and aggregates
// the result.
func BuildCatalog(fs afero.Fs, root string, opts BuildOptions) *Report {
	libraries, regErr := ReadLibraries(fs, root)
	if regErr != nil {
		ErrorLogger.Println(regErr)
	}
	InfoLogger.Printf("scanning %d library folder(s) under %s", len(libraries), root)

	scans := ScanLibraries(fs, libraries, opts.Parallelism)
	catalog, errs := Aggregate(scans)
	InfoLogger.Printf("catalog holds %d game(s), %d manifest(s) skipped", catalog.Len(), len(errs))

	return &Report{
		Root:           libraries[0],
		Libraries:      libraries,
		Catalog:        catalog,
		ManifestErrors: errs,
		RegistryErr:    regErr,
	}
}

// ScanLibraries scans every library and returns the scans in the order of
// libraries, regardless of the order in which they finish.
func ScanLibraries(fs afero.Fs, libraries []string, parallelism int) []LibraryScan {
	scans := make([]LibraryScan, len(libraries))
	if parallelism < 2 {
		for i, lib := range libraries {
			scans[i] = LibraryScan{Library: lib, Results: Scan(fs, lib)}
		}
		return scans
	}

	var g errgroup.Group
	g.SetLimit(parallelism)
	for i, lib := range libraries {
		i, lib := i, lib
		g.Go(func() error {
			scans[i] = LibraryScan{Library: lib, Results: Scan(fs, lib)}
			return nil
		})
	}
	_ = g.Wait()
	return scans
}
