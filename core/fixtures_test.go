package core

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func appManifest(appID uint32, name string, flags int) string {
	return fmt.Sprintf(`"AppState"
{
	"appid"		"%d"
	"Universe"		"1"
	"name"		"%s"
	"StateFlags"		"%d"
	"installdir"		"%s"
	"LastUpdated"		"1700000000"
	"SizeOnDisk"		"%d"
	"buildid"		"12345"
}
`, appID, name, flags, name, uint64(appID)*1024)
}

func writeManifest(t *testing.T, fs afero.Fs, library string, appID uint32, name string, flags int) {
	t.Helper()
	path := filepath.Join(library, SteamAppsDir, fmt.Sprintf("appmanifest_%d.acf", appID))
	writeFile(t, fs, path, appManifest(appID, name, flags))
}

func registryFile(paths ...string) string {
	s := "\"libraryfolders\"\n{\n"
	for i, p := range paths {
		s += fmt.Sprintf("\t\"%d\"\n\t{\n\t\t\"path\"\t\t\"%s\"\n\t\t\"label\"\t\t\"\"\n\t}\n", i, p)
	}
	return s + "}\n"
}

func game(appID uint32, name, library string, state InstallState) *Game {
	return &Game{AppID: appID, Name: name, InstallDir: name, State: state, Library: library}
}
