package core

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"steamshelf/keyvalues"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_TeamFortress(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/lib/steamapps/appmanifest_440.acf",
		`"AppState" { "appid" "440" "name" "Team Fortress 2" "StateFlags" "4" "installdir" "Team Fortress 2" }`)

	results := Scan(fs, "/lib")
	require.Len(t, results, 1)
	require.Nil(t, results[0].Err)

	g := results[0].Game
	assert.Equal(t, uint32(440), g.AppID)
	assert.Equal(t, "Team Fortress 2", g.Name)
	assert.Equal(t, "Team Fortress 2", g.InstallDir)
	assert.Equal(t, StateFullyInstalled, g.State)
	assert.Equal(t, uint32(4), g.StateFlags)
	assert.Nil(t, g.SizeOnDisk)
	assert.Equal(t, "/lib", g.Library)
	assert.Equal(t, "/lib/steamapps/appmanifest_440.acf", g.ManifestPath)
}

func TestScan_BrokenManifestsDoNotHideOthers(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeManifest(t, fs, "/lib", 10, "Counter-Strike", 4)
	writeManifest(t, fs, "/lib", 70, "Half-Life", 6)
	writeManifest(t, fs, "/lib", 400, "Portal", 1026)
	writeFile(t, fs, "/lib/steamapps/appmanifest_20.acf", `"AppState" { "appid" "20" "name" "Team Fortress`)
	writeFile(t, fs, "/lib/steamapps/appmanifest_30.acf", `"AppState" { "appid" "30" "StateFlags" "4" "installdir" "dod" }`)
	writeFile(t, fs, "/lib/steamapps/appmanifest_40.acf", `"AppState" { "appid" "forty" "name" "Deathmatch Classic" "StateFlags" "4" "installdir" "dmc" }`)
	writeFile(t, fs, "/lib/steamapps/appmanifest_50.acf", `"Other" { }`)
	// not manifests
	writeFile(t, fs, "/lib/steamapps/appmanifest_abc.acf", "garbage")
	writeFile(t, fs, "/lib/steamapps/libraryfolders.vdf", "garbage")
	require.NoError(t, fs.MkdirAll("/lib/steamapps/common/appmanifest_60.acf", 0o755))

	results := Scan(fs, "/lib")
	require.Len(t, results, 7)

	var ok, failed []uint32
	for _, r := range results {
		if r.Err != nil {
			assert.Nil(t, r.Game)
			failed = append(failed, r.Err.AppID)
			continue
		}
		ok = append(ok, r.Game.AppID)
	}
	assert.Equal(t, []uint32{10, 400, 70}, ok)
	assert.Equal(t, []uint32{20, 30, 40, 50}, failed)

	byID := map[uint32]*ManifestError{}
	for _, r := range results {
		if r.Err != nil {
			byID[r.Err.AppID] = r.Err
		}
	}
	var perr *keyvalues.ParseError
	assert.True(t, errors.As(byID[20], &perr))
	assert.True(t, errors.Is(byID[30], errMissingField))
	assert.Contains(t, byID[30].Error(), `"name"`)
	assert.True(t, errors.Is(byID[40], errMalformedField))
	assert.True(t, errors.Is(byID[50], errNoAppState))
	assert.Equal(t, filepath.Join("/lib", "steamapps", "appmanifest_50.acf"), byID[50].Path)
}

func TestScan_OptionalFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeManifest(t, fs, "/lib", 220, "Half-Life 2", 4)
	writeFile(t, fs, "/lib/steamapps/appmanifest_240.acf", `"appstate"
{
	"AppID"		"240"
	"Name"		"Counter-Strike: Source"
	"stateflags"		"6"
	"InstallDir"		"Counter-Strike Source"
	"SizeOnDisk"		"lots"
	"buildid"		"0"
	"LastUpdated"		"yesterday"
	"SomethingNew"		{ "x" "y" }
}`)

	results := Scan(fs, "/lib")
	require.Len(t, results, 2)

	hl2 := results[0].Game
	require.NotNil(t, hl2)
	require.NotNil(t, hl2.SizeOnDisk)
	assert.Equal(t, uint64(220*1024), *hl2.SizeOnDisk)
	assert.Equal(t, "12345", hl2.BuildID)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), hl2.LastUpdated)

	css := results[1].Game
	require.NotNil(t, css)
	assert.Equal(t, uint32(240), css.AppID)
	assert.Equal(t, StateUpdatePending, css.State)
	assert.Nil(t, css.SizeOnDisk)
	assert.Empty(t, css.BuildID)
	assert.True(t, css.LastUpdated.IsZero())
}

func TestScan_MissingManifestDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/empty", 0o755))

	assert.Empty(t, Scan(fs, "/empty"))
	assert.Empty(t, Scan(fs, "/does/not/exist"))
}

func TestScan_ManifestDirIsAFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/lib/steamapps", "not a directory")

	results := Scan(fs, "/lib")
	require.Len(t, results, 1)
	require.NotNil(t, results[0].Err)
	assert.Equal(t, "/lib/steamapps", results[0].Err.Path)
}

func TestReadManifestTree(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeManifest(t, fs, "/lib", 440, "Team Fortress 2", 4)

	tree, err := ReadManifestTree(fs, "/lib/steamapps/appmanifest_440.acf")
	require.NoError(t, err)
	state, ok := tree.Get("AppState")
	require.True(t, ok)
	universe, ok := state.String("Universe")
	assert.True(t, ok)
	assert.Equal(t, "1", universe)

	_, err = ReadManifestTree(fs, "/lib/steamapps/appmanifest_1.acf")
	assert.Error(t, err)
}
