package core

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

type InstallState int

const (
	StateUnknown InstallState = iota
	StateFullyInstalled
	StateUpdatePending
	StatePartiallyInstalled
)

var installStateNames = map[InstallState]string{
	StateUnknown:            "unknown",
	StateFullyInstalled:     "installed",
	StateUpdatePending:      "update-pending",
	StatePartiallyInstalled: "partial",
}

func (s InstallState) String() string {
	if name, ok := installStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("InstallState(%d)", int(s))
}

func (s InstallState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseInstallState accepts the names printed by String.
func ParseInstallState(name string) (InstallState, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for state, n := range installStateNames {
		if n == name {
			return state, nil
		}
	}
	return StateUnknown, fmt.Errorf("unknown install state %q (want installed, update-pending, partial or unknown)", name)
}

// Steam's EAppState bits as written to the StateFlags field of a manifest.
const (
	appStateUninstalled    = 1 << 0
	appStateUpdateRequired = 1 << 1
	appStateFullyInstalled = 1 << 2
	appStateEncrypted      = 1 << 3
	appStateLocked         = 1 << 4
	appStateFilesMissing   = 1 << 5
	appStateAppRunning     = 1 << 6
	appStateFilesCorrupt   = 1 << 7
	appStateUpdateRunning  = 1 << 8
	appStateUpdatePaused   = 1 << 9
	appStateUpdateStarted  = 1 << 10
	appStateUninstalling   = 1 << 11
	appStateBackupRunning  = 1 << 12
	appStateReconfiguring  = 1 << 16
	appStateValidating     = 1 << 17
	appStateAddingFiles    = 1 << 18
	appStatePreallocating  = 1 << 19
	appStateDownloading    = 1 << 20
	appStateStaging        = 1 << 21
	appStateCommitting     = 1 << 22
	appStateUpdateStopping = 1 << 23

	knownAppStateBits = appStateUninstalled | appStateUpdateRequired | appStateFullyInstalled |
		appStateEncrypted | appStateLocked | appStateFilesMissing | appStateAppRunning |
		appStateFilesCorrupt | appStateUpdateRunning | appStateUpdatePaused |
		appStateUpdateStarted | appStateUninstalling | appStateBackupRunning |
		appStateReconfiguring | appStateValidating | appStateAddingFiles |
		appStatePreallocating | appStateDownloading | appStateStaging |
		appStateCommitting | appStateUpdateStopping
)

// DeriveInstallState maps a StateFlags value to an InstallState.
//
// Exactly FullyInstalled is the only value treated as installed. Flags
// carrying bits Steam does not document map to StateUnknown. A missing
// fully-installed bit, or missing/corrupt files, marks a partial install;
// every other combination is an installed game with pending work.
func DeriveInstallState(flags uint32) InstallState {
	switch {
	case flags == appStateFullyInstalled:
		return StateFullyInstalled
	case flags == 0 || flags&^knownAppStateBits != 0:
		return StateUnknown
	case flags&appStateFullyInstalled == 0,
		flags&(appStateFilesMissing|appStateFilesCorrupt) != 0:
		return StatePartiallyInstalled
	default:
		return StateUpdatePending
	}
}

// Game is one installed app as described by its appmanifest file.
type Game struct {
	AppID       uint32       `json:"appid"`
	Name        string       `json:"name"`
	InstallDir  string       `json:"install_dir"`
	State       InstallState `json:"state"`
	StateFlags  uint32       `json:"state_flags"`
	SizeOnDisk  *uint64      `json:"size_on_disk,omitempty"`
	BuildID     string       `json:"build_id,omitempty"`
	LastUpdated time.Time    `json:"last_updated,omitzero"`
	// Library is the library folder the manifest was found in.
	Library string `json:"library"`
	// ManifestPath is the appmanifest file the record was read from.
	ManifestPath string `json:"manifest_path"`
}

// InstallPath is the directory holding the game's files.
func (g *Game) InstallPath() string {
	return filepath.Join(g.Library, SteamAppsDir, "common", g.InstallDir)
}

// LaunchURI is the identifier handed to the OS to start the game through
// the Steam client.
func (g *Game) LaunchURI() string {
	return fmt.Sprintf("steam://rungameid/%d", g.AppID)
}

// Launchable reports whether it is reasonable to suggest launching g.
func (g *Game) Launchable() bool {
	return g.State == StateFullyInstalled
}

// DisplayName falls back to the install folder when the manifest has no
// name.
func (g *Game) DisplayName() string {
	switch {
	case g.Name != "":
		return g.Name
	case g.InstallDir != "":
		return g.InstallDir
	default:
		return "a game with no name"
	}
}

func (g *Game) String() string {
	return fmt.Sprintf("%s (%d)", g.DisplayName(), g.AppID)
}
