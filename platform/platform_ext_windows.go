//go:build windows

package platform

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sys/windows/registry"
)

func StripWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}

// steamPathFromRegistry returns the install path the Steam client records
// for the current user, or "" when it is not set.
func steamPathFromRegistry() string {
	key, err := registry.OpenKey(registry.CURRENT_USER, `SOFTWARE\Valve\Steam`, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer key.Close()

	steamPath, _, err := key.GetStringValue("SteamPath")
	if err != nil {
		return ""
	}
	return strings.ReplaceAll(steamPath, "/", "\\")
}

func SteamRootCandidates() []string {
	var candidates []string
	if p := steamPathFromRegistry(); p != "" {
		candidates = append(candidates, p)
	}

	for _, env := range []string{"ProgramFiles(x86)", "ProgramFiles"} {
		if dir := os.Getenv(env); dir != "" {
			candidates = append(candidates, filepath.Join(dir, "Steam"))
		}
	}
	return append(candidates, `C:\Program Files (x86)\Steam`)
}

func LaunchCommand(ctx context.Context, uri string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "cmd", "/c", "start", "", uri)
	StripWindow(cmd)
	return cmd
}
