//go:build !linux && !darwin && !windows

package platform

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
)

func SteamRootCandidates() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(homeDir, ".steam", "steam"),
		filepath.Join(homeDir, ".local", "share", "Steam"),
	}
}

func LaunchCommand(ctx context.Context, uri string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "xdg-open", uri)
	StripWindow(cmd)
	return cmd
}

func StripWindow(cmd *exec.Cmd) {}
