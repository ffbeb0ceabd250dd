//go:build darwin

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
		filepath.Join(homeDir, "Library", "Application Support", "Steam"),
	}
}

func LaunchCommand(ctx context.Context, uri string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "open", uri)
	StripWindow(cmd)
	return cmd
}

func StripWindow(cmd *exec.Cmd) {}
