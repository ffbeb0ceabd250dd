//go:build linux

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

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	return []string{
		filepath.Join(homeDir, ".steam", "steam"),
		filepath.Join(homeDir, ".steam", "root"),
		filepath.Join(dataHome, "Steam"),
		filepath.Join(homeDir, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
		filepath.Join(homeDir, ".var", "app", "com.valvesoftware.Steam", "data", "Steam"),
		filepath.Join(homeDir, "snap", "steam", "common", ".local", "share", "Steam"),
	}
}

func LaunchCommand(ctx context.Context, uri string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "xdg-open", uri)
	StripWindow(cmd)
	return cmd
}

func StripWindow(cmd *exec.Cmd) {}
