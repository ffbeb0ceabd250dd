package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const APP_NAME = "steamshelf"

const settingsFileName = "settings.yaml"

// UserSettings are the preferences steamshelf persists between runs.
type UserSettings struct {
	SortOrder SortOrder `yaml:"sort_order,omitempty"`
	// SteamRoot overrides the platform's conventional install locations.
	SteamRoot string `yaml:"steam_root,omitempty"`
}

func DefaultUserSettings() *UserSettings {
	return &UserSettings{SortOrder: SortByName}
}

func GetDefaultSettingsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, APP_NAME, settingsFileName), nil
}

func ReadUserSettings(path string) (*UserSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	settings := DefaultUserSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if settings.SortOrder, err = ParseSortOrder(string(settings.SortOrder)); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return settings, nil
}

// ReadUserSettingsOrDefault falls back to the defaults when the file is
// missing. A file that exists but cannot be parsed is logged and ignored.
func ReadUserSettingsOrDefault(path string) *UserSettings {
	settings, err := ReadUserSettings(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			ErrorLogger.Println(err)
		}
		return DefaultUserSettings()
	}
	return settings
}

func WriteUserSettings(path string, settings *UserSettings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
