package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"clockdeck/internal/core/model"
	"clockdeck/internal/ui/preferences"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	NotificationsEnabled *bool   `yaml:"notifications_enabled"`
	ChimeVolume          float64 `yaml:"chime_volume"`
	Muted                bool    `yaml:"muted"`
	LaunchAtLogin        bool    `yaml:"launch_at_login"`
	StartHidden          bool    `yaml:"start_hidden"`
	StartPage            string  `yaml:"start_page"`
	DefaultChime         string  `yaml:"default_chime"`
	DefaultSnooze        string  `yaml:"default_snooze"`
	DatabasePath         string  `yaml:"database_path,omitempty"`
}

// SettingsPath returns the default settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from the YAML file at path.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to the YAML file at path.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	notifications := settings.NotificationsEnabled
	fileData := yamlSettings{
		NotificationsEnabled: &notifications,
		ChimeVolume:          settings.ChimeVolume,
		Muted:                settings.Muted,
		LaunchAtLogin:        settings.LaunchAtLogin,
		StartHidden:          settings.StartHidden,
		StartPage:            string(settings.StartPage),
		DefaultChime:         settings.DefaultChimeID,
		DefaultSnooze:        settings.DefaultSnoozeID,
		DatabasePath:         settings.DatabasePath,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *fileData.NotificationsEnabled
	}
	if fileData.ChimeVolume > 0 && fileData.ChimeVolume <= 1 {
		settings.ChimeVolume = fileData.ChimeVolume
	}
	if page := preferences.Page(fileData.StartPage); page.Valid() {
		settings.StartPage = page
	}
	if fileData.DefaultChime != "" {
		settings.DefaultChimeID = model.ChimeByID(fileData.DefaultChime).ID
	}
	if fileData.DefaultSnooze != "" {
		settings.DefaultSnoozeID = model.SnoozeByID(fileData.DefaultSnooze).ID
	}

	settings.Muted = fileData.Muted
	settings.LaunchAtLogin = fileData.LaunchAtLogin
	settings.StartHidden = fileData.StartHidden
	settings.DatabasePath = fileData.DatabasePath
}
