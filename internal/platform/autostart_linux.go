//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

func (item *LoginItem) entryPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := item.homeDir()
		if err != nil {
			return "", fmt.Errorf("get home dir: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "autostart", item.slug()+".desktop"), nil
}

func (item *LoginItem) enable() error {
	path, err := item.entryPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(item.desktopEntry()), 0o644); err != nil {
		return fmt.Errorf("write desktop entry: %w", err)
	}
	return nil
}

func (item *LoginItem) disable() error {
	path, err := item.entryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove desktop entry: %w", err)
	}
	return nil
}

// Registered reports whether the login entry exists.
func (item *LoginItem) Registered() bool {
	path, err := item.entryPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (item *LoginItem) desktopEntry() string {
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Comment=Stopwatch, timers and alarms
Exec=%s
Icon=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`, item.appName, item.commandLine(), item.slug())
}
