package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// LoginItem registers the application to start when the user logs in.
type LoginItem struct {
	appName  string
	execPath string
	args     []string
	homeDir  func() (string, error)
}

// NewLoginItem describes the login entry for execPath run with args.
func NewLoginItem(appName, execPath string, args ...string) (*LoginItem, error) {
	if strings.TrimSpace(appName) == "" {
		return nil, errors.New("login item: app name is empty")
	}
	if execPath == "" {
		return nil, errors.New("login item: exec path is empty")
	}
	return &LoginItem{
		appName:  appName,
		execPath: execPath,
		args:     args,
		homeDir:  os.UserHomeDir,
	}, nil
}

// Sync registers or removes the login entry to match enabled.
func (item *LoginItem) Sync(enabled bool) error {
	if enabled {
		if err := item.enable(); err != nil {
			return fmt.Errorf("enable launch at login: %w", err)
		}
		return nil
	}
	if err := item.disable(); err != nil {
		return fmt.Errorf("disable launch at login: %w", err)
	}
	return nil
}

func (item *LoginItem) slug() string {
	name := strings.ToLower(strings.TrimSpace(item.appName))
	return strings.ReplaceAll(name, " ", "-")
}

func quoteArg(value string) string {
	if strings.ContainsAny(value, " \t") && !strings.HasPrefix(value, `"`) {
		return `"` + value + `"`
	}
	return value
}

func (item *LoginItem) commandLine() string {
	parts := []string{quoteArg(item.execPath)}
	for _, arg := range item.args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}
