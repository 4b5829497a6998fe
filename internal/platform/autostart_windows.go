//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (item *LoginItem) enable() error {
	return reg("add", registryRunKey, "/v", item.appName, "/t", "REG_SZ", "/d", item.windowsCommandLine(), "/f")
}

func (item *LoginItem) disable() error {
	if !item.Registered() {
		return nil
	}
	return reg("delete", registryRunKey, "/v", item.appName, "/f")
}

// Registered reports whether the Run key holds the entry.
func (item *LoginItem) Registered() bool {
	return exec.Command("reg", "query", registryRunKey, "/v", item.appName).Run() == nil
}

func (item *LoginItem) windowsCommandLine() string {
	parts := []string{`"` + strings.Trim(item.execPath, `"`) + `"`}
	for _, arg := range item.args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

func reg(args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("reg %s failed: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}
