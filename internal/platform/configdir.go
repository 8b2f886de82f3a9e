package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns the per-application configuration directory.
// It prefers os.UserConfigDir and falls back to the OS default under $HOME.
func ConfigDir(appName string) (string, error) {
	if appName == "" {
		return "", errors.New("config dir: app name is empty")
	}

	baseDir, err := os.UserConfigDir()
	if err == nil && baseDir != "" {
		return filepath.Join(baseDir, appName), nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("config dir: %w", err)
		}
		return "", fmt.Errorf("config dir: %w", homeErr)
	}
	return filepath.Join(fallbackConfigDir(homeDir), appName), nil
}
