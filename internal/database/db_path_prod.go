//go:build prod

package database

import (
	"os"
	"path/filepath"
)

const fallbackDBFile = "fitpromo.db"

// GetDefaultDBPath keeps the history database in the user's config
// directory, or in the working directory when that is unavailable.
func GetDefaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return fallbackDBFile
	}
	appDir := filepath.Join(configDir, "fitpromo")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		return fallbackDBFile
	}
	return filepath.Join(appDir, fallbackDBFile)
}

func IsDevelopment() bool {
	return false
}
