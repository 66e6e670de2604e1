package config

import (
	"os"
	"path/filepath"
)

// DetectProjectRoot attempts to find the current project by walking up
// from the current directory looking for .fern/.
func DetectProjectRoot() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	return findFernRoot(dir)
}

// findFernRoot walks up from dir looking for a .fern/ directory.
func findFernRoot(dir string) (string, bool) {
	home, _ := os.UserHomeDir()

	for {
		fernDir := filepath.Join(dir, ConfigDirName)
		if info, err := os.Stat(fernDir); err == nil && info.IsDir() {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		// Don't go above home directory
		if home != "" && dir == home {
			break
		}
		dir = parent
	}
	return "", false
}
