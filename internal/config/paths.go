package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level YAML config file.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "shipit", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level YAML config file.
func ProjectConfigPath() string {
	return filepath.Join(".shipit", "config.yml")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir() string {
	return ".shipit"
}

// LegacyProjectConfigPath returns the path to the deprecated project-level
// JSON config file.
func LegacyProjectConfigPath() string {
	return filepath.Join(".shipit", "config.json")
}
