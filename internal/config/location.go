package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath returns the configuration file path: NPCMIND_CONFIG when set,
// otherwise ~/.npcmind/config.
func GetConfigPath() (string, error) {
	if configPath := os.Getenv("NPCMIND_CONFIG"); configPath != "" {
		return configPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".npcmind", "config"), nil
}
