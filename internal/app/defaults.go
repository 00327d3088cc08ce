package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variables consulted by GetDefaults.
const (
	EnvConfigPath = "TBO_CONFIG_PATH"
	EnvHome       = "TBO_HOME"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - TBO_CONFIG_PATH: config file location (default: ~/.config/tbo.toml)
//   - TBO_HOME: base directory for tbo data (default: ~/.local/share/tbo)
func GetDefaults() (map[string]string, error) {
	configPath, err := fromEnvOrHome(EnvConfigPath, ".config", "tbo.toml")
	if err != nil {
		return nil, err
	}

	baseDir, err := fromEnvOrHome(EnvHome, ".local", "share", "tbo")
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// fromEnvOrHome returns $env when set, otherwise the path under the user's home.
func fromEnvOrHome(env string, elem ...string) (string, error) {
	if path := os.Getenv(env); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, elem...)...), nil
}
