package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "baccounts"

// Settings holds the per-user locations baccounts reads and writes.
type Settings struct {
	ConfigDir        string
	DataDir          string
	ConfigPath       string
	AuditPath        string
	KeysDir          string
	DefaultStorePath string
}

// NewSettings resolves Settings from the XDG environment and the home
// directory.
func NewSettings() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error getting home directory: %w", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting config directory: %w", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return &Settings{
		ConfigDir:        filepath.Join(configDir, appName),
		DataDir:          filepath.Join(dataDir, appName),
		ConfigPath:       filepath.Join(configDir, appName, "config.toml"),
		AuditPath:        filepath.Join(dataDir, appName, "audit.jsonl"),
		KeysDir:          filepath.Join(dataDir, appName, "keys"),
		DefaultStorePath: filepath.Join(homeDir, "."+appName),
	}, nil
}
