package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	berrors "github.com/kuenishi/baccounts/internal/errors"
)

// Cipher backends.
const (
	BackendGPG = "gpg"
	BackendBox = "box"
)

// Password charsets.
const (
	CharsetAlnum = "alnum"
	CharsetASCII = "ascii"
)

// DefaultPasswordLength is the length of generated passwords.
const DefaultPasswordLength = 16

type Config struct {
	Store    StoreConfig    `toml:"store"`
	Cipher   CipherConfig   `toml:"cipher"`
	Generate GenerateConfig `toml:"generate"`
}

type StoreConfig struct {
	Path      string `toml:"path"`
	Recipient string `toml:"recipient"`
}

type CipherConfig struct {
	Backend   string   `toml:"backend"`
	GPGBinary string   `toml:"gpg_binary"`
	GPGArgs   []string `toml:"gpg_args"`
	Identity  string   `toml:"identity"`
	KeysDir   string   `toml:"keys_dir"`
}

type GenerateConfig struct {
	Length  int    `toml:"length"`
	Charset string `toml:"charset"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig(s *Settings) *Config {
	return &Config{
		Store: StoreConfig{
			Path: s.DefaultStorePath,
		},
		Cipher: CipherConfig{
			Backend:   BackendGPG,
			GPGBinary: "gpg",
			KeysDir:   s.KeysDir,
		},
		Generate: GenerateConfig{
			Length:  DefaultPasswordLength,
			Charset: CharsetAlnum,
		},
	}
}

// LoadConfig loads the config file at path on top of the defaults.
// A missing file yields the defaults.
func LoadConfig(s *Settings, path string) (*Config, error) {
	config := DefaultConfig(s)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to path.
func SaveConfig(path string, config *Config) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Validate rejects unknown backends and charsets.
func (c *Config) Validate() error {
	switch c.Cipher.Backend {
	case BackendGPG, BackendBox:
	default:
		return fmt.Errorf("%w: unknown cipher backend %q", berrors.ErrInvalidConfig, c.Cipher.Backend)
	}

	switch c.Generate.Charset {
	case CharsetAlnum, CharsetASCII:
	default:
		return fmt.Errorf("%w: unknown charset %q", berrors.ErrInvalidConfig, c.Generate.Charset)
	}

	if c.Generate.Length <= 0 {
		return fmt.Errorf("%w: generate length must be positive, got %d", berrors.ErrInvalidConfig, c.Generate.Length)
	}

	return nil
}
