package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultListenAddr is where `tbo serve` listens unless configured otherwise.
const DefaultListenAddr = "127.0.0.1:8787"

// Config represents the main configuration for tbo.
type Config struct {
	InstanceID string           `toml:"instance_id"`
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	Database   DatabaseConfig   `toml:"database"`
	Archive    ArchiveConfig    `toml:"archive"`
	Encryption EncryptionConfig `toml:"encryption"`
	Server     ServerConfig     `toml:"server"`
}

// DatabaseConfig represents configuration for the bookmark store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// ArchiveConfig controls where snapshots are kept before destructive operations.
type ArchiveConfig struct {
	Type    string `toml:"type"`           // "filesystem" or "memory"
	Root    string `toml:"root,omitempty"` // only used for type=filesystem
	Encrypt bool   `toml:"encrypt"`
}

// EncryptionConfig holds paths to the age key pair used for archived snapshots.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "age" (default) or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// ServerConfig configures the local HTTP surface.
type ServerConfig struct {
	ListenAddr  string   `toml:"listen_addr"`
	CORSOrigins []string `toml:"cors_origins"`
}

// NewConfig creates a Config rooted at baseDir with default backends and key paths.
func NewConfig(instanceID, baseDir string) *Config {
	return &Config{
		InstanceID: instanceID,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
		Archive: ArchiveConfig{
			Type: "filesystem",
			Root: filepath.Join(baseDir, "archive"),
		},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "tbo.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "tbo.key"),
		},
		Server: ServerConfig{
			ListenAddr:  DefaultListenAddr,
			CORSOrigins: []string{"chrome-extension://*", "moz-extension://*"},
		},
	}
}

// Validate checks that each tagged union carries the fields its type needs.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseDir, validation.Required),
		validation.Field(&c.Database),
		validation.Field(&c.Archive),
		validation.Field(&c.Encryption),
		validation.Field(&c.Server),
	)
}

func (d DatabaseConfig) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Type, validation.Required, validation.In("sqlite", "memory")),
		validation.Field(&d.DataDir, validation.When(d.Type == "sqlite", validation.Required)),
	)
}

func (a ArchiveConfig) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Type, validation.Required, validation.In("filesystem", "memory")),
		validation.Field(&a.Root, validation.When(a.Type == "filesystem", validation.Required)),
	)
}

func (e EncryptionConfig) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Type, validation.In("age", "test")),
		validation.Field(&e.PublicKeyPath, validation.When(e.Type == "" || e.Type == "age", validation.Required)),
		validation.Field(&e.PrivateKeyPath, validation.When(e.Type == "" || e.Type == "age", validation.Required)),
	)
}

func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ListenAddr, validation.Required),
	)
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads and validates a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init writes cfg to path. It refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
