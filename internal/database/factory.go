package database

import (
	"fmt"
	"path/filepath"

	"tbo-go/internal/config"
	"tbo-go/internal/tbo"
)

// FileName is the database file created under the configured data_dir.
const FileName = "tbo.db"

// NewDatabaseFromConfig creates a Database implementation based on the database config type.
func NewDatabaseFromConfig(cfg config.DatabaseConfig) (tbo.Database, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite database")
		}
		return open(filepath.Join(cfg.DataDir, FileName))
	case "memory":
		return open(":memory:")
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}

// open keeps a failed open from returning a typed nil inside the interface.
func open(path string) (tbo.Database, error) {
	db, err := NewSQLiteDatabase(path)
	if err != nil {
		return nil, err
	}
	return db, nil
}
