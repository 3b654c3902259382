package store

import (
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	Backend string // "json" or "sqlite"
	DataDir string
}

// New builds a store for the configured backend. The SQLite database file
// lives inside the data directory next to the JSON files it replaces.
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "sqlite":
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return OpenSQLite(filepath.Join(cfg.DataDir, "course_recommendations.db"))
	case "json", "":
		return OpenJSON(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
