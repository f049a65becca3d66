package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rajshekhar/folio/internal/ports"
)

// Open picks a backend for driver: "sqlite" (default), "file" or "memory".
// The file backend swaps a ".db" extension for ".json" so both drivers can
// share one configured path.
func Open(driver, path string) (ports.KeyValueStore, error) {
	switch strings.ToLower(driver) {
	case "", "sqlite":
		return OpenSQLite(path)
	case "file":
		if filepath.Ext(path) == ".db" {
			path = strings.TrimSuffix(path, ".db") + ".json"
		}
		return OpenFile(path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
