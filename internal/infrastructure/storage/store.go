package storage

import (
	"fmt"
	"path/filepath"

	"github.com/doeshing/texturepro/internal/domain"
	"github.com/doeshing/texturepro/internal/ports"
)

// Store is a KeyValueStore that owns resources.
type Store interface {
	ports.KeyValueStore
	Close() error
}

// Open builds the backend selected by settings. baseDir resolves an empty
// path to the default file name for the backend.
func Open(settings domain.StorageSettings, baseDir string, logger ports.Logger) (Store, error) {
	switch settings.Backend {
	case domain.StorageMemory:
		return NewMemoryStore(), nil
	case domain.StorageFile:
		path := settings.Path
		if path == "" {
			path = filepath.Join(baseDir, "store.json")
		}
		return NewFileStore(path, logger), nil
	case domain.StorageSQLite, "":
		path := settings.Path
		if path == "" {
			path = filepath.Join(baseDir, "texturepro.db")
		}
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", settings.Backend)
	}
}
