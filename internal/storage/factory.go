package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// StoreCloser is a Store that owns resources.
type StoreCloser interface {
	Store
	io.Closer
}

// Open builds the store for backend. An empty path selects the backend's
// default location.
func Open(ctx context.Context, backend, path string) (StoreCloser, error) {
	switch strings.ToLower(backend) {
	case BackendSQLite, "":
		if path == "" {
			p, err := DefaultDBPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return OpenSQLite(ctx, path)
	case BackendFile:
		if path == "" {
			p, err := DefaultDataDir()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewFileStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
