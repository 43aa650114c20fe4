// Package backend picks the concrete storage.Storage named by the
// configuration. It sits outside package storage so that storage itself
// does not import its own implementations.
package backend

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/students-desk/internal/config"
	"github.com/aanand-mishra/students-desk/internal/storage"
	"github.com/aanand-mishra/students-desk/internal/storage/postgres"
	"github.com/aanand-mishra/students-desk/internal/storage/sqlite"
)

// Open connects to the configured backend and makes sure the students
// table exists. The caller owns the returned store and must Close it.
func Open(ctx context.Context, cfg config.Storage) (storage.Storage, error) {
	var (
		store storage.Storage
		err   error
	)

	switch cfg.Driver {
	case config.DriverSQLite:
		store, err = sqlite.New(cfg.Path)
	case config.DriverPostgres:
		store, err = postgres.New(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("backend.Open: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := store.CreateSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}

	return store, nil
}
