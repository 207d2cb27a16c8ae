// Package store persists the mission tree in its portable form.
package store

import (
	"context"
	"fmt"

	"icando-go/app/config"
	"icando-go/app/models"
)

// Store loads and saves whole mission trees.
type Store interface {
	// Load returns the saved root, or nil when nothing has been saved yet.
	Load(ctx context.Context) (*models.Mission, error)
	Save(ctx context.Context, root *models.Mission) error
	Close(ctx context.Context) error
}

// Open returns the store selected by cfg.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendFile:
		return NewFileStore(cfg.FilePath), nil
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.SQLite.Path)
	case config.BackendNeo4j:
		driver, err := config.InitNeo4j(cfg.Neo4j)
		if err != nil {
			return nil, fmt.Errorf("create neo4j driver: %w", err)
		}
		if err := driver.VerifyConnectivity(ctx); err != nil {
			driver.Close(ctx)
			return nil, fmt.Errorf("connect neo4j: %w", err)
		}
		return NewNeo4jStore(driver), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
