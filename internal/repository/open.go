package repository

import (
	"context"
	"fmt"

	"github.com/cm-academy/cm-academy-api/internal/config"
)

// Open builds the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (DocumentStore, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		uri, err := cfg.MongoURI()
		if err != nil {
			return nil, err
		}
		s, err := NewMongoStore(ctx, uri, cfg.Database)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverSQLite:
		s, err := NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver: %q", cfg.Driver)
	}
}
