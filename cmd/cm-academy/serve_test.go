package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cm-academy/cm-academy-api/internal/config"
	"github.com/cm-academy/cm-academy-api/internal/models"
)

func TestOpenStore_SQLite(t *testing.T) {
	cfg := &config.Config{
		Store: config.StoreConfig{
			Driver:         config.DriverSQLite,
			SQLitePath:     filepath.Join(t.TempDir(), "cm.db"),
			ConnectTimeout: time.Second,
		},
	}

	store := openStore(context.Background(), cfg)
	t.Cleanup(func() { store.Close(context.Background()) })

	require.NoError(t, store.Ping(context.Background()))
	_, err := store.Insert(context.Background(), "noticeCollection", models.Record{"title": "x"})
	assert.NoError(t, err)
}

func TestOpenStore_BadURIKeepsServing(t *testing.T) {
	cfg := &config.Config{
		Store: config.StoreConfig{
			Driver:         config.DriverMongo,
			URI:            "not-a-mongodb-uri",
			Database:       "CIT",
			ConnectTimeout: time.Second,
		},
	}

	store := openStore(context.Background(), cfg)
	require.NotNil(t, store)

	err := store.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store unavailable")

	_, err = store.FindAll(context.Background(), "employeeCollection", nil)
	assert.Error(t, err)
}
