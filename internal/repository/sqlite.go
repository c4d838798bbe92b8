package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.mongodb.org/mongo-driver/bson/primitive"
	_ "modernc.org/sqlite"

	"github.com/cm-academy/cm-academy-api/internal/models"
)

// SQLiteStore keeps every collection in one table of JSON documents.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// one connection: ":memory:" databases are per-connection, and sqlite
	// serializes writers anyway
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteStore{
		db: db,
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			collection TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Insert(ctx context.Context, collection string, doc models.Record) (primitive.ObjectID, error) {
	body, err := json.Marshal(doc.WithoutID())
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("error encoding document: %w", err)
	}

	id := primitive.NewObjectID()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, collection, body) VALUES (?, ?, ?)`,
		id.Hex(), collection, string(body),
	)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("error inserting document: %w", err)
	}

	return id, nil
}

func (s *SQLiteStore) FindAll(ctx context.Context, collection string, sort *Sort) ([]models.Record, error) {
	query := `SELECT id, body FROM documents WHERE collection = ?`
	args := []any{collection}

	if sort != nil {
		dir := "ASC"
		if sort.Descending {
			dir = "DESC"
		}
		// rowid breaks ties so equal keys keep insertion order
		query += ` ORDER BY json_extract(body, ?) ` + dir + `, rowid`
		args = append(args, `$."`+sort.Field+`"`)
	} else {
		query += ` ORDER BY rowid`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying documents: %w", err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		var (
			hexID string
			body  string
		)
		if err := rows.Scan(&hexID, &body); err != nil {
			return nil, fmt.Errorf("error scanning document: %w", err)
		}

		rec := models.Record{}
		if err := json.Unmarshal([]byte(body), &rec); err != nil {
			return nil, fmt.Errorf("error decoding document %s: %w", hexID, err)
		}
		id, err := primitive.ObjectIDFromHex(hexID)
		if err != nil {
			return nil, fmt.Errorf("error decoding document id %s: %w", hexID, err)
		}
		rec[models.IDField] = id

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return records, nil
}

func (s *SQLiteStore) DeleteByID(ctx context.Context, collection string, id primitive.ObjectID) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`,
		collection, id.Hex(),
	)
	if err != nil {
		return false, fmt.Errorf("error deleting document: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading affected rows: %w", err)
	}
	return n == 1, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close(_ context.Context) error {
	return s.db.Close()
}
