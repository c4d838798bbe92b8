package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cm-academy/cm-academy-api/internal/models"
)

// Sort orders a listing by a single attribute.
type Sort struct {
	Field      string
	Descending bool
}

// DocumentStore is a schema-less store addressed by collection name and
// identifier. Implementations must be safe for concurrent use.
type DocumentStore interface {
	// Insert stores doc under a newly assigned identifier and returns it.
	Insert(ctx context.Context, collection string, doc models.Record) (primitive.ObjectID, error)
	// FindAll returns every document in the collection. A nil sort leaves the
	// order to the store.
	FindAll(ctx context.Context, collection string, sort *Sort) ([]models.Record, error)
	// DeleteByID removes at most one document and reports whether it did.
	DeleteByID(ctx context.Context, collection string, id primitive.ObjectID) (bool, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
