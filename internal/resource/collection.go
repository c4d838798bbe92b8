package resource

import (
	"context"
	"fmt"

	"github.com/cm-academy/cm-academy-api/internal/models"
	"github.com/cm-academy/cm-academy-api/internal/repository"
)

// Collection runs the create/list/delete operations of one Kind against a
// shared document store. It keeps no state between calls.
type Collection struct {
	kind  Kind
	store repository.DocumentStore
}

func NewCollection(kind Kind, store repository.DocumentStore) *Collection {
	return &Collection{
		kind:  kind,
		store: store,
	}
}

func (c *Collection) Kind() Kind {
	return c.kind
}

func (c *Collection) Create(ctx context.Context, attrs models.Record) Result {
	if attrs == nil {
		attrs = models.Record{}
	}

	id, err := c.store.Insert(ctx, c.kind.Collection, attrs)
	if err != nil {
		return Result{Outcome: OutcomeOperationalFault, Err: err}
	}
	return Result{Outcome: OutcomeCreated, ID: id}
}

func (c *Collection) ListAll(ctx context.Context) Result {
	records, err := c.store.FindAll(ctx, c.kind.Collection, c.kind.Sort)
	if err != nil {
		return Result{Outcome: OutcomeOperationalFault, Err: err}
	}
	if records == nil {
		records = []models.Record{}
	}
	return Result{Outcome: OutcomeListed, Records: records}
}

// DeleteByID parses rawID before touching the store; a malformed id never
// reaches it.
func (c *Collection) DeleteByID(ctx context.Context, rawID string) Result {
	id, err := models.ParseID(rawID)
	if err != nil {
		return Result{Outcome: OutcomeValidationFault, Err: fmt.Errorf("invalid id %q: %w", rawID, err)}
	}

	deleted, err := c.store.DeleteByID(ctx, c.kind.Collection, id)
	if err != nil {
		return Result{Outcome: OutcomeOperationalFault, Err: err}
	}
	if !deleted {
		return Result{Outcome: OutcomeNotFound}
	}
	return Result{Outcome: OutcomeDeleted, ID: id}
}

// NewCollections builds one Collection per exposed Kind over store.
func NewCollections(store repository.DocumentStore) []*Collection {
	kinds := Kinds()
	out := make([]*Collection, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, NewCollection(k, store))
	}
	return out
}
