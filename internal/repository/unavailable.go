package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cm-academy/cm-academy-api/internal/models"
)

// Unavailable stands in for a store that could not be initialised. Every
// call fails with the initialisation error so the process can keep serving.
func Unavailable(cause error) DocumentStore {
	return unavailableStore{err: fmt.Errorf("store unavailable: %w", cause)}
}

type unavailableStore struct {
	err error
}

func (s unavailableStore) Insert(context.Context, string, models.Record) (primitive.ObjectID, error) {
	return primitive.NilObjectID, s.err
}

func (s unavailableStore) FindAll(context.Context, string, *Sort) ([]models.Record, error) {
	return nil, s.err
}

func (s unavailableStore) DeleteByID(context.Context, string, primitive.ObjectID) (bool, error) {
	return false, s.err
}

func (s unavailableStore) Ping(context.Context) error { return s.err }

func (s unavailableStore) Close(context.Context) error { return nil }
