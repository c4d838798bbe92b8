package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// IDField is the attribute that carries a record's store-assigned identifier.
const IDField = "_id"

// Record is a schema-less document. Attributes are stored exactly as the
// caller supplied them.
type Record map[string]any

// WithoutID returns a shallow copy of r with any identifier attribute removed.
// Identifiers are always assigned by the store, never by the caller.
func (r Record) WithoutID() Record {
	out := make(Record, len(r))
	for k, v := range r {
		if k == IDField {
			continue
		}
		out[k] = v
	}
	return out
}

// ParseID decodes the hex form of an identifier (24 hex chars).
func ParseID(s string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(s)
}
