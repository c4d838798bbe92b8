package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cm-academy/cm-academy-api/internal/models"
)

// MongoStore maps collections one-to-one onto collections of a single
// MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore builds a client for uri. Connecting does not wait for the
// server; call Ping to check reachability. The driver keeps reconnecting in
// the background, so a store created while the server is down starts working
// once it comes back.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(database),
	}, nil
}

func (s *MongoStore) Insert(ctx context.Context, collection string, doc models.Record) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	doc = doc.WithoutID()
	doc[models.IDField] = id

	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return primitive.NilObjectID, fmt.Errorf("error inserting document: %w", err)
	}
	return id, nil
}

func (s *MongoStore) FindAll(ctx context.Context, collection string, sort *Sort) ([]models.Record, error) {
	opts := options.Find()
	if sort != nil {
		dir := 1
		if sort.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: sort.Field, Value: dir}})
	}

	cur, err := s.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying documents: %w", err)
	}

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error reading documents: %w", err)
	}

	records := make([]models.Record, 0, len(docs))
	for _, d := range docs {
		records = append(records, models.Record(d))
	}
	return records, nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, collection string, id primitive.ObjectID) (bool, error) {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.D{{Key: models.IDField, Value: id}})
	if err != nil {
		return false, fmt.Errorf("error deleting document: %w", err)
	}
	return res.DeletedCount == 1, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
