package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/cm-academy/cm-academy-api/internal/models"
)

func mockStore(mt *mtest.T) *MongoStore {
	return &MongoStore{client: mt.Client, db: mt.DB}
}

func TestMongoStore_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := mockStore(mt).Insert(context.Background(), mt.Coll.Name(), models.Record{
			"_id":   "caller",
			"title": "Exam",
		})
		require.NoError(mt, err)
		assert.False(mt, id.IsZero())

		ev := mt.GetStartedEvent()
		require.NotNil(mt, ev)
		assert.Equal(mt, "insert", ev.CommandName)
		sent, ok := ev.Command.Lookup("documents", "0", "_id").ObjectIDOK()
		require.True(mt, ok, "expected _id to be sent as an ObjectID")
		assert.Equal(mt, id, sent)
		assert.Equal(mt, "Exam", ev.Command.Lookup("documents", "0", "title").StringValue())
	})

	mt.Run("write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := mockStore(mt).Insert(context.Background(), mt.Coll.Name(), models.Record{"title": "Exam"})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "error inserting document")
	})
}

func TestMongoStore_FindAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns documents", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		first := primitive.NewObjectID()
		second := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "title", Value: "Holiday"}, {Key: "timestamp", Value: 200}},
			bson.D{{Key: "_id", Value: second}, {Key: "title", Value: "Exam"}, {Key: "timestamp", Value: 100}},
		))

		got, err := mockStore(mt).FindAll(context.Background(), mt.Coll.Name(), &Sort{Field: "timestamp", Descending: true})
		require.NoError(mt, err)
		require.Len(mt, got, 2)

		assert.Equal(mt, first, got[0][models.IDField])
		assert.Equal(mt, "Holiday", got[0]["title"])
		assert.Equal(mt, "Exam", got[1]["title"])

		ev := mt.GetStartedEvent()
		require.NotNil(mt, ev)
		assert.Equal(mt, "find", ev.CommandName)
		var sortDoc bson.M
		require.NoError(mt, ev.Command.Lookup("sort").Unmarshal(&sortDoc))
		assert.Len(mt, sortDoc, 1)
		assert.EqualValues(mt, -1, sortDoc["timestamp"])
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		got, err := mockStore(mt).FindAll(context.Background(), mt.Coll.Name(), nil)
		require.NoError(mt, err)
		assert.NotNil(mt, got)
		assert.Empty(mt, got)

		ev := mt.GetStartedEvent()
		require.NotNil(mt, ev)
		_, err = ev.Command.LookupErr("sort")
		assert.Error(mt, err, "expected no sort without a sort field")
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad sort",
		}))

		got, err := mockStore(mt).FindAll(context.Background(), mt.Coll.Name(), nil)
		require.Error(mt, err)
		assert.Nil(mt, got)
	})
}

func TestMongoStore_DeleteByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		deleted, err := mockStore(mt).DeleteByID(context.Background(), mt.Coll.Name(), primitive.NewObjectID())
		require.NoError(mt, err)
		assert.True(mt, deleted)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		deleted, err := mockStore(mt).DeleteByID(context.Background(), mt.Coll.Name(), primitive.NewObjectID())
		require.NoError(mt, err)
		assert.False(mt, deleted)
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		_, err := mockStore(mt).DeleteByID(context.Background(), mt.Coll.Name(), primitive.NewObjectID())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "error deleting document")
	})
}
