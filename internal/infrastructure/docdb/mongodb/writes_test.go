package mongodb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mongotesting/contacts-service/internal/core/docdb"
)

type fakeModel struct{}

func (fakeModel) Kind() string   { return "MOCKMODEL" }
func (fakeModel) String() string { return "MOCKMODEL{}" }

func TestToMongoWriteModels(t *testing.T) {
	upsert := true
	models := []docdb.WriteModel{
		&docdb.InsertOneModel{Document: bson.D{{Key: "_id", Value: 4}}},
		&docdb.UpdateOneModel{Filter: bson.D{{Key: "_id", Value: 4}}, Update: bson.D{{Key: "$set", Value: bson.D{{Key: "x", Value: 1}}}}, Upsert: &upsert},
		&docdb.UpdateManyModel{Filter: bson.D{}, Update: bson.D{{Key: "$set", Value: bson.D{{Key: "x", Value: 2}}}}},
		&docdb.ReplaceOneModel{Filter: bson.D{{Key: "_id", Value: 5}}, Replacement: bson.D{{Key: "x", Value: 3}}},
		&docdb.DeleteOneModel{Filter: bson.D{{Key: "_id", Value: 6}}},
		&docdb.DeleteManyModel{Filter: bson.D{{Key: "errors", Value: true}}},
	}

	out, err := toMongoWriteModels(models)
	require.NoError(t, err)
	require.Len(t, out, 6)

	assert.IsType(t, &mongo.InsertOneModel{}, out[0])
	assert.IsType(t, &mongo.UpdateOneModel{}, out[1])
	assert.IsType(t, &mongo.UpdateManyModel{}, out[2])
	assert.IsType(t, &mongo.ReplaceOneModel{}, out[3])
	assert.IsType(t, &mongo.DeleteOneModel{}, out[4])
	assert.IsType(t, &mongo.DeleteManyModel{}, out[5])

	um := out[1].(*mongo.UpdateOneModel)
	require.NotNil(t, um.Upsert)
	assert.True(t, *um.Upsert)
}

func TestToMongoWriteModels_Unsupported(t *testing.T) {
	tests := []struct {
		name    string
		models  []docdb.WriteModel
		message string
	}{
		{"unknown model", []docdb.WriteModel{&docdb.InsertOneModel{}, fakeModel{}}, "WriteModel of type MOCKMODEL is not supported"},
		{"nil model", []docdb.WriteModel{nil}, "nil WriteModel at index 0"},
		{"nil insert one", []docdb.WriteModel{(*docdb.InsertOneModel)(nil)}, "nil WriteModel at index 0"},
		{"nil update one", []docdb.WriteModel{&docdb.DeleteOneModel{}, (*docdb.UpdateOneModel)(nil)}, "nil WriteModel at index 1"},
		{"nil update many", []docdb.WriteModel{(*docdb.UpdateManyModel)(nil)}, "nil WriteModel"},
		{"nil replace one", []docdb.WriteModel{(*docdb.ReplaceOneModel)(nil)}, "nil WriteModel"},
		{"nil delete one", []docdb.WriteModel{(*docdb.DeleteOneModel)(nil)}, "nil WriteModel"},
		{"nil delete many", []docdb.WriteModel{(*docdb.DeleteManyModel)(nil)}, "nil WriteModel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out []mongo.WriteModel
			var err error
			require.NotPanics(t, func() { out, err = toMongoWriteModels(tt.models) })
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, docdb.ErrUnsupportedOperation))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestToMongoWriteModels_EmptyBatch(t *testing.T) {
	for _, models := range [][]docdb.WriteModel{nil, {}} {
		_, err := toMongoWriteModels(models)
		require.Error(t, err)
		assert.ErrorIs(t, err, docdb.ErrEmptyBatch)
		assert.False(t, errors.Is(err, docdb.ErrUnsupportedOperation))
	}
}

func TestClassifyWriteError(t *testing.T) {
	wcErr := &mongo.WriteConcernError{Code: 64, Message: "waiting for replication timed out"}

	t.Run("write exception with write concern error", func(t *testing.T) {
		err := classifyWriteError(mongo.WriteException{WriteConcernError: wcErr})
		assert.True(t, errors.Is(err, docdb.ErrWriteConcern))

		var we mongo.WriteException
		assert.True(t, errors.As(err, &we))
	})

	t.Run("bulk write exception with write concern error", func(t *testing.T) {
		err := classifyWriteError(mongo.BulkWriteException{WriteConcernError: wcErr})
		assert.True(t, errors.Is(err, docdb.ErrWriteConcern))
	})

	t.Run("write errors only", func(t *testing.T) {
		original := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key"}}}
		err := classifyWriteError(original)
		assert.False(t, errors.Is(err, docdb.ErrWriteConcern))
		assert.Equal(t, original, err)
	})

	t.Run("other error", func(t *testing.T) {
		err := classifyWriteError(assert.AnError)
		assert.Equal(t, assert.AnError, err)
	})
}
