// Package mongodb provides MongoDB database implementation.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mongotesting/contacts-service/internal/core/docdb"
)

// Collection implements the docdb.Collection interface for MongoDB.
type Collection struct {
	collection *mongo.Collection
}

// NewCollection creates a new MongoDB collection wrapper.
func NewCollection(collection *mongo.Collection) *Collection {
	return &Collection{
		collection: collection,
	}
}

// InsertOne inserts a single document.
func (c *Collection) InsertOne(ctx context.Context, document interface{}, opts *docdb.InsertOneOptions) (interface{}, error) {
	insertOpts := options.InsertOne()
	if opts != nil && opts.BypassDocumentValidation != nil {
		insertOpts.SetBypassDocumentValidation(*opts.BypassDocumentValidation)
	}

	result, err := c.collection.InsertOne(ctx, document, insertOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to insert document: %w", classifyWriteError(err))
	}
	return result.InsertedID, nil
}

// Find finds all documents matching the filter.
func (c *Collection) Find(ctx context.Context, filter interface{}, opts *docdb.FindOptions) (docdb.Cursor, error) {
	findOpts := options.Find()
	if opts != nil {
		if opts.Limit > 0 {
			findOpts.SetLimit(opts.Limit)
		}
		if opts.Skip > 0 {
			findOpts.SetSkip(opts.Skip)
		}
		if opts.Sort != nil {
			findOpts.SetSort(opts.Sort)
		}
		if opts.Projection != nil {
			findOpts.SetProjection(opts.Projection)
		}
	}

	cursor, err := c.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}

	return &Cursor{cursor: cursor}, nil
}

// BulkWrite translates the write models and submits them as one request.
func (c *Collection) BulkWrite(ctx context.Context, models []docdb.WriteModel, opts *docdb.BulkWriteOptions) (*docdb.BulkWriteResult, error) {
	writeModels, err := toMongoWriteModels(models)
	if err != nil {
		return nil, err
	}

	bulkOpts := options.BulkWrite()
	if opts != nil {
		if opts.Ordered != nil {
			bulkOpts.SetOrdered(*opts.Ordered)
		}
		if opts.BypassDocumentValidation != nil {
			bulkOpts.SetBypassDocumentValidation(*opts.BypassDocumentValidation)
		}
	}

	result, err := c.collection.BulkWrite(ctx, writeModels, bulkOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk write: %w", classifyWriteError(err))
	}

	return &docdb.BulkWriteResult{
		InsertedCount: result.InsertedCount,
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
		DeletedCount:  result.DeletedCount,
		UpsertedCount: result.UpsertedCount,
		UpsertedIDs:   result.UpsertedIDs,
	}, nil
}

// Database implements the docdb.Database interface for MongoDB.
type Database struct {
	database *mongo.Database
}

// NewDatabase creates a new MongoDB database wrapper.
func NewDatabase(database *mongo.Database) *Database {
	return &Database{
		database: database,
	}
}

// Collection returns a collection from the database.
func (d *Database) Collection(name string) docdb.Collection {
	return NewCollection(d.database.Collection(name))
}

// Cursor wraps a MongoDB cursor.
type Cursor struct {
	cursor *mongo.Cursor
}

// Next advances the cursor.
func (c *Cursor) Next(ctx context.Context) bool {
	return c.cursor.Next(ctx)
}

// Decode decodes the current document.
func (c *Cursor) Decode(v interface{}) error {
	return c.cursor.Decode(v)
}

// All decodes all remaining documents.
func (c *Cursor) All(ctx context.Context, results interface{}) error {
	return c.cursor.All(ctx, results)
}

// Err returns any cursor error.
func (c *Cursor) Err() error {
	return c.cursor.Err()
}

// Close closes the cursor.
func (c *Cursor) Close(ctx context.Context) error {
	return c.cursor.Close(ctx)
}
