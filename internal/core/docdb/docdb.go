// Package docdb defines the document database interface.
package docdb

import (
	"context"
	"fmt"
)

// Cursor represents a cursor for iterating over query results.
// A cursor is consumed once; it cannot be rewound after Next returns false.
type Cursor interface {
	// Next advances the cursor to the next document.
	Next(ctx context.Context) bool
	// Decode decodes the current document.
	Decode(v interface{}) error
	// All decodes all remaining documents.
	All(ctx context.Context, results interface{}) error
	// Err returns any cursor error.
	Err() error
	// Close closes the cursor.
	Close(ctx context.Context) error
}

// FindOptions represents options for Find operations.
type FindOptions struct {
	Limit      int64
	Skip       int64
	Sort       interface{}
	Projection interface{}
}

// InsertOneOptions represents options for InsertOne operations.
type InsertOneOptions struct {
	BypassDocumentValidation *bool
}

// String renders the options for log messages.
func (o *InsertOneOptions) String() string {
	if o == nil {
		return "InsertOneOptions{bypassDocumentValidation=null}"
	}
	return fmt.Sprintf("InsertOneOptions{bypassDocumentValidation=%s}", formatBool(o.BypassDocumentValidation))
}

// BulkWriteOptions represents options for BulkWrite operations.
// Ordered defaults to true when nil, as in the driver.
type BulkWriteOptions struct {
	Ordered                  *bool
	BypassDocumentValidation *bool
}

// String renders the options for log messages.
func (o *BulkWriteOptions) String() string {
	if o == nil {
		return "BulkWriteOptions{ordered=true, bypassDocumentValidation=null}"
	}
	ordered := "true"
	if o.Ordered != nil {
		ordered = fmt.Sprintf("%t", *o.Ordered)
	}
	return fmt.Sprintf("BulkWriteOptions{ordered=%s, bypassDocumentValidation=%s}", ordered, formatBool(o.BypassDocumentValidation))
}

func formatBool(b *bool) string {
	if b == nil {
		return "null"
	}
	return fmt.Sprintf("%t", *b)
}

// BulkWriteResult represents the result of a bulk write operation.
type BulkWriteResult struct {
	InsertedCount int64
	MatchedCount  int64
	ModifiedCount int64
	DeletedCount  int64
	UpsertedCount int64
	UpsertedIDs   map[int64]interface{}
}

// Collection defines the interface for document collection operations.
type Collection interface {
	// InsertOne inserts a single document and returns its identifier.
	InsertOne(ctx context.Context, document interface{}, opts *InsertOneOptions) (interface{}, error)

	// Find finds multiple documents.
	Find(ctx context.Context, filter interface{}, opts *FindOptions) (Cursor, error)

	// BulkWrite submits a batch of write models as one request.
	// An empty batch fails with ErrEmptyBatch.
	BulkWrite(ctx context.Context, models []WriteModel, opts *BulkWriteOptions) (*BulkWriteResult, error)
}

// Database defines the interface for database operations.
type Database interface {
	// Collection returns a collection by name.
	Collection(name string) Collection
}
