// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mongotesting/contacts-service/internal/core/docdb"
)

// MockCollection is a mock implementation of docdb.Collection.
type MockCollection struct {
	mock.Mock
}

// InsertOne inserts a single document.
func (m *MockCollection) InsertOne(ctx context.Context, document interface{}, opts *docdb.InsertOneOptions) (interface{}, error) {
	args := m.Called(ctx, document, opts)
	return args.Get(0), args.Error(1)
}

// Find finds multiple documents.
func (m *MockCollection) Find(ctx context.Context, filter interface{}, opts *docdb.FindOptions) (docdb.Cursor, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(docdb.Cursor), args.Error(1)
}

// BulkWrite submits write models.
func (m *MockCollection) BulkWrite(ctx context.Context, models []docdb.WriteModel, opts *docdb.BulkWriteOptions) (*docdb.BulkWriteResult, error) {
	args := m.Called(ctx, models, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docdb.BulkWriteResult), args.Error(1)
}

// MockDatabase is a mock implementation of docdb.Database.
type MockDatabase struct {
	mock.Mock
}

// Collection returns a collection from the database.
func (m *MockDatabase) Collection(name string) docdb.Collection {
	args := m.Called(name)
	return args.Get(0).(docdb.Collection)
}

// MockDocDBClient is a mock implementation of docdb.Client.
// Database and Collection lookups are pre-wired to the mocks returned by
// GetDatabase and GetCollection for any name.
type MockDocDBClient struct {
	mock.Mock
	database   *MockDatabase
	collection *MockCollection
}

// NewMockDocDBClient creates a new MockDocDBClient.
func NewMockDocDBClient() *MockDocDBClient {
	collection := &MockCollection{}
	database := &MockDatabase{}
	database.On("Collection", mock.Anything).Return(collection).Maybe()

	return &MockDocDBClient{
		database:   database,
		collection: collection,
	}
}

// Database returns the database and records the requested name.
func (m *MockDocDBClient) Database(name string) docdb.Database {
	m.Called(name)
	return m.database
}

// Ping checks the database connection.
func (m *MockDocDBClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the database connection.
func (m *MockDocDBClient) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// GetDatabase returns the mock database for setup.
func (m *MockDocDBClient) GetDatabase() *MockDatabase {
	return m.database
}

// GetCollection returns the mock collection for setup.
func (m *MockDocDBClient) GetCollection() *MockCollection {
	return m.collection
}

// MockCursor is a mock implementation of docdb.Cursor.
type MockCursor struct {
	mock.Mock
}

// Next advances the cursor.
func (m *MockCursor) Next(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// Decode decodes the current document.
func (m *MockCursor) Decode(v interface{}) error {
	args := m.Called(v)
	return args.Error(0)
}

// All decodes all documents.
func (m *MockCursor) All(ctx context.Context, results interface{}) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

// Err returns any cursor error.
func (m *MockCursor) Err() error {
	args := m.Called()
	return args.Error(0)
}

// Close closes the cursor.
func (m *MockCursor) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
