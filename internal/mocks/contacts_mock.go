package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mongotesting/contacts-service/internal/core/docdb"
	"github.com/mongotesting/contacts-service/internal/domain/models"
)

// MockContactsStore is a mock of the contacts store and service API.
type MockContactsStore struct {
	mock.Mock
}

// NewMockContactsStore creates a new MockContactsStore.
func NewMockContactsStore() *MockContactsStore {
	return &MockContactsStore{}
}

// FindByLastName returns the stubbed documents.
func (m *MockContactsStore) FindByLastName(ctx context.Context, lastName string) ([]models.Document, error) {
	args := m.Called(ctx, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Document), args.Error(1)
}

// FindErrors returns the stubbed identifiers.
func (m *MockContactsStore) FindErrors(ctx context.Context) ([]models.Identifier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Identifier), args.Error(1)
}

// InsertOne records the insert.
func (m *MockContactsStore) InsertOne(ctx context.Context, document models.Document, opts *docdb.InsertOneOptions) error {
	args := m.Called(ctx, document, opts)
	return args.Error(0)
}

// BulkWrite records the bulk write.
func (m *MockContactsStore) BulkWrite(ctx context.Context, requests []docdb.WriteModel, opts *docdb.BulkWriteOptions) error {
	args := m.Called(ctx, requests, opts)
	return args.Error(0)
}
