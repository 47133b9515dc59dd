// Package contacts provides access to the contacts collection: lookups by
// field, lookups of flagged records and forwarded writes whose known
// failure modes are logged instead of returned.
package contacts

import (
	"context"
	"errors"
	"fmt"

	"github.com/VictoriaMetrics/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mongotesting/contacts-service/internal/core/docdb"
	"github.com/mongotesting/contacts-service/internal/domain/models"
)

const (
	// DefaultDatabase is the database holding the contacts collection.
	DefaultDatabase = "clients"
	// DefaultCollection is the name of the contacts collection.
	DefaultCollection = "contacts"
)

// ErrNotInitialized is returned by operations called before Init.
var ErrNotInitialized = errors.New("contacts wrapper is not initialized")

var (
	insertOneFailures = metrics.NewCounter(`contacts_write_failures_total{op="insertOne"}`)
	bulkWriteFailures = metrics.NewCounter(`contacts_write_failures_total{op="bulkWrite"}`)
)

// Wrapper forwards queries and writes to a single collection.
type Wrapper struct {
	client         docdb.Client
	databaseName   string
	collectionName string
	collection     docdb.Collection
	logger         zerolog.Logger
}

// Option configures a Wrapper.
type Option func(*Wrapper)

// WithDatabase overrides the database name.
func WithDatabase(name string) Option {
	return func(w *Wrapper) {
		w.databaseName = name
	}
}

// WithCollection overrides the collection name.
func WithCollection(name string) Option {
	return func(w *Wrapper) {
		w.collectionName = name
	}
}

// WithLogger sets the logger that receives write failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Wrapper) {
		w.logger = logger
	}
}

// New creates a Wrapper around client. Init must be called before use.
func New(client docdb.Client, opts ...Option) *Wrapper {
	w := &Wrapper{
		client:         client,
		databaseName:   DefaultDatabase,
		collectionName: DefaultCollection,
		logger:         log.Logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With().
		Str("database", w.databaseName).
		Str("collection", w.collectionName).
		Logger()
	return w
}

// Init resolves the collection handle. The handle is not reassigned after
// the first call.
func (w *Wrapper) Init() {
	if w.collection != nil {
		return
	}
	w.collection = w.client.Database(w.databaseName).Collection(w.collectionName)
}

// FindByLastName returns all contacts with the given last name.
func (w *Wrapper) FindByLastName(ctx context.Context, lastName string) ([]models.Document, error) {
	return w.FindByField(ctx, models.FieldLastName, lastName)
}

// FindByLastNameAll is FindByLastName materialized with Cursor.All.
func (w *Wrapper) FindByLastNameAll(ctx context.Context, lastName string) ([]models.Document, error) {
	return w.FindAllByField(ctx, models.FieldLastName, lastName)
}

// FindByField returns every document whose field equals value, in the
// store's iteration order.
func (w *Wrapper) FindByField(ctx context.Context, field string, value interface{}) ([]models.Document, error) {
	cursor, err := w.find(ctx, models.NewDocument(field, value), nil)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	documents := []models.Document{}
	for cursor.Next(ctx) {
		var doc models.Document
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		documents = append(documents, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor failed: %w", err)
	}

	return documents, nil
}

// FindAllByField is FindByField using a single Cursor.All call instead of
// iterating document by document.
func (w *Wrapper) FindAllByField(ctx context.Context, field string, value interface{}) ([]models.Document, error) {
	cursor, err := w.find(ctx, models.NewDocument(field, value), nil)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	documents := []models.Document{}
	if err := cursor.All(ctx, &documents); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	if documents == nil {
		documents = []models.Document{}
	}

	return documents, nil
}

// FindErrors returns the identifiers of all contacts flagged with errors.
func (w *Wrapper) FindErrors(ctx context.Context) ([]models.Identifier, error) {
	return w.FindFlagged(ctx, models.FieldErrors)
}

// FindFlagged returns the identifiers of documents whose flag field is
// true, in the store's iteration order.
func (w *Wrapper) FindFlagged(ctx context.Context, flag string) ([]models.Identifier, error) {
	cursor, err := w.find(ctx, models.NewDocument(flag, true), nil)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ids := []models.Identifier{}
	for cursor.Next(ctx) {
		var doc models.Document
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		id, err := models.IdentifierOf(doc)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor failed: %w", err)
	}

	return ids, nil
}

// InsertOne forwards a single insert. A write concern violation is logged
// and suppressed; any other error is returned.
func (w *Wrapper) InsertOne(ctx context.Context, document models.Document, opts *docdb.InsertOneOptions) error {
	if w.collection == nil {
		return ErrNotInitialized
	}

	_, err := w.collection.InsertOne(ctx, document, opts)
	if errors.Is(err, docdb.ErrWriteConcern) {
		insertOneFailures.Inc()
		w.handleWriteError(err, fmt.Sprintf("InsertOne failed with options: %s array: %s",
			opts, docdb.FormatDocument(document)))
		return nil
	}
	return err
}

// BulkWrite forwards a batch of write models. A rejection as unsupported is
// logged and suppressed; any other error is returned.
func (w *Wrapper) BulkWrite(ctx context.Context, requests []docdb.WriteModel, opts *docdb.BulkWriteOptions) error {
	if w.collection == nil {
		return ErrNotInitialized
	}

	_, err := w.collection.BulkWrite(ctx, requests, opts)
	if errors.Is(err, docdb.ErrUnsupportedOperation) {
		bulkWriteFailures.Inc()
		w.handleWriteError(err, fmt.Sprintf("bulkWrite failed with options: %s array: %s",
			opts, docdb.FormatWriteModels(requests)))
		return nil
	}
	return err
}

func (w *Wrapper) find(ctx context.Context, filter models.Document, opts *docdb.FindOptions) (docdb.Cursor, error) {
	if w.collection == nil {
		return nil, ErrNotInitialized
	}
	cursor, err := w.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find contacts: %w", err)
	}
	return cursor, nil
}

func (w *Wrapper) handleWriteError(err error, message string) {
	w.logger.Error().Err(err).Msg(message)
}
