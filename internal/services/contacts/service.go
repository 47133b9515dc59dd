package contacts

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mongotesting/contacts-service/internal/core/cache"
	"github.com/mongotesting/contacts-service/internal/core/docdb"
	"github.com/mongotesting/contacts-service/internal/domain/models"
)

const (
	cacheKeyPrefix   = "contacts:"
	cacheKeyLastName = cacheKeyPrefix + "lastName:"
)

// Store is the subset of Wrapper used by Service.
type Store interface {
	FindByLastName(ctx context.Context, lastName string) ([]models.Document, error)
	FindErrors(ctx context.Context) ([]models.Identifier, error)
	InsertOne(ctx context.Context, document models.Document, opts *docdb.InsertOneOptions) error
	BulkWrite(ctx context.Context, requests []docdb.WriteModel, opts *docdb.BulkWriteOptions) error
}

// Config holds the dependencies of a Service.
type Config struct {
	Store  Store
	Cache  cache.Client // optional
	Logger *zerolog.Logger
}

// Service serves contact lookups, optionally through a query cache, and
// invalidates cached lookups after writes.
type Service struct {
	store  Store
	cache  cache.Client
	logger zerolog.Logger

	// fillMu orders cache fills against invalidations. A lookup only fills
	// the cache if generation is unchanged since it missed.
	fillMu     sync.RWMutex
	generation uint64
}

// NewService creates a new Service.
func NewService(cfg *Config) (*Service, error) {
	if cfg == nil || cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return &Service{
		store:  cfg.Store,
		cache:  cfg.Cache,
		logger: logger,
	}, nil
}

type cachedDocuments struct {
	Documents []models.Document `bson:"documents"`
}

// FindByLastName returns all contacts with the given last name.
func (s *Service) FindByLastName(ctx context.Context, lastName string) ([]models.Document, error) {
	if s.cache == nil {
		return s.store.FindByLastName(ctx, lastName)
	}

	key := cacheKeyLastName + lastName
	gen := s.currentGeneration()
	if docs, ok := s.readCache(ctx, key); ok {
		return docs, nil
	}

	docs, err := s.store.FindByLastName(ctx, lastName)
	if err != nil {
		return nil, err
	}

	s.fillCache(ctx, key, docs, gen)
	return docs, nil
}

// FindErrors returns the identifiers of contacts flagged with errors.
func (s *Service) FindErrors(ctx context.Context) ([]models.Identifier, error) {
	return s.store.FindErrors(ctx)
}

// InsertOne inserts a contact and invalidates cached lookups.
func (s *Service) InsertOne(ctx context.Context, document models.Document, opts *docdb.InsertOneOptions) error {
	if err := s.store.InsertOne(ctx, document, opts); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// BulkWrite applies a batch of writes and invalidates cached lookups.
func (s *Service) BulkWrite(ctx context.Context, requests []docdb.WriteModel, opts *docdb.BulkWriteOptions) error {
	if err := s.store.BulkWrite(ctx, requests, opts); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) readCache(ctx context.Context, key string) ([]models.Document, bool) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return nil, false
	}
	if data == nil {
		return nil, false
	}

	var cached cachedDocuments
	if err := bson.UnmarshalExtJSON(data, true, &cached); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		return nil, false
	}
	if cached.Documents == nil {
		cached.Documents = []models.Document{}
	}
	return cached.Documents, true
}

func (s *Service) currentGeneration() uint64 {
	s.fillMu.RLock()
	defer s.fillMu.RUnlock()
	return s.generation
}

// fillCache stores docs unless a write invalidated the cache after gen was
// read; the lookup may then have seen data older than that write.
func (s *Service) fillCache(ctx context.Context, key string, docs []models.Document, gen uint64) {
	s.fillMu.RLock()
	defer s.fillMu.RUnlock()
	if s.generation != gen {
		s.logger.Debug().Str("key", key).Msg("skipping cache fill after concurrent invalidation")
		return
	}
	s.writeCache(ctx, key, docs)
}

func (s *Service) writeCache(ctx context.Context, key string, docs []models.Document) {
	data, err := bson.MarshalExtJSON(cachedDocuments{Documents: docs}, true, false)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to encode cache entry")
		return
	}
	if err := s.cache.Set(ctx, key, data, 0); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.fillMu.Lock()
	defer s.fillMu.Unlock()
	s.generation++
	if _, err := s.cache.DeletePattern(ctx, cacheKeyPrefix+"*"); err != nil {
		s.logger.Warn().Err(err).Msg("cache invalidation failed")
	}
}
