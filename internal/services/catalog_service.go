package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stwalsh4118/estate/api/internal/cache"
	"github.com/stwalsh4118/estate/api/internal/catalog"
	"github.com/stwalsh4118/estate/api/internal/logger"
	"github.com/stwalsh4118/estate/api/internal/metrics"
	"github.com/stwalsh4118/estate/api/internal/models"
	"github.com/stwalsh4118/estate/api/internal/repository"
	"golang.org/x/text/language"
)

// Service-level errors
var (
	ErrUnknownCatalogKind = errors.New("unknown catalog kind")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// CatalogService defines the catalog browsing operations.
type CatalogService interface {
	// Query filters, sorts and pages the catalog of the given kind.
	// Returns ErrUnknownCatalogKind for an unsupported kind.
	// Returns a *models.ValidationError (matching models.ErrInvalidInput) for malformed queries.
	// Returns ErrCatalogUnavailable when the catalog source cannot be read.
	Query(ctx context.Context, kind models.ItemKind, q models.Query) (*models.PageResult, error)

	// Facets summarizes the distinct values and numeric bounds of the whole catalog of kind.
	Facets(ctx context.Context, kind models.ItemKind) (*catalog.FacetSummary, error)
}

// catalogService is the concrete implementation of CatalogService.
type catalogService struct {
	repo    repository.CatalogRepository
	cache   cache.QueryCache
	metrics *metrics.Metrics
	log     *logger.Logger
	locale  language.Tag
}

// NewCatalogService creates a new instance of CatalogService.
// A nil queryCache disables memoization.
func NewCatalogService(
	repo repository.CatalogRepository,
	queryCache cache.QueryCache,
	m *metrics.Metrics,
	log *logger.Logger,
	locale language.Tag,
) CatalogService {
	return &catalogService{
		repo:    repo,
		cache:   queryCache,
		metrics: m,
		log:     log,
		locale:  locale,
	}
}

// Query validates q before touching the source, then serves the page from the cache when
// the same query was already answered against the same catalog version. Only the version is
// read before the cache lookup; items are loaded on a miss. Cache failures are logged and
// the query is computed directly.
func (s *catalogService) Query(ctx context.Context, kind models.ItemKind, q models.Query) (*models.PageResult, error) {
	started := time.Now()

	if !kind.Valid() {
		s.log.Warn("Unknown catalog kind requested", logger.Fields{"kind": string(kind)})
		return nil, fmt.Errorf("%w: %q", ErrUnknownCatalogKind, kind)
	}

	if err := catalog.Validate(q); err != nil {
		s.log.Warn("Rejected catalog query", logger.Fields{
			"kind":  string(kind),
			"error": err.Error(),
		})
		s.metrics.ObserveQuery(string(kind), metrics.OutcomeInvalid, started)
		return nil, err
	}

	if s.cache == nil {
		s.metrics.ObserveCache(string(kind), metrics.CacheDisabled)
	} else {
		version, err := s.repo.Version(ctx, kind)
		if err != nil {
			s.log.Error("Failed to read catalog version", err, logger.Fields{"kind": string(kind)})
			s.metrics.ObserveQuery(string(kind), metrics.OutcomeError, started)
			return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		}
		if result, ok := s.cached(ctx, kind, cache.QueryKey(kind, version, s.locale.String(), q)); ok {
			s.metrics.ObserveQuery(string(kind), metrics.OutcomeOK, started)
			return result, nil
		}
	}

	snapshot, err := s.load(ctx, kind)
	if err != nil {
		s.metrics.ObserveQuery(string(kind), metrics.OutcomeError, started)
		return nil, err
	}

	result, err := catalog.Run(snapshot.Items, q, catalog.WithLocale(s.locale))
	if err != nil {
		// Validate already accepted q, so only a validation error can surface here.
		s.metrics.ObserveQuery(string(kind), metrics.OutcomeInvalid, started)
		return nil, err
	}

	if s.cache != nil {
		// Keyed by the loaded snapshot, which may be newer than the version looked up above.
		key := cache.QueryKey(kind, snapshot.Version, s.locale.String(), q)
		if err := s.cache.Set(ctx, key, &result); err != nil {
			s.log.Warn("Failed to store query result in cache", logger.Fields{
				"kind":  string(kind),
				"error": err.Error(),
			})
		}
	}

	s.log.Debug("Catalog query served", logger.Fields{
		"kind":        string(kind),
		"version":     snapshot.Version,
		"total_items": result.TotalItems,
		"page":        result.Index,
		"size":        result.Size,
	})
	s.metrics.ObserveQuery(string(kind), metrics.OutcomeOK, started)

	return &result, nil
}

// Facets loads the catalog of kind and summarizes it.
func (s *catalogService) Facets(ctx context.Context, kind models.ItemKind) (*catalog.FacetSummary, error) {
	if !kind.Valid() {
		s.log.Warn("Unknown catalog kind requested", logger.Fields{"kind": string(kind)})
		return nil, fmt.Errorf("%w: %q", ErrUnknownCatalogKind, kind)
	}

	snapshot, err := s.load(ctx, kind)
	if err != nil {
		return nil, err
	}

	summary := catalog.Facets(snapshot.Items)
	return &summary, nil
}

func (s *catalogService) load(ctx context.Context, kind models.ItemKind) (*models.Catalog, error) {
	snapshot, err := s.repo.Load(ctx, kind)
	if err != nil {
		s.log.Error("Failed to load catalog", err, logger.Fields{"kind": string(kind)})
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	s.metrics.SetCatalogSize(string(kind), len(snapshot.Items))
	return snapshot, nil
}

func (s *catalogService) cached(ctx context.Context, kind models.ItemKind, key string) (*models.PageResult, bool) {
	result, hit, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.log.Warn("Query cache lookup failed, computing directly", logger.Fields{
			"kind":  string(kind),
			"error": err.Error(),
		})
		s.metrics.ObserveCache(string(kind), metrics.CacheBypass)
		return nil, false
	case hit:
		s.metrics.ObserveCache(string(kind), metrics.CacheHit)
		return result, true
	default:
		s.metrics.ObserveCache(string(kind), metrics.CacheMiss)
		return nil, false
	}
}
