package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stwalsh4118/estate/api/internal/models"
)

// ErrInvalidCatalog is returned when a source holds records the engine cannot use.
var ErrInvalidCatalog = errors.New("invalid catalog data")

// CatalogRepository supplies catalog snapshots to the query engine.
type CatalogRepository interface {
	// Load returns every item of the given kind in the source's natural order.
	// The returned Version changes whenever the underlying items change.
	// An empty catalog is not an error.
	Load(ctx context.Context, kind models.ItemKind) (*models.Catalog, error)

	// Version returns the version Load would report for kind without reading the items.
	Version(ctx context.Context, kind models.ItemKind) (string, error)

	// Ping reports whether the source is reachable.
	Ping(ctx context.Context) error
}

// validateItems checks the invariants every source must uphold: a known kind matching the
// requested one, and a non-empty ID unique within the snapshot.
func validateItems(kind models.ItemKind, items []models.CatalogItem) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("%w: item %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, item.ID)
		}
		seen[item.ID] = struct{}{}
		if item.Kind != kind {
			return fmt.Errorf("%w: item %q has kind %q, expected %q", ErrInvalidCatalog, item.ID, item.Kind, kind)
		}
	}
	return nil
}

func newCatalog(kind models.ItemKind, version string, items []models.CatalogItem) *models.Catalog {
	if items == nil {
		items = []models.CatalogItem{}
	}
	return &models.Catalog{
		Kind:     kind,
		Version:  version,
		Items:    items,
		LoadedAt: time.Now().UTC(),
	}
}
