package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stwalsh4118/estate/api/internal/database"
	"github.com/stwalsh4118/estate/api/internal/models"
)

var catalogColumns = []string{
	"kind", "id", "position", "name",
	"location", "property_type", "project_status", "specializations",
	"price_min", "price_max", "roi", "rental_yield",
	"rating", "delivery_rate", "success_score", "units_left",
	"updated_at",
}

// PostgresCatalogRepository is a CatalogRepository that can also be written to.
type PostgresCatalogRepository interface {
	CatalogRepository

	// Replace swaps every stored item of kind for items.
	Replace(ctx context.Context, kind models.ItemKind, items []models.CatalogItem) error
}

// postgresCatalogRepository reads catalog items from the catalog_items table.
type postgresCatalogRepository struct {
	db *database.Database
}

// NewPostgresCatalogRepository creates a CatalogRepository backed by PostgreSQL.
func NewPostgresCatalogRepository(db *database.Database) PostgresCatalogRepository {
	return &postgresCatalogRepository{
		db: db,
	}
}

// Load reads all rows of one kind. NULL numeric columns are read as zero and a NULL
// specializations array as an empty list, matching how the engine treats absent values.
//
// The version is derived from the row count and the latest updated_at, computed in the
// same statement with window functions so it always describes the rows returned.
func (r *postgresCatalogRepository) Load(ctx context.Context, kind models.ItemKind) (*models.Catalog, error) {
	query := `
		SELECT
			id,
			kind,
			name,
			COALESCE(location, ''),
			COALESCE(property_type, ''),
			COALESCE(project_status, ''),
			COALESCE(specializations, '{}'::text[]),
			COALESCE(price_min, 0),
			COALESCE(price_max, 0),
			COALESCE(roi, 0),
			COALESCE(rental_yield, 0),
			COALESCE(rating, 0),
			COALESCE(delivery_rate, 0),
			COALESCE(success_score, 0),
			COALESCE(units_left, 0),
			count(*) OVER (),
			max(updated_at) OVER ()
		FROM catalog_items
		WHERE kind = $1
		ORDER BY position, id
	`

	rows, err := r.db.Pool.Query(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog items (kind=%s): %w", kind, err)
	}
	defer rows.Close()

	var (
		items     []models.CatalogItem
		count     int64
		updatedAt time.Time
	)

	for rows.Next() {
		var item models.CatalogItem
		var itemKind string

		err := rows.Scan(
			&item.ID,
			&itemKind,
			&item.Name,
			&item.Location,
			&item.PropertyType,
			&item.ProjectStatus,
			&item.Specializations,
			&item.PriceMin,
			&item.PriceMax,
			&item.ROI,
			&item.RentalYield,
			&item.Rating,
			&item.DeliveryRate,
			&item.SuccessScore,
			&item.UnitsLeft,
			&count,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		item.Kind = models.ItemKind(itemKind)

		items = append(items, item)
	}

	// Check for errors during iteration
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog rows: %w", err)
	}

	if err := validateItems(kind, items); err != nil {
		return nil, err
	}

	return newCatalog(kind, postgresVersion(count, updatedAt), items), nil
}

// Version runs the aggregate half of Load on its own, so callers can check a cache
// before paying for the row scan.
func (r *postgresCatalogRepository) Version(ctx context.Context, kind models.ItemKind) (string, error) {
	var (
		count     int64
		updatedAt *time.Time
	)
	err := r.db.Pool.QueryRow(ctx,
		`SELECT count(*), max(updated_at) FROM catalog_items WHERE kind = $1`,
		string(kind),
	).Scan(&count, &updatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to read catalog version (kind=%s): %w", kind, err)
	}

	if updatedAt == nil {
		return postgresVersion(count, time.Time{}), nil
	}
	return postgresVersion(count, *updatedAt), nil
}

// Ping checks database connectivity.
func (r *postgresCatalogRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func postgresVersion(count int64, updatedAt time.Time) string {
	if count == 0 {
		return "pg-empty"
	}
	return fmt.Sprintf("pg-%d-%d", count, updatedAt.UTC().UnixNano())
}

// Replace swaps the stored items of one kind for the given snapshot inside a single
// transaction. Item order is preserved through the position column.
func (r *postgresCatalogRepository) Replace(ctx context.Context, kind models.ItemKind, items []models.CatalogItem) error {
	if err := validateItems(kind, items); err != nil {
		return err
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM catalog_items WHERE kind = $1`, string(kind)); err != nil {
		return fmt.Errorf("failed to clear catalog items (kind=%s): %w", kind, err)
	}

	rows := make([][]any, 0, len(items))
	now := time.Now().UTC()
	for i, item := range items {
		rows = append(rows, []any{
			string(kind), item.ID, i, item.Name,
			item.Location, item.PropertyType, item.ProjectStatus, item.Specializations,
			item.PriceMin, item.PriceMax, item.ROI, item.RentalYield,
			item.Rating, item.DeliveryRate, item.SuccessScore, item.UnitsLeft,
			now,
		})
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{"catalog_items"}, catalogColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to copy catalog items (kind=%s): %w", kind, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit catalog replace: %w", err)
	}
	return nil
}
