package catalog

import "github.com/stwalsh4118/estate/api/internal/models"

// Run executes the full Filter -> Sort -> Paginate pipeline for one query.
func Run(items []models.CatalogItem, q models.Query, opts ...Option) (models.PageResult, error) {
	filtered, err := Filter(items, q.Criteria)
	if err != nil {
		return models.PageResult{}, err
	}

	sorted, err := Sort(filtered, q.Sort, opts...)
	if err != nil {
		return models.PageResult{}, err
	}

	return Paginate(sorted, q.Page)
}

// Validate checks every part of q without touching any items.
func Validate(q models.Query) error {
	if err := ValidateCriteria(q.Criteria); err != nil {
		return err
	}
	if err := ValidateSortKey(q.Sort); err != nil {
		return err
	}
	if q.Page.Size <= 0 {
		return models.NewValidationError("page.size", "must be > 0 (got %d)", q.Page.Size)
	}
	return nil
}
