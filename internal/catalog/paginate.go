package catalog

import (
	"slices"

	"github.com/stwalsh4118/estate/api/internal/models"
)

// TotalPages returns ceil(count/size), or 0 for an empty list.
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Paginate returns the page.Index-th window of page.Size items. The last page may be short.
// Indexes outside [0, TotalPages-1] yield an empty page rather than an error; clamping is up
// to the caller. A non-positive size is rejected.
func Paginate(items []models.CatalogItem, page models.Page) (models.PageResult, error) {
	if page.Size <= 0 {
		return models.PageResult{}, models.NewValidationError("page.size", "must be > 0 (got %d)", page.Size)
	}

	result := models.PageResult{
		Items:      []models.CatalogItem{},
		Index:      page.Index,
		Size:       page.Size,
		TotalItems: len(items),
		TotalPages: TotalPages(len(items), page.Size),
	}

	if page.Index < 0 || page.Index >= result.TotalPages {
		return result, nil
	}

	start := page.Index * page.Size
	end := min(start+page.Size, len(items))
	result.Items = slices.Clone(items[start:end])

	return result, nil
}
