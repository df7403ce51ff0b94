package catalog

import (
	"math"
	"sort"

	"github.com/stwalsh4118/estate/api/internal/models"
)

// FacetValue is one distinct categorical value and how many items carry it.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetSummary describes the shape of a catalog so a caller can build slider bounds and checkbox lists.
type FacetSummary struct {
	Values map[models.CategoricalField][]FacetValue `json:"values"`
	Bounds map[models.NumericField]models.Range     `json:"bounds"`
	Total  int                                      `json:"total"`
}

// Facets counts distinct categorical values (sorted by value) and the min/max of every numeric field.
// Bounds are omitted when items is empty.
func Facets(items []models.CatalogItem) FacetSummary {
	summary := FacetSummary{
		Values: make(map[models.CategoricalField][]FacetValue, len(models.CategoricalFields)),
		Bounds: make(map[models.NumericField]models.Range, len(models.NumericFields)),
		Total:  len(items),
	}

	for _, field := range models.CategoricalFields {
		counts := make(map[string]int)
		for _, item := range items {
			values, _ := item.Categorical(field)
			// A multi-valued field listing the same tag twice still counts the item once.
			seen := make(map[string]struct{}, len(values))
			for _, v := range values {
				if _, dup := seen[v]; dup {
					continue
				}
				seen[v] = struct{}{}
				counts[v]++
			}
		}

		facet := make([]FacetValue, 0, len(counts))
		for v, n := range counts {
			facet = append(facet, FacetValue{Value: v, Count: n})
		}
		sort.Slice(facet, func(i, j int) bool { return facet[i].Value < facet[j].Value })
		summary.Values[field] = facet
	}

	if len(items) == 0 {
		return summary
	}

	for _, field := range models.NumericFields {
		bounds := models.Range{Min: math.Inf(1), Max: math.Inf(-1)}
		for _, item := range items {
			lo, _ := item.Numeric(field)
			hi := lo
			if field == models.FieldPrice {
				lo, hi = item.PriceBounds()
			}
			bounds.Min = math.Min(bounds.Min, lo)
			bounds.Max = math.Max(bounds.Max, hi)
		}
		summary.Bounds[field] = bounds
	}

	return summary
}
