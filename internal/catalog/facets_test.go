package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stwalsh4118/estate/api/internal/models"
)

func TestFacets_CountsAndBounds(t *testing.T) {
	summary := Facets(sampleCatalog())

	assert.Equal(t, 7, summary.Total)
	assert.Equal(t, []FacetValue{
		{Value: "apartment", Count: 4},
		{Value: "studio", Count: 1},
		{Value: "townhouse", Count: 1},
		{Value: "villa", Count: 1},
	}, summary.Values[models.FieldPropertyType])
	assert.Equal(t, []FacetValue{
		{Value: "off-plan", Count: 3},
		{Value: "ready", Count: 4},
	}, summary.Values[models.FieldProjectStatus])

	assert.Equal(t, models.Range{Min: 650000, Max: 8200000}, summary.Bounds[models.FieldPrice])
	assert.Equal(t, models.Range{Min: 5.1, Max: 9.3}, summary.Bounds[models.FieldROI])
	assert.Equal(t, models.Range{Min: 2, Max: 40}, summary.Bounds[models.FieldUnitsLeft])
}

func TestFacets_PriceBoundsUseRangeEnds(t *testing.T) {
	summary := Facets(developerCatalog())

	assert.Equal(t, models.Range{Min: 500000, Max: 30000000}, summary.Bounds[models.FieldPrice])
	assert.Equal(t, []FacetValue{
		{Value: "Waterfront", Count: 1},
		{Value: "affordable", Count: 1},
		{Value: "branded residences", Count: 1},
		{Value: "luxury", Count: 2},
		{Value: "master communities", Count: 1},
		{Value: "villas", Count: 1},
	}, summary.Values[models.FieldSpecializations])
}

func TestFacets_DuplicateTagsCountOnce(t *testing.T) {
	summary := Facets([]models.CatalogItem{
		{ID: "x", Specializations: []string{"luxury", "luxury"}},
	})
	assert.Equal(t, []FacetValue{{Value: "luxury", Count: 1}}, summary.Values[models.FieldSpecializations])
}

func TestFacets_EmptyCatalog(t *testing.T) {
	summary := Facets(nil)

	assert.Equal(t, 0, summary.Total)
	assert.Empty(t, summary.Bounds)
	assert.Empty(t, summary.Values[models.FieldLocation])
}
