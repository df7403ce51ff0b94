package cli

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/estate/api/internal/catalog"
	"github.com/stwalsh4118/estate/api/internal/models"
	"github.com/stwalsh4118/estate/api/internal/services"
)

const seed = `
items:
  - id: p1
    kind: property
    name: Marina Heights
    location: Dubai Marina
    propertyType: apartment
    priceMin: 1200000
    priceMax: 1500000
    roi: 7.2
  - id: p2
    kind: property
    name: Creek Vista
    location: Dubai Creek
    propertyType: villa
    priceMin: 900000
    priceMax: 950000
    roi: 8.4
  - id: p3
    kind: property
    name: Palm Residences
    location: Palm Jumeirah
    propertyType: villa
    priceMin: 4000000
    priceMax: 6000000
    roi: 5.1
  - id: d1
    kind: developer
    name: Emaar
    location: Dubai
    specializations: [residential, commercial]
    rating: 4.8
`

func writeSeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))
	return path
}

func ids(items []models.CatalogItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestQueryCommand(t *testing.T) {
	path := writeSeed(t)

	tests := []struct {
		name      string
		args      []string
		wantIDs   []string
		wantTotal int
	}{
		{name: "all properties in file order", args: nil, wantIDs: []string{"p1", "p2", "p3"}, wantTotal: 3},
		{name: "sort by roi descending", args: []string{"--sort", "roi", "--order", "desc"}, wantIDs: []string{"p2", "p1", "p3"}, wantTotal: 3},
		{name: "repeated select values", args: []string{"--select", "property_type=villa", "--sort", "name"}, wantIDs: []string{"p2", "p3"}, wantTotal: 2},
		{name: "open ended range", args: []string{"--range", "price=1000000:"}, wantIDs: []string{"p1", "p3"}, wantTotal: 2},
		{name: "text search", args: []string{"-q", "creek"}, wantIDs: []string{"p2"}, wantTotal: 1},
		{name: "second page", args: []string{"--size", "2", "--page", "1"}, wantIDs: []string{"p3"}, wantTotal: 3},
		{name: "developer kind", args: []string{"--kind", "developer", "--select", "specializations=commercial,hotels"}, wantIDs: []string{"d1"}, wantTotal: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"query", "--catalog", path}, tt.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)

			var result models.PageResult
			require.NoError(t, json.Unmarshal([]byte(out), &result))
			assert.Equal(t, tt.wantIDs, ids(result.Items))
			assert.Equal(t, tt.wantTotal, result.TotalItems)
		})
	}
}

func TestQueryCommand_Errors(t *testing.T) {
	path := writeSeed(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "unknown kind", args: []string{"--kind", "agent"}, wantErr: services.ErrUnknownCatalogKind},
		{name: "unknown sort field", args: []string{"--sort", "colour"}, wantErr: models.ErrInvalidInput},
		{name: "inverted range", args: []string{"--range", "roi=9:1"}, wantErr: models.ErrInvalidInput},
		{name: "zero page size", args: []string{"--size", "0"}, wantErr: models.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"query", "--catalog", path}, tt.args...)
			_, err := execute(t, args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestQueryCommand_MalformedFlags(t *testing.T) {
	path := writeSeed(t)

	for _, args := range [][]string{
		{"--select", "location"},
		{"--range", "price=100"},
		{"--range", "price=abc:200"},
		{"--locale", "not a locale"},
	} {
		_, err := execute(t, append([]string{"query", "--catalog", path}, args...)...)
		assert.Error(t, err, "args %v", args)
	}
}

func TestQueryCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "query", "--catalog", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrCatalogUnavailable)
}

func TestFacetsCommand(t *testing.T) {
	out, err := execute(t, "facets", "--catalog", writeSeed(t))
	require.NoError(t, err)

	var summary catalog.FacetSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 3, summary.Total)
	assert.Len(t, summary.Values[models.FieldPropertyType], 2)
	assert.Equal(t, 5.1, summary.Bounds[models.FieldROI].Min)
	assert.Equal(t, 8.4, summary.Bounds[models.FieldROI].Max)
}

func TestParseBounds(t *testing.T) {
	r, err := parseBounds(":500")
	require.NoError(t, err)
	assert.True(t, math.IsInf(r.Min, -1))
	assert.Equal(t, 500.0, r.Max)

	r, err = parseBounds(" 1.5 : 2 ")
	require.NoError(t, err)
	assert.Equal(t, models.Range{Min: 1.5, Max: 2}, r)

	_, err = parseBounds("1-2")
	assert.Error(t, err)
}

func TestGroupByKind(t *testing.T) {
	groups := groupByKind([]models.CatalogItem{
		{ID: "p1", Kind: models.KindProperty},
		{ID: "p2", Kind: models.KindProperty},
	})

	assert.Len(t, groups[models.KindProperty], 2)
	_, ok := groups[models.KindDeveloper]
	assert.True(t, ok, "every kind gets an entry so absent kinds are cleared")
	assert.Empty(t, groups[models.KindDeveloper])
}
