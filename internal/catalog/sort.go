package catalog

import (
	"cmp"
	"slices"

	"github.com/stwalsh4118/estate/api/internal/models"
	"golang.org/x/text/collate"
)

// Sort returns a new slice ordered by key. The sort is stable: items that compare equal keep
// their relative input order and no secondary key is applied. A zero SortKey returns a copy
// in input order. Numeric descending order is the exact negation of ascending order.
func Sort(items []models.CatalogItem, key models.SortKey, opts ...Option) ([]models.CatalogItem, error) {
	out := slices.Clone(items)
	if out == nil {
		out = []models.CatalogItem{}
	}
	if key.Field == "" {
		return out, nil
	}

	compare, err := comparator(key, buildOptions(opts))
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(out, compare)
	return out, nil
}

// ValidateSortKey checks key without sorting anything.
func ValidateSortKey(key models.SortKey) error {
	if key.Field == "" {
		return nil
	}
	_, err := comparator(key, buildOptions(nil))
	return err
}

func comparator(key models.SortKey, o options) (func(a, b models.CatalogItem) int, error) {
	var sign int
	switch key.Direction {
	case models.SortAsc, "":
		sign = 1
	case models.SortDesc:
		sign = -1
	default:
		return nil, models.NewValidationError("sort.direction", "must be %q or %q", models.SortAsc, models.SortDesc)
	}

	if key.Field == models.SortByName {
		// Collators keep internal buffers, so each sort gets its own.
		col := collate.New(o.locale)
		return func(a, b models.CatalogItem) int {
			return sign * col.CompareString(a.Name, b.Name)
		}, nil
	}

	field := models.NumericField(key.Field)
	if _, ok := (models.CatalogItem{}).Numeric(field); !ok {
		return nil, models.NewValidationError("sort.field", "%q is not a sortable field", key.Field)
	}

	return func(a, b models.CatalogItem) int {
		av, _ := a.Numeric(field)
		bv, _ := b.Numeric(field)
		return sign * cmp.Compare(av, bv)
	}, nil
}
