package models

import "time"

// ItemKind distinguishes the two catalogs the platform browses.
type ItemKind string

const (
	KindProperty  ItemKind = "property"
	KindDeveloper ItemKind = "developer"
)

// Valid reports whether k is one of the known catalog kinds.
func (k ItemKind) Valid() bool {
	return k == KindProperty || k == KindDeveloper
}

// CatalogItem is a property or developer record available for filtering and sorting.
// Items are read-only once loaded; the query engine never mutates them.
// Numeric fields that are absent in the source are zero.
type CatalogItem struct {
	ID              string   `json:"id" yaml:"id"`
	Kind            ItemKind `json:"kind" yaml:"kind"`
	Name            string   `json:"name" yaml:"name"`
	Location        string   `json:"location" yaml:"location"`
	PropertyType    string   `json:"propertyType,omitempty" yaml:"propertyType"`
	ProjectStatus   string   `json:"projectStatus,omitempty" yaml:"projectStatus"`
	Specializations []string `json:"specializations,omitempty" yaml:"specializations"`
	PriceMin        float64  `json:"priceMin" yaml:"priceMin"`
	PriceMax        float64  `json:"priceMax" yaml:"priceMax"`
	ROI             float64  `json:"roi" yaml:"roi"`
	RentalYield     float64  `json:"rentalYield" yaml:"rentalYield"`
	Rating          float64  `json:"rating" yaml:"rating"`
	DeliveryRate    float64  `json:"deliveryRate" yaml:"deliveryRate"`
	SuccessScore    float64  `json:"successScore" yaml:"successScore"`
	UnitsLeft       int      `json:"unitsLeft" yaml:"unitsLeft"`
}

// Catalog is a snapshot of items as supplied by a data source.
// Version changes whenever the underlying data changes and is used as a cache key component.
type Catalog struct {
	LoadedAt time.Time
	Version  string
	Kind     ItemKind
	Items    []CatalogItem
}

// Numeric returns the value of a numeric field. Price resolves to the lower end of the price range.
// The second result is false for an unknown field.
func (it CatalogItem) Numeric(field NumericField) (float64, bool) {
	switch field {
	case FieldPrice:
		return it.PriceMin, true
	case FieldROI:
		return it.ROI, true
	case FieldRentalYield:
		return it.RentalYield, true
	case FieldRating:
		return it.Rating, true
	case FieldDeliveryRate:
		return it.DeliveryRate, true
	case FieldUnitsLeft:
		return float64(it.UnitsLeft), true
	case FieldSuccessScore:
		return it.SuccessScore, true
	default:
		return 0, false
	}
}

// PriceBounds returns the item's price range. A single price is reported as a degenerate range,
// and a missing upper end collapses onto the lower one.
func (it CatalogItem) PriceBounds() (lo, hi float64) {
	lo, hi = it.PriceMin, it.PriceMax
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Categorical returns the values of a categorical field. Single-valued fields yield one element,
// or none when empty.
func (it CatalogItem) Categorical(field CategoricalField) ([]string, bool) {
	single := func(v string) []string {
		if v == "" {
			return nil
		}
		return []string{v}
	}

	switch field {
	case FieldLocation:
		return single(it.Location), true
	case FieldPropertyType:
		return single(it.PropertyType), true
	case FieldProjectStatus:
		return single(it.ProjectStatus), true
	case FieldSpecializations:
		return it.Specializations, true
	default:
		return nil, false
	}
}
