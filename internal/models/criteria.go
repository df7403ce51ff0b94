package models

import "math"

// NumericField names a numeric CatalogItem field usable in ranges and sorting.
type NumericField string

const (
	FieldPrice        NumericField = "price"
	FieldROI          NumericField = "roi"
	FieldRentalYield  NumericField = "rental_yield"
	FieldRating       NumericField = "rating"
	FieldDeliveryRate NumericField = "delivery_rate"
	FieldUnitsLeft    NumericField = "units_left"
	FieldSuccessScore NumericField = "success_score"
)

// NumericFields lists every numeric field in a stable order.
var NumericFields = []NumericField{
	FieldPrice,
	FieldROI,
	FieldRentalYield,
	FieldRating,
	FieldDeliveryRate,
	FieldUnitsLeft,
	FieldSuccessScore,
}

// CategoricalField names a categorical CatalogItem field usable in set filters.
type CategoricalField string

const (
	FieldLocation        CategoricalField = "location"
	FieldPropertyType    CategoricalField = "property_type"
	FieldProjectStatus   CategoricalField = "project_status"
	FieldSpecializations CategoricalField = "specializations"
)

// CategoricalFields lists every categorical field in a stable order.
var CategoricalFields = []CategoricalField{
	FieldLocation,
	FieldPropertyType,
	FieldProjectStatus,
	FieldSpecializations,
}

// Range is an inclusive [Min, Max] bound. Infinite bounds are allowed for open ends.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Unbounded returns a range that every finite value satisfies.
func Unbounded() Range {
	return Range{Min: math.Inf(-1), Max: math.Inf(1)}
}

// Contains reports whether v lies within the range, both ends inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Overlaps reports whether [lo, hi] shares at least one point with the range.
func (r Range) Overlaps(lo, hi float64) bool {
	return hi >= r.Min && lo <= r.Max
}

// FilterCriteria is the full set of active filter constraints.
// A missing range or an empty selection places no restriction on that field.
type FilterCriteria struct {
	Ranges   map[NumericField]Range        `json:"ranges,omitempty"`
	Selected map[CategoricalField][]string `json:"selected,omitempty"`
	Query    string                        `json:"query,omitempty"`
}

// SortDirection is either ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortField is a numeric field or "name".
type SortField string

// SortByName orders items by collated name rather than by a numeric value.
const SortByName SortField = "name"

// SortKey selects a single sort field and direction.
// The zero value leaves items in their filtered order.
type SortKey struct {
	Field     SortField     `json:"field,omitempty"`
	Direction SortDirection `json:"direction,omitempty"`
}

// Page selects a fixed-size window of a result list. Index is 0-based.
type Page struct {
	Index int `json:"index"`
	Size  int `json:"size"`
}

// Query bundles everything needed to produce one page of results.
type Query struct {
	Criteria FilterCriteria `json:"criteria"`
	Sort     SortKey        `json:"sort"`
	Page     Page           `json:"page"`
}

// PageResult is one page of items plus the totals the caller needs to navigate.
type PageResult struct {
	Items      []CatalogItem `json:"items"`
	Index      int           `json:"index"`
	Size       int           `json:"size"`
	TotalItems int           `json:"totalItems"`
	TotalPages int           `json:"totalPages"`
}
