package catalog

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/stwalsh4118/estate/api/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// predicate is a compiled, validated form of FilterCriteria.
type predicate struct {
	ranges   map[models.NumericField]models.Range
	selected map[models.CategoricalField]map[string]struct{}
	query    string
	lower    cases.Caser
}

// Filter returns the items that satisfy every predicate in criteria, preserving their input order.
// Criteria are validated first: unknown fields, NaN bounds and ranges with min > max are rejected
// with a *models.ValidationError instead of silently matching nothing.
func Filter(items []models.CatalogItem, criteria models.FilterCriteria) ([]models.CatalogItem, error) {
	p, err := compile(criteria)
	if err != nil {
		return nil, err
	}

	out := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if p.match(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// ValidateCriteria checks criteria without evaluating them.
func ValidateCriteria(criteria models.FilterCriteria) error {
	_, err := compile(criteria)
	return err
}

func compile(criteria models.FilterCriteria) (*predicate, error) {
	p := &predicate{
		ranges:   make(map[models.NumericField]models.Range, len(criteria.Ranges)),
		selected: make(map[models.CategoricalField]map[string]struct{}, len(criteria.Selected)),
		lower:    cases.Lower(language.Und),
	}

	// Fields are checked in sorted order so the reported field is stable when several are invalid.
	for _, field := range slices.Sorted(maps.Keys(criteria.Ranges)) {
		r := criteria.Ranges[field]
		name := fmt.Sprintf("ranges.%s", field)
		if _, ok := (models.CatalogItem{}).Numeric(field); !ok {
			return nil, models.NewValidationError(name, "is not a filterable numeric field")
		}
		if math.IsNaN(r.Min) || math.IsNaN(r.Max) {
			return nil, models.NewValidationError(name, "bounds must be numbers")
		}
		if r.Min > r.Max {
			return nil, models.NewValidationError(name, "min must be <= max (got min=%g, max=%g)", r.Min, r.Max)
		}
		p.ranges[field] = r
	}

	for _, field := range slices.Sorted(maps.Keys(criteria.Selected)) {
		values := criteria.Selected[field]
		if _, ok := (models.CatalogItem{}).Categorical(field); !ok {
			return nil, models.NewValidationError(fmt.Sprintf("selected.%s", field), "is not a filterable categorical field")
		}
		// An empty selection means every value passes, so it needs no predicate at all.
		if len(values) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		p.selected[field] = set
	}

	if q := strings.TrimSpace(criteria.Query); q != "" {
		p.query = p.lower.String(q)
	}

	return p, nil
}

func (p *predicate) match(item models.CatalogItem) bool {
	for field, r := range p.ranges {
		if field == models.FieldPrice {
			lo, hi := item.PriceBounds()
			if !r.Overlaps(lo, hi) {
				return false
			}
			continue
		}
		v, _ := item.Numeric(field)
		if !r.Contains(v) {
			return false
		}
	}

	for field, set := range p.selected {
		values, _ := item.Categorical(field)
		if !intersects(set, values) {
			return false
		}
	}

	return p.query == "" || p.matchText(item)
}

// matchText checks name, location and every specialization for the lower-cased query.
func (p *predicate) matchText(item models.CatalogItem) bool {
	if strings.Contains(p.lower.String(item.Name), p.query) {
		return true
	}
	if strings.Contains(p.lower.String(item.Location), p.query) {
		return true
	}
	for _, tag := range item.Specializations {
		if strings.Contains(p.lower.String(tag), p.query) {
			return true
		}
	}
	return false
}

func intersects(set map[string]struct{}, values []string) bool {
	for _, v := range values {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}
