package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stwalsh4118/estate/api/internal/catalog"
	"github.com/stwalsh4118/estate/api/internal/config"
	apierrors "github.com/stwalsh4118/estate/api/internal/errors"
	"github.com/stwalsh4118/estate/api/internal/models"
	"github.com/stwalsh4118/estate/api/internal/services"
)

// CatalogHandler serves catalog browsing requests.
type CatalogHandler struct {
	service         services.CatalogService
	defaultPageSize int
	maxPageSize     int
}

// NewCatalogHandler creates a new CatalogHandler instance.
func NewCatalogHandler(service services.CatalogService, cfg config.CatalogConfig) *CatalogHandler {
	return &CatalogHandler{
		service:         service,
		defaultPageSize: cfg.DefaultPageSize,
		maxPageSize:     cfg.MaxPageSize,
	}
}

// ItemsRequest holds the scalar query parameters of the items endpoint. Range and
// selection parameters are read separately because their names depend on the field.
type ItemsRequest struct {
	Q     string `form:"q" binding:"max=200"`
	Sort  string `form:"sort"`
	Order string `form:"order" binding:"omitempty,oneof=asc desc"`
	Page  int    `form:"page"`
	Size  int    `form:"size" binding:"gte=0"`
}

// FacetsResponse wraps a facet summary with the kind it describes.
type FacetsResponse struct {
	Kind models.ItemKind `json:"kind"`
	catalog.FacetSummary
}

// Items handles GET /api/v1/catalog/:kind/items.
//
// Categorical filters accept repeated or comma-separated values (?location=A,B).
// Numeric filters use <field>_min and <field>_max; a missing end is open.
// page is 0-based; size defaults to the configured page size and is capped at the maximum.
func (h *CatalogHandler) Items(c *gin.Context) {
	kind := models.ItemKind(c.Param("kind"))

	var req ItemsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid query parameters", nil)
		return
	}

	ranges, err := parseRanges(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error(), nil)
		return
	}

	query := models.Query{
		Criteria: models.FilterCriteria{
			Ranges:   ranges,
			Selected: parseSelections(c),
			Query:    req.Q,
		},
		Sort: models.SortKey{
			Field:     models.SortField(req.Sort),
			Direction: models.SortDirection(req.Order),
		},
		Page: models.Page{
			Index: req.Page,
			Size:  h.pageSize(req.Size),
		},
	}

	result, err := h.service.Query(c.Request.Context(), kind, query)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Facets handles GET /api/v1/catalog/:kind/facets.
func (h *CatalogHandler) Facets(c *gin.Context) {
	kind := models.ItemKind(c.Param("kind"))

	summary, err := h.service.Facets(c.Request.Context(), kind)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, FacetsResponse{
		Kind:         kind,
		FacetSummary: *summary,
	})
}

func (h *CatalogHandler) handleError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apierrors.InvalidInput(c, validationErr)
	case errors.Is(err, services.ErrUnknownCatalogKind):
		apierrors.NotFound(c, "Unknown catalog kind")
	case errors.Is(err, services.ErrCatalogUnavailable):
		apierrors.ServiceUnavailable(c, "Catalog is temporarily unavailable", err)
	default:
		apierrors.InternalServerError(c, "Failed to query catalog", err)
	}
}

func (h *CatalogHandler) pageSize(requested int) int {
	switch {
	case requested <= 0:
		return h.defaultPageSize
	case requested > h.maxPageSize:
		return h.maxPageSize
	default:
		return requested
	}
}

// parseRanges reads <field>_min and <field>_max for every numeric field.
// Infinite bounds stand in for a missing end.
func parseRanges(c *gin.Context) (map[models.NumericField]models.Range, error) {
	ranges := make(map[models.NumericField]models.Range)

	for _, field := range models.NumericFields {
		lo, hasLo, err := floatParam(c, string(field)+"_min")
		if err != nil {
			return nil, err
		}
		hi, hasHi, err := floatParam(c, string(field)+"_max")
		if err != nil {
			return nil, err
		}
		if !hasLo && !hasHi {
			continue
		}

		r := models.Unbounded()
		if hasLo {
			r.Min = lo
		}
		if hasHi {
			r.Max = hi
		}
		ranges[field] = r
	}

	return ranges, nil
}

func floatParam(c *gin.Context, name string) (float64, bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("query parameter %s must be a finite number", name)
	}
	return v, true, nil
}

// parseSelections reads every categorical field, splitting comma-separated values.
func parseSelections(c *gin.Context) map[models.CategoricalField][]string {
	selected := make(map[models.CategoricalField][]string)

	for _, field := range models.CategoricalFields {
		var values []string
		for _, raw := range c.QueryArray(string(field)) {
			for _, v := range strings.Split(raw, ",") {
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, v)
				}
			}
		}
		if len(values) > 0 {
			selected[field] = values
		}
	}

	return selected
}
