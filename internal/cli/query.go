package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stwalsh4118/estate/api/internal/catalog"
	"github.com/stwalsh4118/estate/api/internal/metrics"
	"github.com/stwalsh4118/estate/api/internal/models"
	"github.com/stwalsh4118/estate/api/internal/repository"
	"github.com/stwalsh4118/estate/api/internal/services"
	"golang.org/x/text/language"
)

type queryOptions struct {
	file    string
	kind    string
	text    string
	selects []string
	ranges  []string
	sort    string
	order   string
	page    int
	size    int
	locale  string
}

// NewQueryCommand creates the query command.
func NewQueryCommand(opts *RootOptions) *cobra.Command {
	q := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter, sort and page a catalog file",
		Long: `Run one catalog query against a YAML or JSON seed file.

--select takes field=value[,value...] and may be repeated; values of one field are OR-ed,
fields are AND-ed. --range takes field=min:max where either end may be empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := q.build()
			if err != nil {
				return err
			}
			tag, err := language.Parse(q.locale)
			if err != nil {
				return fmt.Errorf("invalid locale %q: %w", q.locale, err)
			}

			service := services.NewCatalogService(
				repository.NewFileCatalogRepository(q.file),
				nil,
				metrics.NewNop(),
				opts.logger(cmd),
				tag,
			)
			result, err := service.Query(cmd.Context(), models.ItemKind(q.kind), query)
			if err != nil {
				return err
			}
			return opts.writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&q.file, "catalog", "", "catalog seed file (YAML or JSON)")
	cmd.Flags().StringVar(&q.kind, "kind", string(models.KindProperty), "catalog kind (property|developer)")
	cmd.Flags().StringVarP(&q.text, "query", "q", "", "case-insensitive text search")
	cmd.Flags().StringArrayVar(&q.selects, "select", nil, "categorical filter field=value[,value]")
	cmd.Flags().StringArrayVar(&q.ranges, "range", nil, "numeric filter field=min:max")
	cmd.Flags().StringVar(&q.sort, "sort", "", "sort field (name or a numeric field)")
	cmd.Flags().StringVar(&q.order, "order", string(models.SortAsc), "sort direction (asc|desc)")
	cmd.Flags().IntVar(&q.page, "page", 0, "0-based page index")
	cmd.Flags().IntVar(&q.size, "size", 12, "page size")
	cmd.Flags().StringVar(&q.locale, "locale", catalog.DefaultLocale.String(), "collation locale for name sorting")
	markRequired(cmd, "catalog")

	return cmd
}

// NewFacetsCommand creates the facets command.
func NewFacetsCommand(opts *RootOptions) *cobra.Command {
	var file, kind string

	cmd := &cobra.Command{
		Use:   "facets",
		Short: "Summarize the values and numeric bounds of a catalog file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := services.NewCatalogService(
				repository.NewFileCatalogRepository(file),
				nil,
				metrics.NewNop(),
				opts.logger(cmd),
				catalog.DefaultLocale,
			)
			summary, err := service.Facets(cmd.Context(), models.ItemKind(kind))
			if err != nil {
				return err
			}
			return opts.writeJSON(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().StringVar(&file, "catalog", "", "catalog seed file (YAML or JSON)")
	cmd.Flags().StringVar(&kind, "kind", string(models.KindProperty), "catalog kind (property|developer)")
	markRequired(cmd, "catalog")

	return cmd
}

func (q *queryOptions) build() (models.Query, error) {
	query := models.Query{
		Criteria: models.FilterCriteria{
			Ranges:   make(map[models.NumericField]models.Range),
			Selected: make(map[models.CategoricalField][]string),
			Query:    q.text,
		},
		Sort: models.SortKey{
			Field:     models.SortField(q.sort),
			Direction: models.SortDirection(q.order),
		},
		Page: models.Page{Index: q.page, Size: q.size},
	}

	for _, s := range q.selects {
		field, values, ok := strings.Cut(s, "=")
		if !ok || field == "" {
			return models.Query{}, fmt.Errorf("invalid --select %q: want field=value[,value]", s)
		}
		f := models.CategoricalField(field)
		for _, v := range strings.Split(values, ",") {
			if v = strings.TrimSpace(v); v != "" {
				query.Criteria.Selected[f] = append(query.Criteria.Selected[f], v)
			}
		}
	}

	for _, r := range q.ranges {
		field, bounds, ok := strings.Cut(r, "=")
		if !ok || field == "" {
			return models.Query{}, fmt.Errorf("invalid --range %q: want field=min:max", r)
		}
		rng, err := parseBounds(bounds)
		if err != nil {
			return models.Query{}, fmt.Errorf("invalid --range %q: %w", r, err)
		}
		query.Criteria.Ranges[models.NumericField(field)] = rng
	}

	return query, nil
}

// parseBounds reads "min:max"; an empty side is unbounded.
func parseBounds(s string) (models.Range, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return models.Range{}, fmt.Errorf("missing ':' between min and max")
	}

	r := models.Unbounded()
	if lo = strings.TrimSpace(lo); lo != "" {
		v, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return models.Range{}, fmt.Errorf("min: %w", err)
		}
		r.Min = v
	}
	if hi = strings.TrimSpace(hi); hi != "" {
		v, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return models.Range{}, fmt.Errorf("max: %w", err)
		}
		r.Max = v
	}
	return r, nil
}
