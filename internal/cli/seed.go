package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stwalsh4118/estate/api/internal/config"
	"github.com/stwalsh4118/estate/api/internal/database"
	"github.com/stwalsh4118/estate/api/internal/logger"
	"github.com/stwalsh4118/estate/api/internal/models"
	"github.com/stwalsh4118/estate/api/internal/repository"
)

// SeedSummary reports how many items of each kind were written.
type SeedSummary struct {
	Database string         `json:"database"`
	Written  map[string]int `json:"written"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(opts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a catalog file into PostgreSQL",
		Long: `Replace the catalog_items rows of every kind with the contents of a seed file.
Database settings come from the same DB_* environment variables (or .env file) as the server.
Kinds absent from the file are left empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read catalog file: %w", err)
			}
			items, err := repository.ParseCatalog(data)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			ctx := cmd.Context()
			db, err := database.NewPostgresPool(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.EnsureSchema(ctx); err != nil {
				return err
			}

			log := opts.logger(cmd)
			repo := repository.NewPostgresCatalogRepository(db)
			summary := SeedSummary{Database: cfg.Database.Name, Written: make(map[string]int)}

			for kind, kindItems := range groupByKind(items) {
				if err := repo.Replace(ctx, kind, kindItems); err != nil {
					return err
				}
				log.Info("Catalog kind replaced", logger.Fields{"kind": string(kind), "items": len(kindItems)})
				summary.Written[string(kind)] = len(kindItems)
			}

			return opts.writeJSON(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().StringVar(&file, "catalog", "", "catalog seed file (YAML or JSON)")
	markRequired(cmd, "catalog")

	return cmd
}

// groupByKind splits items per kind, keeping file order, with an entry for every known kind.
func groupByKind(items []models.CatalogItem) map[models.ItemKind][]models.CatalogItem {
	groups := map[models.ItemKind][]models.CatalogItem{
		models.KindProperty:  nil,
		models.KindDeveloper: nil,
	}
	for _, item := range items {
		groups[item.Kind] = append(groups[item.Kind], item)
	}
	return groups
}
