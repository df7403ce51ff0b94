package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/stwalsh4118/estate/api/internal/models"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk layout of a seed catalog. JSON files parse too,
// since JSON is valid YAML.
type catalogFile struct {
	Items []models.CatalogItem `yaml:"items"`
}

// fileCatalogRepository serves a catalog from a YAML or JSON file. The file is re-read on
// every Load so replacing it swaps the catalog wholesale.
type fileCatalogRepository struct {
	path string
}

// NewFileCatalogRepository creates a CatalogRepository reading from path.
func NewFileCatalogRepository(path string) CatalogRepository {
	return &fileCatalogRepository{path: path}
}

// Load reads the file and keeps the items of the requested kind in file order.
// The version is the SHA-256 of the file contents.
func (r *fileCatalogRepository) Load(_ context.Context, kind models.ItemKind) (*models.Catalog, error) {
	data, err := r.read()
	if err != nil {
		return nil, err
	}

	items, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", r.path, err)
	}

	var selected []models.CatalogItem
	for _, item := range items {
		if item.Kind == kind {
			selected = append(selected, item)
		}
	}

	return newCatalog(kind, fileVersion(data), selected), nil
}

// Version hashes the file without parsing it. Every kind shares the file's version.
func (r *fileCatalogRepository) Version(_ context.Context, _ models.ItemKind) (string, error) {
	data, err := r.read()
	if err != nil {
		return "", err
	}
	return fileVersion(data), nil
}

func (r *fileCatalogRepository) read() ([]byte, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", r.path, err)
	}
	return data, nil
}

func fileVersion(data []byte) string {
	sum := sha256.Sum256(data)
	return "file-" + hex.EncodeToString(sum[:8])
}

// Ping checks that the file is still present.
func (r *fileCatalogRepository) Ping(_ context.Context) error {
	if _, err := os.Stat(r.path); err != nil {
		return fmt.Errorf("catalog file unavailable: %w", err)
	}
	return nil
}

// ParseCatalog decodes a seed document and validates every item regardless of kind.
func ParseCatalog(data []byte) ([]models.CatalogItem, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	byKind := make(map[models.ItemKind][]models.CatalogItem)
	for i, item := range doc.Items {
		if !item.Kind.Valid() {
			return nil, fmt.Errorf("%w: item %d has unknown kind %q", ErrInvalidCatalog, i, item.Kind)
		}
		byKind[item.Kind] = append(byKind[item.Kind], item)
	}
	for kind, items := range byKind {
		if err := validateItems(kind, items); err != nil {
			return nil, err
		}
	}

	return doc.Items, nil
}
