package storage

import (
	"context"

	"jiji-catalog/models"
)

// ProductStore is the catalog collaborator the importer reconciles into.
// FindByTitle returns every match so the caller can detect ambiguity
// instead of silently updating an arbitrary row. The importer never
// deletes.
type ProductStore interface {
	// FindByExternalID returns the product whose external identity equals
	// externalID, or nil when there is no match.
	FindByExternalID(ctx context.Context, externalID string) (*models.Product, error)

	// FindByTitle returns all products with an exact title match.
	FindByTitle(ctx context.Context, title string) ([]*models.Product, error)

	// Create inserts a new product and fills in its generated fields.
	Create(ctx context.Context, p *models.Product) error

	// Save persists modifications to an already-loaded product.
	Save(ctx context.Context, p *models.Product) error
}

// AdExporter persists the full harvested collection to a derived format.
type AdExporter interface {
	WriteAds(ads []*models.Ad) error
	Close() error
}
