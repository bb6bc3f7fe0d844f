package repositories

import (
	"listino/internal/models"
)

// CatalogRepository defines the interface for reading the price list.
type CatalogRepository interface {
	// GetAll returns every catalog row in source order. Failures are
	// reported as *models.CatalogUnavailableError.
	GetAll() ([]models.Product, error)
	// LastUpdated returns the catalog's last-update date formatted for
	// display, or "" when the source cannot report one.
	LastUpdated() string
}
