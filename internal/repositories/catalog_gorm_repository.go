package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"listino/internal/models"
)

// GORMCatalogRepository is a GORM implementation of CatalogRepository for
// deployments that keep the price list in a database instead of a file.
type GORMCatalogRepository struct {
	db *gorm.DB
}

// NewGORMCatalogRepository creates a new instance of GORMCatalogRepository.
func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{
		db: db,
	}
}

// GetAll retrieves every catalog row ordered by insertion, so the catalog
// keeps the same stable ordering the file-based source has.
func (r *GORMCatalogRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("row_id").Find(&products).Error; err != nil {
		return nil, &models.CatalogUnavailableError{Err: fmt.Errorf("failed to read catalog rows: %w", err)}
	}
	return products, nil
}

// LastUpdated is not tracked for the database-backed catalog.
func (r *GORMCatalogRepository) LastUpdated() string {
	return ""
}
