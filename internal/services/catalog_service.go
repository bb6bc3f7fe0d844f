package services

import (
	"fmt"

	"listino/internal/models"
	"listino/internal/repositories"
)

// CatalogService loads the price list once and serves it read-only for the
// lifetime of the process. The loaded slice is shared by reference; nothing
// mutates it after Load.
type CatalogService struct {
	repo     repositories.CatalogRepository
	products []models.Product
	bySKU    map[string]int
	loaded   bool
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// Load reads the catalog from the repository and formats the price columns
// for display. It is called once at startup; repeated calls return the
// cached catalog.
func (s *CatalogService) Load() ([]models.Product, error) {
	if s.loaded {
		return s.products, nil
	}

	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	bySKU := make(map[string]int, len(products))
	for i := range products {
		products[i].SalePrice = FormatPrice(products[i].SalePrice)
		products[i].PublicPrice = FormatPrice(products[i].PublicPrice)
		bySKU[products[i].SKU] = i
	}

	s.products = products
	s.bySKU = bySKU
	s.loaded = true
	return s.products, nil
}

// Products returns the loaded catalog in source order.
func (s *CatalogService) Products() []models.Product {
	return s.products
}

// FindBySKU retrieves a single product by its SKU.
func (s *CatalogService) FindBySKU(sku string) (*models.Product, error) {
	idx, ok := s.bySKU[sku]
	if !ok {
		return nil, fmt.Errorf("product with SKU %s not found", sku)
	}
	return &s.products[idx], nil
}

// LastUpdated reports the catalog's last-update date for display, if the
// backing source tracks one.
func (s *CatalogService) LastUpdated() string {
	return s.repo.LastUpdated()
}
