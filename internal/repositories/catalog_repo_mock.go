package repositories

import (
	"sync"

	"listino/internal/models"
)

// MockCatalogRepository is an in-memory implementation of CatalogRepository,
// used by tests and local seeding.
type MockCatalogRepository struct {
	products    []models.Product
	lastUpdated string
	mu          sync.RWMutex
}

// NewMockCatalogRepository creates a new instance of MockCatalogRepository.
func NewMockCatalogRepository(products ...models.Product) *MockCatalogRepository {
	return &MockCatalogRepository{
		products: products,
	}
}

// Add appends rows in insertion order.
func (r *MockCatalogRepository) Add(products ...models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append(r.products, products...)
}

// SetLastUpdated sets the value LastUpdated reports.
func (r *MockCatalogRepository) SetLastUpdated(date string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastUpdated = date
}

// GetAll returns a copy of the stored rows.
func (r *MockCatalogRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// LastUpdated returns the configured last-update date.
func (r *MockCatalogRepository) LastUpdated() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastUpdated
}
