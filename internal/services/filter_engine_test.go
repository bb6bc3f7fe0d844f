package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"listino/internal/models"
	"listino/internal/services"
)

func testCatalog() []models.Product {
	return []models.Product{
		{SKU: "A1", Description: "Notebook Pro 15", Brand: "Acme", Category1: "Informatica", Category2: "Notebook", Category3: "Professionali"},
		{SKU: "A2", Description: "Mouse wireless", Brand: "Acme", Category1: "Informatica", Category2: "Accessori", Category3: "Mouse"},
		{SKU: "B1", Description: "Stampante laser", Brand: "Beta", Category1: "Ufficio", Category2: "Stampanti", Category3: "Laser"},
		{SKU: "B2", Description: "Toner nero", Brand: "Beta", Category1: "Ufficio", Category2: "Consumabili", Category3: ""},
	}
}

func skus(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.SKU)
	}
	return out
}

func TestApplyFilters_DefaultCriteriaKeepsEverything(t *testing.T) {
	catalog := testCatalog()

	filtered := services.ApplyFilters(catalog, models.DefaultCriteria())

	assert.Equal(t, []string{"A1", "A2", "B1", "B2"}, skus(filtered))
}

func TestApplyFilters_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	catalog := testCatalog()
	criteria := models.DefaultCriteria()
	criteria.Search = "NOTEBOOK"

	filtered := services.ApplyFilters(catalog, criteria)

	assert.Equal(t, []string{"A1"}, skus(filtered))
}

func TestApplyFilters_DropdownsAreCaseSensitiveExactMatch(t *testing.T) {
	catalog := testCatalog()
	criteria := models.DefaultCriteria()
	criteria.Brand = "acme"

	assert.Empty(t, services.ApplyFilters(catalog, criteria))

	criteria.Brand = "Acme"
	assert.Equal(t, []string{"A1", "A2"}, skus(services.ApplyFilters(catalog, criteria)))
}

func TestApplyFilters_AllCriteriaCombineWithAnd(t *testing.T) {
	catalog := testCatalog()
	criteria := models.DefaultCriteria()
	criteria.Search = "laser"
	criteria.Brand = "Beta"
	criteria.Category1 = "Ufficio"

	filtered := services.ApplyFilters(catalog, criteria)

	assert.Equal(t, []string{"B1"}, skus(filtered))
}

func TestApplyFilters_EmptyProductValueNeverMatchesConcreteFilter(t *testing.T) {
	catalog := testCatalog()
	criteria := models.DefaultCriteria()
	criteria.Category3 = "Laser"

	filtered := services.ApplyFilters(catalog, criteria)

	// B2 has no category3 value and must not slip through.
	assert.Equal(t, []string{"B1"}, skus(filtered))
}

func TestApplyFilters_IsIdempotent(t *testing.T) {
	catalog := testCatalog()
	criteria := models.DefaultCriteria()
	criteria.Brand = "Acme"
	criteria.Search = "e"

	once := services.ApplyFilters(catalog, criteria)
	twice := services.ApplyFilters(once, criteria)

	assert.Equal(t, once, twice)
}

func TestAvailableOptions_UnfilteredReturnsSortedFullSets(t *testing.T) {
	catalog := testCatalog()

	options := services.AvailableOptions(catalog, models.DefaultCriteria())

	assert.Equal(t, []string{"Acme", "Beta"}, options.Brands)
	assert.Equal(t, []string{"Informatica", "Ufficio"}, options.Categories1)
	assert.Equal(t, []string{"Accessori", "Consumabili", "Notebook", "Stampanti"}, options.Categories2)
	// B2's empty category3 is not offered as an option.
	assert.Equal(t, []string{"Laser", "Mouse", "Professionali"}, options.Categories3)
}

func TestAvailableOptions_BrandNarrowsCategoryLists(t *testing.T) {
	catalog := testCatalog()
	criteria := models.DefaultCriteria()
	criteria.Brand = "Acme"

	options := services.AvailableOptions(catalog, criteria)

	assert.Equal(t, []string{"Informatica"}, options.Categories1)
	assert.Equal(t, []string{"Accessori", "Notebook"}, options.Categories2)
}

func TestAvailableOptions_DimensionNarrowsItself(t *testing.T) {
	catalog := testCatalog()
	criteria := models.DefaultCriteria()
	criteria.Brand = "Acme"

	options := services.AvailableOptions(catalog, criteria)

	// The brand filter participates in the mask used for its own option
	// list, so only the selected brand remains offered.
	assert.Equal(t, []string{"Acme"}, options.Brands)
}

func TestAvailableOptions_ClearingBrandRestoresCategoryOptions(t *testing.T) {
	catalog := testCatalog()
	criteria := models.DefaultCriteria()
	criteria.Brand = "Acme"
	narrowed := services.AvailableOptions(catalog, criteria)
	assert.Equal(t, []string{"Informatica"}, narrowed.Categories1)

	criteria.Brand = models.AllBrands
	restored := services.AvailableOptions(catalog, criteria)

	assert.Equal(t, []string{"Informatica", "Ufficio"}, restored.Categories1)
}
