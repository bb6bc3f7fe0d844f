package services

import (
	"sort"
	"strings"

	"listino/internal/models"
)

// FilterOptions holds the still-available dropdown values for each dependent
// filter dimension, sorted ascending.
type FilterOptions struct {
	Brands      []string `json:"brands"`
	Categories1 []string `json:"categories1"`
	Categories2 []string `json:"categories2"`
	Categories3 []string `json:"categories3"`
}

// matchesCriteria reports whether a product passes every non-sentinel
// criteria field. Search is a case-insensitive substring match on the
// description; the dropdown dimensions are case-sensitive exact matches, so
// a product with an empty value never matches a concrete filter.
func matchesCriteria(p models.Product, c models.FilterCriteria) bool {
	if c.Search != "" && !strings.Contains(strings.ToLower(p.Description), strings.ToLower(c.Search)) {
		return false
	}
	if c.Brand != models.AllBrands && p.Brand != c.Brand {
		return false
	}
	if c.Category1 != models.AllCategories && p.Category1 != c.Category1 {
		return false
	}
	if c.Category2 != models.AllCategories && p.Category2 != c.Category2 {
		return false
	}
	if c.Category3 != models.AllCategories && p.Category3 != c.Category3 {
		return false
	}
	return true
}

// ApplyFilters returns the products passing every active criteria field, in
// catalog order. Filtering an already consistent view with the same criteria
// yields the same set.
func ApplyFilters(catalog []models.Product, c models.FilterCriteria) []models.Product {
	filtered := make([]models.Product, 0, len(catalog))
	for _, p := range catalog {
		if matchesCriteria(p, c) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// AvailableOptions harvests the dropdown option sets from the same mask
// ApplyFilters uses. A dimension's own current value participates in that
// mask, so selecting a brand narrows not only the category lists but the
// brand list itself. The original list behaves this way and the behaviour is
// kept as the observed contract; clearing a dimension restores its options.
func AvailableOptions(catalog []models.Product, c models.FilterCriteria) FilterOptions {
	brands := make(map[string]struct{})
	cats1 := make(map[string]struct{})
	cats2 := make(map[string]struct{})
	cats3 := make(map[string]struct{})

	for _, p := range ApplyFilters(catalog, c) {
		if p.Brand != "" {
			brands[p.Brand] = struct{}{}
		}
		if p.Category1 != "" {
			cats1[p.Category1] = struct{}{}
		}
		if p.Category2 != "" {
			cats2[p.Category2] = struct{}{}
		}
		if p.Category3 != "" {
			cats3[p.Category3] = struct{}{}
		}
	}

	return FilterOptions{
		Brands:      sortedValues(brands),
		Categories1: sortedValues(cats1),
		Categories2: sortedValues(cats2),
		Categories3: sortedValues(cats3),
	}
}

func sortedValues(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
