package models

// Sentinel option values marking a filter dimension as "no filter applied".
// They match the labels the original price list shows in its dropdowns.
const (
	AllBrands     = "Tutti"
	AllCategories = "Tutte"
)

// FilterCriteria carries the active filter field values for one session.
// Search is a case-insensitive substring match on the description; the other
// fields are case-sensitive exact matches when they hold a concrete value.
type FilterCriteria struct {
	Search    string `json:"search"`
	Brand     string `json:"brand"`
	Category1 string `json:"category1"`
	Category2 string `json:"category2"`
	Category3 string `json:"category3"`
}

// DefaultCriteria returns the all-sentinel criteria every session starts
// with and "reset filters" restores.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Brand:     AllBrands,
		Category1: AllCategories,
		Category2: AllCategories,
		Category3: AllCategories,
	}
}
