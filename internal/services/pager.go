package services

import (
	"listino/internal/models"
)

// Page describes one visible slice of the filtered catalog. First and Last
// are 1-based inclusive display bounds clipped to the filtered count, both 0
// when the filtered set is empty.
type Page struct {
	Items      []models.Product
	First      int
	Last       int
	Total      int
	TotalPages int
}

// TotalPages computes the page count for a filtered total, never below 1.
func TotalPages(total, pageSize int) int {
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate slices the filtered sequence for a 1-based page number. An
// out-of-range page falls back to the first page, matching the session's
// reset-to-start policy.
func Paginate(filtered []models.Product, page, pageSize int) Page {
	total := len(filtered)
	totalPages := TotalPages(total, pageSize)
	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	p := Page{
		Items:      filtered[start:end],
		Total:      total,
		TotalPages: totalPages,
	}
	if total > 0 {
		p.First = start + 1
		p.Last = end
	}
	return p
}
