package models

import "time"

// QuoteForm carries the contact fields submitted with a quote request.
type QuoteForm struct {
	CompanyName   string `json:"company_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Notes         string `json:"notes"`
}

// QuoteRequest is the finalized payload built from the selection set plus
// the contact details. Items are copied from the selection at build time and
// the request is immutable once built.
type QuoteRequest struct {
	ID            string           `json:"id"`
	CompanyName   string           `json:"company_name"`
	CustomerEmail string           `json:"customer_email"`
	CustomerPhone string           `json:"customer_phone"`
	Notes         string           `json:"notes,omitempty"`
	Items         []SelectionEntry `json:"items"`
	CreatedAt     time.Time        `json:"created_at"`
}
