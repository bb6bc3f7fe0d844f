package models

// Quantity bounds for a selected product. Enforced at the input surface;
// the selection set itself assumes validated values.
const (
	MinQuantity = 1
	MaxQuantity = 9999
)

// SelectionEntry is one chosen product with its quantity. The product fields
// are snapshotted at selection time so the entry stays meaningful even while
// the product is filtered out or off-screen.
type SelectionEntry struct {
	SKU         string `json:"sku"`
	Description string `json:"description"`
	Brand       string `json:"brand"`
	SalePrice   string `json:"sale_price"`
	PublicPrice string `json:"public_price"`
	Quantity    int    `json:"quantity"`
}

// NewSelectionEntry snapshots a product into a selection entry.
func NewSelectionEntry(p Product, quantity int) SelectionEntry {
	return SelectionEntry{
		SKU:         p.SKU,
		Description: p.Description,
		Brand:       p.Brand,
		SalePrice:   p.SalePrice,
		PublicPrice: p.PublicPrice,
		Quantity:    quantity,
	}
}
