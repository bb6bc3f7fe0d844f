package session

import (
	"listino/internal/models"
)

// SelectionSet maps product SKUs to selected entries while remembering the
// order in which products were first selected. It is not scoped to the
// current filter or page: an entry stays until it is explicitly removed, and
// Entries renders first-selected-first.
type SelectionSet struct {
	entries map[string]*models.SelectionEntry
	order   []string
}

// NewSelectionSet creates an empty selection set.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{
		entries: make(map[string]*models.SelectionEntry),
	}
}

// Select inserts or overwrites the entry for a product with the given
// quantity. Re-selecting an already selected product keeps its original
// position in the order.
func (s *SelectionSet) Select(p models.Product, quantity int) {
	if existing, ok := s.entries[p.SKU]; ok {
		*existing = models.NewSelectionEntry(p, quantity)
		return
	}
	entry := models.NewSelectionEntry(p, quantity)
	s.entries[p.SKU] = &entry
	s.order = append(s.order, p.SKU)
}

// Unselect removes the entry for a SKU; unknown SKUs are a no-op.
func (s *SelectionSet) Unselect(sku string) {
	if _, ok := s.entries[sku]; !ok {
		return
	}
	delete(s.entries, sku)
	for i, id := range s.order {
		if id == sku {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// SetQuantity updates the quantity of an existing entry and reports whether
// one was found. A quantity edit on an unselected row is not persisted; it
// takes effect only once the row is also selected.
func (s *SelectionSet) SetQuantity(sku string, quantity int) bool {
	entry, ok := s.entries[sku]
	if !ok {
		return false
	}
	entry.Quantity = quantity
	return true
}

// Clear empties the set.
func (s *SelectionSet) Clear() {
	s.entries = make(map[string]*models.SelectionEntry)
	s.order = nil
}

// Len returns the number of selected products.
func (s *SelectionSet) Len() int {
	return len(s.entries)
}

// State reports whether a SKU is selected and with which quantity.
func (s *SelectionSet) State(sku string) (bool, int) {
	entry, ok := s.entries[sku]
	if !ok {
		return false, 0
	}
	return true, entry.Quantity
}

// Entries returns copies of the entries in insertion order.
func (s *SelectionSet) Entries() []models.SelectionEntry {
	out := make([]models.SelectionEntry, 0, len(s.order))
	for _, sku := range s.order {
		out = append(out, *s.entries[sku])
	}
	return out
}
