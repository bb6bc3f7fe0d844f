package session

import (
	"sync"
	"time"

	"listino/internal/models"
)

// Session is the per-user context object holding everything the browser
// surface mutates: the PIN grant, the filter criteria, the current page, the
// cross-page selection set and the contact form visibility. All state
// transitions go through the methods below, so each one is explicit and
// testable without any rendering surface. Derived views (filtered set,
// option lists, page slice) are recomputed from the catalog plus this state
// on every read.
type Session struct {
	mu            sync.Mutex
	id            string
	authorized    bool
	criteria      models.FilterCriteria
	page          int
	selection     *SelectionSet
	offerFormOpen bool
	lastSeen      time.Time
}

func newSession(id string) *Session {
	return &Session{
		id:        id,
		criteria:  models.DefaultCriteria(),
		page:      1,
		selection: NewSelectionSet(),
		lastSeen:  time.Now(),
	}
}

// ID returns the session identifier carried by the session cookie.
func (s *Session) ID() string {
	return s.id
}

// Authorize records a successful PIN entry. The grant lasts for the whole
// session lifetime.
func (s *Session) Authorize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorized = true
}

// IsAuthorized reports whether the PIN gate has been passed.
func (s *Session) IsAuthorized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authorized
}

// Criteria returns a copy of the active filter criteria.
func (s *Session) Criteria() models.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// CurrentPage returns the 1-based page number.
func (s *Session) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// FilterUpdate carries a partial criteria change. Nil fields keep their
// current value; an empty string on a dropdown dimension restores its
// sentinel.
type FilterUpdate struct {
	Search    *string
	Brand     *string
	Category1 *string
	Category2 *string
	Category3 *string
}

// UpdateFilters applies a partial criteria change. Every filter change
// resets pagination to the first page.
func (s *Session) UpdateFilters(u FilterUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.Search != nil {
		s.criteria.Search = *u.Search
	}
	if u.Brand != nil {
		s.criteria.Brand = orSentinel(*u.Brand, models.AllBrands)
	}
	if u.Category1 != nil {
		s.criteria.Category1 = orSentinel(*u.Category1, models.AllCategories)
	}
	if u.Category2 != nil {
		s.criteria.Category2 = orSentinel(*u.Category2, models.AllCategories)
	}
	if u.Category3 != nil {
		s.criteria.Category3 = orSentinel(*u.Category3, models.AllCategories)
	}
	s.page = 1
}

func orSentinel(v, sentinel string) string {
	if v == "" {
		return sentinel
	}
	return v
}

// ResetFilters restores the all-sentinel criteria and the first page.
func (s *Session) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = models.DefaultCriteria()
	s.page = 1
}

// NextPage advances one page unless already on the last one.
func (s *Session) NextPage(totalPages int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page < totalPages {
		s.page++
	}
}

// PrevPage goes back one page unless already on the first one.
func (s *Session) PrevPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page > 1 {
		s.page--
	}
}

// ClampPage resets an out-of-range page back to 1 and returns the page to
// render. This covers the filtered set shrinking under the current page; the
// reset always goes to the first page, never to the new last one.
func (s *Session) ClampPage(totalPages int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page > totalPages {
		s.page = 1
	}
	return s.page
}

// Select snapshots a product into the selection set with the given quantity.
func (s *Session) Select(p models.Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Select(p, quantity)
}

// Unselect removes a product from the selection set.
func (s *Session) Unselect(sku string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Unselect(sku)
}

// SetQuantity updates the quantity of an already selected product and
// reports whether the product was selected.
func (s *Session) SetQuantity(sku string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.SetQuantity(sku, quantity)
}

// DeselectAll clears the whole selection and goes back to the first page.
func (s *Session) DeselectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
	s.page = 1
}

// SelectionEntries returns the selected products in insertion order.
func (s *Session) SelectionEntries() []models.SelectionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Entries()
}

// SelectionCount returns how many products are selected.
func (s *Session) SelectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Len()
}

// SelectionState reports whether a SKU is selected and with which quantity.
func (s *Session) SelectionState(sku string) (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.State(sku)
}

// OpenOfferForm shows the contact form, refusing when nothing is selected.
func (s *Session) OpenOfferForm() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selection.Len() == 0 {
		return models.ErrEmptySelection
	}
	s.offerFormOpen = true
	return nil
}

// CloseOfferForm hides the contact form without touching any other state.
func (s *Session) CloseOfferForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offerFormOpen = false
}

// OfferFormOpen reports whether the contact form is visible.
func (s *Session) OfferFormOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offerFormOpen
}

// CompleteQuote clears the selection and hides the contact form after a
// successful submission.
func (s *Session) CompleteQuote() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
	s.offerFormOpen = false
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

func (s *Session) idleFor(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
