package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"listino/internal/middleware"
	"listino/internal/models"
	"listino/internal/services"
	"listino/internal/session"
)

// CatalogHandler serves the filtered, paginated catalog view and the filter
// and page actions that mutate session state.
type CatalogHandler struct {
	catalog  *services.CatalogService
	pageSize int
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *services.CatalogService, pageSize int) *CatalogHandler {
	return &CatalogHandler{
		catalog:  catalog,
		pageSize: pageSize,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/catalog", h.HandleGetCatalog)
	router.Put("/filters", h.HandleUpdateFilters)
	router.Post("/filters/reset", h.HandleResetFilters)
	router.Post("/page/next", h.HandleNextPage)
	router.Post("/page/prev", h.HandlePreviousPage)
}

// catalogRow is one visible product with its per-row selection state.
type catalogRow struct {
	models.Product
	Selected bool `json:"selected"`
	Quantity int  `json:"quantity"`
}

type catalogViewResponse struct {
	Items          []catalogRow           `json:"items"`
	Filters        models.FilterCriteria  `json:"filters"`
	Options        services.FilterOptions `json:"options"`
	Page           int                    `json:"page"`
	TotalPages     int                    `json:"total_pages"`
	First          int                    `json:"first"`
	Last           int                    `json:"last"`
	Total          int                    `json:"total"`
	SelectionCount int                    `json:"selection_count"`
	OfferFormOpen  bool                   `json:"offer_form_open"`
	LastUpdated    string                 `json:"last_updated,omitempty"`
}

// view recomputes the derived state for a session: filtered set, option
// lists and the visible page slice. A page left out of range by a shrinking
// filtered set is reset to 1 before slicing.
func (h *CatalogHandler) view(sess *session.Session) catalogViewResponse {
	catalog := h.catalog.Products()
	criteria := sess.Criteria()

	filtered := services.ApplyFilters(catalog, criteria)
	page := sess.ClampPage(services.TotalPages(len(filtered), h.pageSize))
	pg := services.Paginate(filtered, page, h.pageSize)

	rows := make([]catalogRow, 0, len(pg.Items))
	for _, p := range pg.Items {
		selected, quantity := sess.SelectionState(p.SKU)
		if !selected {
			quantity = models.MinQuantity
		}
		rows = append(rows, catalogRow{Product: p, Selected: selected, Quantity: quantity})
	}

	return catalogViewResponse{
		Items:          rows,
		Filters:        criteria,
		Options:        services.AvailableOptions(catalog, criteria),
		Page:           page,
		TotalPages:     pg.TotalPages,
		First:          pg.First,
		Last:           pg.Last,
		Total:          pg.Total,
		SelectionCount: sess.SelectionCount(),
		OfferFormOpen:  sess.OfferFormOpen(),
		LastUpdated:    h.catalog.LastUpdated(),
	}
}

// HandleGetCatalog returns the current page of the filtered catalog.
func (h *CatalogHandler) HandleGetCatalog(c *fiber.Ctx) error {
	return c.JSON(h.view(middleware.SessionFromCtx(c)))
}

// HandleUpdateFilters applies a partial filter change. Absent fields keep
// their value; an empty string on a dropdown dimension restores its "all"
// sentinel. Any change resets pagination to page 1.
func (h *CatalogHandler) HandleUpdateFilters(c *fiber.Ctx) error {
	var req struct {
		Search    *string `json:"search"`
		Brand     *string `json:"brand"`
		Category1 *string `json:"category1"`
		Category2 *string `json:"category2"`
		Category3 *string `json:"category3"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing filter update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	sess := middleware.SessionFromCtx(c)
	sess.UpdateFilters(session.FilterUpdate{
		Search:    req.Search,
		Brand:     req.Brand,
		Category1: req.Category1,
		Category2: req.Category2,
		Category3: req.Category3,
	})
	return c.JSON(h.view(sess))
}

// HandleResetFilters restores the all-sentinel criteria and page 1.
func (h *CatalogHandler) HandleResetFilters(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	sess.ResetFilters()
	return c.JSON(h.view(sess))
}

// HandleNextPage advances one page; at the last page it is a no-op.
func (h *CatalogHandler) HandleNextPage(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	filtered := services.ApplyFilters(h.catalog.Products(), sess.Criteria())
	sess.NextPage(services.TotalPages(len(filtered), h.pageSize))
	return c.JSON(h.view(sess))
}

// HandlePreviousPage goes back one page; at page 1 it is a no-op.
func (h *CatalogHandler) HandlePreviousPage(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	sess.PrevPage()
	return c.JSON(h.view(sess))
}
