package handlers

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"listino/internal/middleware"
	"listino/internal/models"
	"listino/internal/services"
)

// SelectionHandler handles the per-row selection toggles and quantity edits
// feeding the cross-page selection set.
type SelectionHandler struct {
	catalog  *services.CatalogService
	validate *validator.Validate
}

// NewSelectionHandler creates a new SelectionHandler.
func NewSelectionHandler(catalog *services.CatalogService) *SelectionHandler {
	return &SelectionHandler{
		catalog:  catalog,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the selection routes with the Fiber app.
func (h *SelectionHandler) RegisterRoutes(router fiber.Router) {
	selectionRoutes := router.Group("/selection")
	selectionRoutes.Get("/", h.HandleGetSelection)
	selectionRoutes.Delete("/", h.HandleDeselectAll)
	selectionRoutes.Put("/:sku", h.HandleUpdateRow)
	selectionRoutes.Patch("/:sku/quantity", h.HandleSetQuantity)
}

// HandleGetSelection returns the selected products in insertion order, the
// same sequence the quote summary and email render.
func (h *SelectionHandler) HandleGetSelection(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	return c.JSON(fiber.Map{
		"items": sess.SelectionEntries(),
		"count": sess.SelectionCount(),
	})
}

// HandleDeselectAll clears the whole selection and resets to page 1.
func (h *SelectionHandler) HandleDeselectAll(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	sess.DeselectAll()
	return c.JSON(fiber.Map{
		"message": "Selection cleared",
		"count":   0,
	})
}

// HandleUpdateRow evaluates one row's selection toggle and quantity
// together, so the latest quantity always wins regardless of click order on
// the surface. Selecting snapshots the product; deselecting removes the
// entry. A quantity outside 1-9999 is rejected before it reaches the set.
func (h *SelectionHandler) HandleUpdateRow(c *fiber.Ctx) error {
	sku := c.Params("sku")

	var req struct {
		Selected bool `json:"selected"`
		Quantity int  `json:"quantity" validate:"omitempty,min=1,max=9999"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing selection update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Quantity must be between %d and %d", models.MinQuantity, models.MaxQuantity),
		})
	}

	sess := middleware.SessionFromCtx(c)

	if !req.Selected {
		sess.Unselect(sku)
		return c.JSON(fiber.Map{
			"selected": false,
			"count":    sess.SelectionCount(),
		})
	}

	product, err := h.catalog.FindBySKU(sku)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with SKU %s not found", sku),
		})
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = models.MinQuantity // the stepper default
	}
	sess.Select(*product, quantity)
	return c.JSON(fiber.Map{
		"selected": true,
		"quantity": quantity,
		"count":    sess.SelectionCount(),
	})
}

// HandleSetQuantity updates the quantity of an already selected row. Edits
// on unselected rows are not persisted; the response says whether the edit
// was applied.
func (h *SelectionHandler) HandleSetQuantity(c *fiber.Ctx) error {
	sku := c.Params("sku")

	var req struct {
		Quantity int `json:"quantity" validate:"required,min=1,max=9999"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing quantity update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Quantity must be between %d and %d", models.MinQuantity, models.MaxQuantity),
		})
	}

	sess := middleware.SessionFromCtx(c)
	applied := sess.SetQuantity(sku, req.Quantity)
	return c.JSON(fiber.Map{
		"applied":  applied,
		"quantity": req.Quantity,
	})
}
