package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"listino/internal/middleware"
	"listino/internal/models"
	"listino/internal/services"
)

// QuoteHandler handles the contact form lifecycle and quote submission.
type QuoteHandler struct {
	quotes *services.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quotes *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quotes: quotes,
	}
}

// RegisterRoutes registers the quote routes with the Fiber app.
func (h *QuoteHandler) RegisterRoutes(router fiber.Router) {
	quoteRoutes := router.Group("/quote")
	quoteRoutes.Post("/open", h.HandleOpenForm)
	quoteRoutes.Post("/cancel", h.HandleCancelForm)
	quoteRoutes.Post("/", h.HandleSubmit)
}

// HandleOpenForm shows the contact form. Requesting a quote with an empty
// selection is refused up front, before the form is ever shown.
func (h *QuoteHandler) HandleOpenForm(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if err := sess.OpenOfferForm(); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Select at least one product to request a quote",
		})
	}
	return c.JSON(fiber.Map{
		"offer_form_open": true,
		"items":           sess.SelectionEntries(),
	})
}

// HandleCancelForm hides the contact form; selection and filters stay as
// they are.
func (h *QuoteHandler) HandleCancelForm(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	sess.CloseOfferForm()
	return c.JSON(fiber.Map{
		"offer_form_open": false,
	})
}

// HandleSubmit builds the quote request from the current selection and the
// submitted contact fields, then delivers it. Validation and delivery
// failures leave the selection and the form untouched so the user can
// correct and retry; only a fully successful submission clears them.
func (h *QuoteHandler) HandleSubmit(c *fiber.Ctx) error {
	var form models.QuoteForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing quote form body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	sess := middleware.SessionFromCtx(c)
	req, err := h.quotes.Build(sess.SelectionEntries(), form)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message":        "Fill in all required fields",
				"missing_fields": validationErr.MissingFields,
			})
		}
		if errors.Is(err, models.ErrEmptySelection) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Select at least one product to request a quote",
			})
		}
		log.Printf("Error building quote request: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not build quote request",
			"error":   err.Error(),
		})
	}

	if err := h.quotes.Submit(req); err != nil {
		log.Printf("Error delivering quote request %s: %v", req.ID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Could not send the quote request, please try again",
			"error":   err.Error(),
		})
	}

	sess.CompleteQuote()
	return c.JSON(fiber.Map{
		"message":  "Quote request sent successfully",
		"quote_id": req.ID,
	})
}
