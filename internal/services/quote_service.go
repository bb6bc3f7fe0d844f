package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"listino/internal/models"
)

// Mailer performs authenticated mail submission for quote requests.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// EventPublisher publishes quote lifecycle events for back-office consumers.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// QuoteService assembles quote requests from the selection set and delivers
// them by email to the operator and the requesting customer.
type QuoteService struct {
	mailer        Mailer
	publisher     EventPublisher
	operatorEmail string
	logoURL       string
}

// NewQuoteService creates a new QuoteService. publisher may be nil, in which
// case event publication is skipped.
func NewQuoteService(mailer Mailer, publisher EventPublisher, operatorEmail, logoURL string) *QuoteService {
	return &QuoteService{
		mailer:        mailer,
		publisher:     publisher,
		operatorEmail: operatorEmail,
		logoURL:       logoURL,
	}
}

// Build validates the contact fields and freezes the current selection into
// an immutable quote request. Company name, customer email and customer
// phone must be non-blank; email address syntax is not checked. The
// selection is re-checked here because it can have been cleared between
// opening the contact form and submitting it.
func (s *QuoteService) Build(entries []models.SelectionEntry, form models.QuoteForm) (*models.QuoteRequest, error) {
	if len(entries) == 0 {
		return nil, models.ErrEmptySelection
	}

	company := strings.TrimSpace(form.CompanyName)
	email := strings.TrimSpace(form.CustomerEmail)
	phone := strings.TrimSpace(form.CustomerPhone)

	var missing []string
	if company == "" {
		missing = append(missing, "company_name")
	}
	if email == "" {
		missing = append(missing, "customer_email")
	}
	if phone == "" {
		missing = append(missing, "customer_phone")
	}
	if len(missing) > 0 {
		return nil, &models.ValidationError{MissingFields: missing}
	}

	items := make([]models.SelectionEntry, len(entries))
	copy(items, entries)

	return &models.QuoteRequest{
		ID:            uuid.New().String(),
		CompanyName:   company,
		CustomerEmail: email,
		CustomerPhone: phone,
		Notes:         strings.TrimSpace(form.Notes),
		Items:         items,
		CreatedAt:     time.Now(),
	}, nil
}

// Submit renders the quote email and sends it to the operator address and
// then to the customer, with identical bodies. The two sends are independent
// and deliberately not transactional: when the operator copy goes out and
// the customer copy fails, the operator has still received the request while
// the caller sees an error. Session state is never touched here, so the user
// can retry after a failure.
func (s *QuoteService) Submit(req *models.QuoteRequest) error {
	body, err := s.renderBody(req)
	if err != nil {
		return fmt.Errorf("failed to render quote email: %w", err)
	}

	subject := fmt.Sprintf("Richiesta Offerta da %s", req.CompanyName)
	if err := s.mailer.Send(s.operatorEmail, subject, body); err != nil {
		return &models.DeliveryError{Recipient: s.operatorEmail, Err: err}
	}
	if err := s.mailer.Send(req.CustomerEmail, "Conferma Richiesta Offerta", body); err != nil {
		return &models.DeliveryError{Recipient: req.CustomerEmail, Err: err}
	}

	s.publishQuoteRequested(req)
	return nil
}

// publishQuoteRequested emits a quote.requested event. Publication is best
// effort: delivery already succeeded, so a broker problem is only logged.
func (s *QuoteService) publishQuoteRequested(req *models.QuoteRequest) {
	if s.publisher == nil {
		log.Println("Event publisher is not configured. Skipping quote event publication.")
		return
	}

	event := map[string]interface{}{
		"quoteID":   req.ID,
		"company":   req.CompanyName,
		"email":     req.CustomerEmail,
		"items":     len(req.Items),
		"createdAt": req.CreatedAt.Format(time.RFC3339),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal quote event to JSON: %v", err)
		return
	}
	if err := s.publisher.Publish("quote.requested", body); err != nil {
		log.Printf("Warning: Failed to publish quote requested event for quote %s: %v", req.ID, err)
	} else {
		log.Printf("Successfully published quote requested event for quote %s", req.ID)
	}
}
