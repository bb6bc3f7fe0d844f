package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySelection is returned when a quote is requested with nothing
// selected. It can surface both when opening the contact form and at submit
// time, since the selection can be cleared in between.
var ErrEmptySelection = errors.New("no products selected")

// CatalogUnavailableError means the backing price list could not be read or
// parsed. It is fatal to the session: nothing can render without a catalog.
type CatalogUnavailableError struct {
	Err error
}

func (e *CatalogUnavailableError) Error() string {
	return fmt.Sprintf("catalog unavailable: %v", e.Err)
}

func (e *CatalogUnavailableError) Unwrap() error {
	return e.Err
}

// ValidationError reports which required contact fields were empty or
// whitespace-only. It is user-correctable and leaves form and selection
// intact.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.MissingFields, ", "))
}

// DeliveryError wraps a failed mail submission. The two sends per quote are
// independent, so the recipient identifies which one failed.
type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver quote mail to %s: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
