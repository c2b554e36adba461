package orderform

import (
	"strings"
)

// Labels reported for missing header data, in check order.
const (
	MissingCustomer    = "Customer"
	MissingPONumber    = "PO Number"
	MissingMeasurement = "Measurement"
	MissingOrderDate   = "Order Date"
	MissingPODate      = "PO Date"
	MissingDueDate     = "Due Date"
	MissingProduct     = "At least one Product"
)

// ValidationResult lists every failed check in a fixed order.
type ValidationResult struct {
	Valid   bool     `json:"Valid"`
	Missing []string `json:"Missing"`
}

// Err returns a *ValidationError for an invalid result and nil otherwise.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Missing: r.Missing}
}

// ValidationError blocks a submission.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// ValidateOrder checks that an order can be submitted. All checks run; the
// result carries every failure.
func ValidateOrder(h Header, d Dates, items []LineItem) ValidationResult {
	missing := make([]string, 0)

	if isBlank(h.CustomerName) {
		missing = append(missing, MissingCustomer)
	}
	if isBlank(h.PONumber) {
		missing = append(missing, MissingPONumber)
	}
	if isBlank(h.Measurement) {
		missing = append(missing, MissingMeasurement)
	}
	if d.OrderDate == nil {
		missing = append(missing, MissingOrderDate)
	}
	if d.PODate == nil {
		missing = append(missing, MissingPODate)
	}
	if d.DueDate == nil {
		missing = append(missing, MissingDueDate)
	}
	if !hasProduct(items) {
		missing = append(missing, MissingProduct)
	}

	return ValidationResult{Valid: len(missing) == 0, Missing: missing}
}

func hasProduct(items []LineItem) bool {
	for _, it := range items {
		if !isBlank(it.Product) {
			return true
		}
	}
	return false
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
