package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is(). Handlers map these onto HTTP
// status codes; see handlers.writeError.
var (
	// ErrCustomerRequired is returned when a sale is recorded without a customer.
	ErrCustomerRequired = errors.New("customer is required")

	// ErrEmptySale is returned when a sale is recorded with no items.
	ErrEmptySale = errors.New("sale must contain at least one item")

	// ErrInvalidQuantity is returned for a zero or negative quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidDiscount is returned for a discount outside 0-100 percent.
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100 percent")

	// ErrInvalidAmount is returned for a zero or negative payment amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrCustomerNotFound is returned when the referenced customer does not exist.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrProductNotFound is returned when a sale references a missing product.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned when a sale or stock-out would drive
	// a product's quantity negative.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrLedgerNotFound is returned when a payment targets a missing ledger.
	ErrLedgerNotFound = errors.New("ledger not found")

	// ErrSaleNotFound is returned when a ledger sync references a missing sale.
	ErrSaleNotFound = errors.New("sale not found")

	// ErrAlreadyPaid is returned when a payment targets a settled ledger.
	ErrAlreadyPaid = errors.New("ledger already paid")

	// ErrConcurrentUpdate is returned when a guarded write lost a race.
	// The transaction has been rolled back and the request is safe to retry.
	ErrConcurrentUpdate = errors.New("concurrent update detected")
)

// StockError reports which product was short and by how much.
type StockError struct {
	ProductID uint
	Name      string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (product %d): have %d, need %d",
		e.Name, e.ProductID, e.Available, e.Requested)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// NotFoundError reports which record of which kind was missing.
type NotFoundError struct {
	Kind string // "product", "customer", "ledger", "sale"
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	switch e.Kind {
	case "customer":
		return ErrCustomerNotFound
	case "ledger":
		return ErrLedgerNotFound
	case "sale":
		return ErrSaleNotFound
	default:
		return ErrProductNotFound
	}
}

// IsValidation reports whether the error is caused by bad caller input.
// No side effects were performed.
func IsValidation(err error) bool {
	return errors.Is(err, ErrCustomerRequired) ||
		errors.Is(err, ErrEmptySale) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidDiscount) ||
		errors.Is(err, ErrInvalidAmount)
}

// IsNotFound reports whether the error references a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrLedgerNotFound) ||
		errors.Is(err, ErrSaleNotFound)
}

// IsConflict reports whether the error is a state conflict the caller can
// act on (short stock, ledger already settled).
func IsConflict(err error) bool {
	return errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrAlreadyPaid)
}

// IsRetryable reports whether retrying the whole request might succeed.
// Nothing partial was committed.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrentUpdate)
}
